package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimelineEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		event   TimelineEvent
		wantErr error
	}{
		{name: "placed", event: TimelineEvent{OrderID: "o1", Type: TimelineOrderPlaced}},
		{name: "approved", event: TimelineEvent{OrderID: "o1", Type: TimelinePaymentApproved}},
		{name: "declined with status", event: TimelineEvent{OrderID: "o1", Type: TimelinePaymentDeclined, Reason: "error"}},
		{name: "invoice issued", event: TimelineEvent{OrderID: "o1", Type: TimelineInvoiceIssued, Reason: "inv-1"}},
		{name: "missing order", event: TimelineEvent{Type: TimelineOrderPlaced}, wantErr: ErrInvalidID},
		{name: "invoice without id", event: TimelineEvent{OrderID: "o1", Type: TimelineInvoiceIssued}, wantErr: ErrTimelineEventInvalid},
		{name: "unknown type", event: TimelineEvent{OrderID: "o1", Type: "OrderShipped"}, wantErr: ErrTimelineEventInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
