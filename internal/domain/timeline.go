package domain

import (
	"fmt"
	"time"
)

// Типы событий timeline, которые пишет оформление заказа.
const (
	TimelineOrderPlaced     = "OrderPlaced"
	TimelinePaymentApproved = "PaymentApproved"
	TimelinePaymentDeclined = "PaymentDeclined"
	TimelineInvoiceIssued   = "InvoiceIssued"
)

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	OrderID  ID
	Type     string
	Reason   string
	Occurred time.Time
}

// Validate проверяет событие перед записью. InvoiceIssued обязано нести ID
// счёта в Reason: по нему читатели timeline восстанавливают invoice_id.
func (e TimelineEvent) Validate() error {
	if e.OrderID.IsZero() {
		return fmt.Errorf("timeline event: %w", ErrInvalidID)
	}
	switch e.Type {
	case TimelineOrderPlaced, TimelinePaymentApproved, TimelinePaymentDeclined:
	case TimelineInvoiceIssued:
		if e.Reason == "" {
			return fmt.Errorf("%w: %s without invoice id", ErrTimelineEventInvalid, e.Type)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrTimelineEventInvalid, e.Type)
	}
	return nil
}
