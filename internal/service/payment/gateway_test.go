package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

type failingTransactionRepo struct{}

func (failingTransactionRepo) Save(context.Context, domain.Transaction) error {
	return errors.New("disk full")
}

func TestGateway_Process(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   domain.PaymentStatus
	}{
		{name: "below threshold", amount: "99.99", want: domain.PaymentStatusDeclined},
		{name: "at threshold", amount: "100", want: domain.PaymentStatusApproved},
		{name: "above threshold", amount: "250.5", want: domain.PaymentStatusApproved},
		{name: "zero", amount: "0", want: domain.PaymentStatusDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewTransactionRepository()
			gateway := NewGateway(repo, nil)

			tx, err := gateway.Process(context.Background(), domain.PaymentRequest{
				OrderID: "o-1",
				Amount:  domain.MustMoney(tt.amount),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tx.Status)
			assert.False(t, tx.ID.IsZero())
			assert.Equal(t, domain.ID("o-1"), tx.OrderID)

			stored := repo.ByOrder("o-1")
			require.Len(t, stored, 1)
			assert.Equal(t, tx.ID, stored[0].ID)
		})
	}
}

func TestGateway_CustomThresholdAndClock(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	gateway := NewGateway(memory.NewTransactionRepository(), nil,
		WithApprovalThreshold(domain.MustMoney("50")),
		WithClock(func() time.Time { return fixed }),
	)

	assert.True(t, gateway.Threshold().Equal(domain.MustMoney("50")))

	tx, err := gateway.Process(context.Background(), domain.PaymentRequest{OrderID: "o-1", Amount: domain.MustMoney("70")})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusApproved, tx.Status)
	assert.Equal(t, fixed, tx.CreatedAt)
}

func TestGateway_RepositoryFailure(t *testing.T) {
	gateway := NewGateway(failingTransactionRepo{}, nil)

	_, err := gateway.Process(context.Background(), domain.PaymentRequest{OrderID: "o-1", Amount: domain.MustMoney("100")})
	require.ErrorIs(t, err, domain.ErrPaymentGateway)
}
