// Package payment реализует платёжный шлюз, одобряющий платежи по пороговой сумме.
package payment

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// DefaultApprovalThreshold — минимальная сумма, с которой платёж одобряется.
var DefaultApprovalThreshold = domain.MustMoney("100")

// Option настраивает Gateway.
type Option func(*Gateway)

// WithApprovalThreshold задаёт порог одобрения.
func WithApprovalThreshold(threshold domain.Money) Option {
	return func(g *Gateway) {
		g.threshold = threshold
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// Gateway обрабатывает платёж одной попыткой и сохраняет транзакцию.
type Gateway struct {
	repo      domain.TransactionRepository
	threshold domain.Money
	logger    *log.Entry
	now       func() time.Time
}

// NewGateway создаёт шлюз. По умолчанию порог одобрения равен DefaultApprovalThreshold.
func NewGateway(repo domain.TransactionRepository, logger *log.Entry, opts ...Option) *Gateway {
	if logger == nil {
		logger = log.New().WithField("component", "payment")
	}
	g := &Gateway{
		repo:      repo,
		threshold: DefaultApprovalThreshold,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Threshold возвращает текущий порог одобрения.
func (g *Gateway) Threshold() domain.Money {
	return g.threshold
}

// Process одобряет платёж, если сумма не меньше порога, иначе отклоняет.
// Отказ не является ошибкой; ошибка означает сбой хранения транзакции.
func (g *Gateway) Process(ctx context.Context, req domain.PaymentRequest) (domain.Transaction, error) {
	now := g.now()
	tx := domain.Transaction{
		ID:        domain.NewID(),
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Status:    domain.PaymentStatusDeclined,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Amount.Cmp(g.threshold) >= 0 {
		tx.Status = domain.PaymentStatusApproved
	}

	if err := g.repo.Save(ctx, tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: save transaction: %w", domain.ErrPaymentGateway, err)
	}

	g.logger.WithFields(log.Fields{
		"order_id":       req.OrderID,
		"transaction_id": tx.ID,
		"amount":         req.Amount.String(),
		"status":         tx.Status,
	}).Info("payment processed")
	return tx, nil
}

var _ domain.PaymentGateway = (*Gateway)(nil)
