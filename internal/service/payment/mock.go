package payment

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// MockGateway — конфигурируемая заглушка PaymentGateway для тестов.
type MockGateway struct {
	mu sync.Mutex

	Status     domain.PaymentStatus
	ProcessErr error

	ProcessCalls int
	Requests     []domain.PaymentRequest
}

// NewMockGateway возвращает mock, одобряющий любой платёж.
func NewMockGateway() *MockGateway {
	return &MockGateway{Status: domain.PaymentStatusApproved}
}

// Process возвращает заранее настроенный результат и запоминает запрос.
func (m *MockGateway) Process(_ context.Context, req domain.PaymentRequest) (domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ProcessCalls++
	m.Requests = append(m.Requests, req)
	if m.ProcessErr != nil {
		return domain.Transaction{}, m.ProcessErr
	}

	now := time.Now().UTC()
	return domain.Transaction{
		ID:        domain.NewID(),
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Status:    m.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Calls возвращает число вызовов Process.
func (m *MockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ProcessCalls
}

var _ domain.PaymentGateway = (*MockGateway)(nil)
