package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// transactionRepositoryInMemory хранит платежи в памяти (для разработки/тестов).
type transactionRepositoryInMemory struct {
	mu           sync.RWMutex
	transactions map[domain.ID]domain.Transaction
}

// NewTransactionRepository создаёт in-memory реализацию TransactionRepository.
func NewTransactionRepository() *transactionRepositoryInMemory {
	return &transactionRepositoryInMemory{transactions: make(map[domain.ID]domain.Transaction)}
}

func (r *transactionRepositoryInMemory) Save(ctx context.Context, tx domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions[tx.ID] = tx
	return nil
}

// ByOrder возвращает платежи заказа (используется в тестах).
func (r *transactionRepositoryInMemory) ByOrder(orderID domain.ID) []domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Transaction, 0)
	for _, tx := range r.transactions {
		if tx.OrderID == orderID {
			result = append(result, tx)
		}
	}
	return result
}

var _ domain.TransactionRepository = (*transactionRepositoryInMemory)(nil)
