package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type transactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository создаёт PostgreSQL-реализацию журнала платежей.
func NewTransactionRepository(store *Store) domain.TransactionRepository {
	return &transactionRepository{db: store.DB()}
}

func (r *transactionRepository) Save(ctx context.Context, tx domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_transactions (
			id, order_id, amount, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		tx.ID, tx.OrderID, tx.Amount, string(tx.Status), tx.CreatedAt, tx.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert payment transaction: %w", err)
	}

	return nil
}

// ListByOrder возвращает попытки оплаты заказа в порядке создания.
func (r *transactionRepository) ListByOrder(ctx context.Context, orderID domain.ID) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, amount, status, created_at, updated_at
		FROM payment_transactions
		WHERE order_id = $1
		ORDER BY created_at ASC, id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payment transactions: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Transaction, 0)
	for rows.Next() {
		var (
			tx     domain.Transaction
			status string
		)
		if err := rows.Scan(&tx.ID, &tx.OrderID, &tx.Amount, &status, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payment transaction: %w", err)
		}
		tx.Status = domain.PaymentStatus(status)
		result = append(result, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment transactions: %w", err)
	}

	return result, nil
}

var _ domain.TransactionRepository = (*transactionRepository)(nil)
