package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository создаёт PostgreSQL-реализацию хранилища счетов.
func NewInvoiceRepository(store *Store) domain.InvoiceRepository {
	return &invoiceRepository{db: store.DB()}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice domain.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		addr := invoice.Address
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoices (
				id, name, document,
				street, number, complement, city, state, zip_code,
				created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`,
			invoice.ID, invoice.Name, invoice.Document,
			addr.Street, addr.Number, addr.Complement, addr.City, addr.State, addr.ZipCode,
			invoice.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}

		for position, item := range invoice.Items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO invoice_items (invoice_id, position, product_id, name, price)
				VALUES ($1,$2,$3,$4,$5)
			`, invoice.ID, position, item.ProductID, item.Name, item.Price); err != nil {
				return fmt.Errorf("insert invoice item: %w", err)
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Find(ctx context.Context, id domain.ID) (domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var invoice domain.Invoice
	addr := &invoice.Address
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, document,
		       street, number, complement, city, state, zip_code,
		       created_at
		FROM invoices
		WHERE id = $1
	`, id).Scan(
		&invoice.ID, &invoice.Name, &invoice.Document,
		&addr.Street, &addr.Number, &addr.Complement, &addr.City, &addr.State, &addr.ZipCode,
		&invoice.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Invoice{}, domain.ErrInvoiceNotFound
		}
		return domain.Invoice{}, fmt.Errorf("select invoice: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, price
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position ASC
	`, id)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("load invoice items: %w", err)
	}
	defer rows.Close()

	invoice.Items = make([]domain.InvoiceItem, 0)
	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Price); err != nil {
			return domain.Invoice{}, fmt.Errorf("scan invoice item: %w", err)
		}
		invoice.Items = append(invoice.Items, item)
	}
	if err := rows.Err(); err != nil {
		return domain.Invoice{}, fmt.Errorf("iterate invoice items: %w", err)
	}

	return invoice, nil
}

var _ domain.InvoiceRepository = (*invoiceRepository)(nil)
