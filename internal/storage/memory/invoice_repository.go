package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type invoiceRepositoryInMemory struct {
	mu       sync.RWMutex
	invoices map[domain.ID]domain.Invoice
}

// NewInvoiceRepository создаёт in-memory хранилище счетов.
func NewInvoiceRepository() domain.InvoiceRepository {
	return &invoiceRepositoryInMemory{invoices: make(map[domain.ID]domain.Invoice)}
}

func (r *invoiceRepositoryInMemory) Create(ctx context.Context, invoice domain.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]domain.InvoiceItem, len(invoice.Items))
	copy(items, invoice.Items)
	invoice.Items = items
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *invoiceRepositoryInMemory) Find(ctx context.Context, id domain.ID) (domain.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return domain.Invoice{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[id]
	if !ok {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	items := make([]domain.InvoiceItem, len(invoice.Items))
	copy(items, invoice.Items)
	invoice.Items = items
	return invoice, nil
}

var _ domain.InvoiceRepository = (*invoiceRepositoryInMemory)(nil)
