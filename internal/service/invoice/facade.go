// Package invoice выставляет и хранит счета.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// Facade реализует порт Invoicing.
type Facade struct {
	repo   domain.InvoiceRepository
	logger *log.Entry
	now    func() time.Time
}

// NewFacade создаёт фасад выставления счетов.
func NewFacade(repo domain.InvoiceRepository, logger *log.Entry) *Facade {
	if logger == nil {
		logger = log.New().WithField("component", "invoice")
	}
	return &Facade{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create выставляет счёт с новым идентификатором. Итог счёта равен сумме цен позиций.
func (f *Facade) Create(ctx context.Context, req domain.InvoiceRequest) (domain.Invoice, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return domain.Invoice{}, errors.Join(errs...)
	}

	items := make([]domain.InvoiceItem, len(req.Items))
	copy(items, req.Items)

	invoice := domain.Invoice{
		ID:        domain.NewID(),
		Name:      req.Name,
		Document:  req.Document,
		Address:   req.Address,
		Items:     items,
		CreatedAt: f.now(),
	}

	if err := f.repo.Create(ctx, invoice); err != nil {
		return domain.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	f.logger.WithFields(log.Fields{
		"invoice_id": invoice.ID,
		"items":      len(invoice.Items),
		"total":      invoice.Total().String(),
	}).Info("invoice issued")
	return invoice, nil
}

// Find возвращает выставленный счёт или ErrInvoiceNotFound.
func (f *Facade) Find(ctx context.Context, id domain.ID) (domain.Invoice, error) {
	invoice, err := f.repo.Find(ctx, id)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("find invoice %s: %w", id, err)
	}
	return invoice, nil
}

var _ domain.Invoicing = (*Facade)(nil)
