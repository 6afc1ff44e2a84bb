// Package checkout оформляет заказ: проверяет клиента и остатки, считает цену
// по каталогу, сохраняет заказ, проводит оплату и при одобрении выставляет счёт.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
)

// Dependencies — порты, с которыми работает оформление.
// Timeline и Outbox необязательны: nil отключает соответствующую запись.
type Dependencies struct {
	Clients   domain.ClientDirectory
	Catalog   domain.Catalog
	Payments  domain.PaymentGateway
	Invoicing domain.Invoicing
	Orders    domain.OrderRepository
	Timeline  domain.TimelineRepository
	Outbox    domain.OutboxRepository
}

func (d Dependencies) validate() error {
	var errs []error
	if d.Clients == nil {
		errs = append(errs, errors.New("client directory is required"))
	}
	if d.Catalog == nil {
		errs = append(errs, errors.New("catalog is required"))
	}
	if d.Payments == nil {
		errs = append(errs, errors.New("payment gateway is required"))
	}
	if d.Invoicing == nil {
		errs = append(errs, errors.New("invoicing is required"))
	}
	if d.Orders == nil {
		errs = append(errs, errors.New("order repository is required"))
	}
	return errors.Join(errs...)
}

// Option настраивает Workflow.
type Option func(*Workflow)

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithMetrics включает запись метрик.
func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(w *Workflow) {
		w.metrics = m
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		if now != nil {
			w.now = now
		}
	}
}

// Workflow выполняет оформление заказа. Один вызов Execute — один
// последовательный проход без повторов и компенсаций.
type Workflow struct {
	clients   domain.ClientDirectory
	catalog   domain.Catalog
	payments  domain.PaymentGateway
	invoicing domain.Invoicing
	orders    domain.OrderRepository
	timeline  domain.TimelineRepository
	outbox    domain.OutboxRepository

	logger  *log.Entry
	metrics *metrics.CheckoutMetrics
	now     func() time.Time
}

// NewWorkflow создаёт Workflow. Метрики по умолчанию отключены.
func NewWorkflow(deps Dependencies, opts ...Option) (*Workflow, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("checkout workflow: %w", err)
	}

	w := &Workflow{
		clients:   deps.Clients,
		catalog:   deps.Catalog,
		payments:  deps.Payments,
		invoicing: deps.Invoicing,
		orders:    deps.Orders,
		timeline:  deps.Timeline,
		outbox:    deps.Outbox,
		logger:    log.New().WithField("component", "checkout"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Execute оформляет заказ.
//
// Ошибки до сохранения (пустой список, неизвестный клиент, нет остатка,
// нет товара в каталоге) не оставляют следов. Ошибки на шагах сохранения,
// оплаты и выставления счёта могут оставить сохранённый pending-заказ:
// компенсаций нет. Отказ в оплате не ошибка, а статус declined.
func (w *Workflow) Execute(ctx context.Context, input PlaceOrderInput) (PlaceOrderOutput, error) {
	start := time.Now()
	if w.metrics != nil {
		w.metrics.RecordStarted()
		defer func() {
			w.metrics.RecordFinished(time.Since(start))
		}()
	}

	output, err := w.execute(ctx, input)
	if err != nil {
		if w.metrics != nil {
			w.metrics.RecordFailed(failureKind(err))
		}
		return PlaceOrderOutput{}, err
	}

	if w.metrics != nil {
		if output.Approved() {
			w.metrics.RecordApproved()
		} else {
			w.metrics.RecordDeclined()
		}
	}
	return output, nil
}

func (w *Workflow) execute(ctx context.Context, input PlaceOrderInput) (PlaceOrderOutput, error) {
	if len(input.Products) == 0 {
		w.logger.WithField("client_id", input.ClientID).Warn("checkout rejected: no products selected")
		return PlaceOrderOutput{}, domain.ErrNoProductsSelected
	}

	clientID, productIDs, err := parseInput(input)
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	logger := w.logger.WithField("client_id", clientID)

	client, err := w.findClient(ctx, logger, clientID)
	if err != nil {
		return PlaceOrderOutput{}, err
	}

	if err := w.timed(domain.CheckoutStepValidate, func() error {
		return w.ValidateProducts(ctx, productIDs)
	}); err != nil {
		if id, ok := domain.UnavailableProductID(err); ok {
			logger.WithField("product_id", id).Warn("checkout rejected: product unavailable")
		}
		return PlaceOrderOutput{}, err
	}

	var items []domain.OrderItem
	if err := w.timed(domain.CheckoutStepPricing, func() error {
		var pricingErr error
		items, pricingErr = w.priceItems(ctx, productIDs)
		return pricingErr
	}); err != nil {
		logger.WithError(err).Warn("checkout rejected: pricing failed")
		return PlaceOrderOutput{}, err
	}

	order, err := domain.NewOrder(domain.NewID(), clientID, items, w.now())
	if err != nil {
		return PlaceOrderOutput{}, fmt.Errorf("build order: %w", err)
	}
	logger = logger.WithField("order_id", order.ID)

	if err := w.persist(ctx, logger, &order); err != nil {
		return PlaceOrderOutput{}, err
	}
	w.recordTimeline(ctx, order.ID, domain.TimelineOrderPlaced, "")

	tx, err := w.pay(ctx, logger, order)
	if err != nil {
		return PlaceOrderOutput{}, err
	}

	if tx.Status.Approved() {
		w.recordTimeline(ctx, order.ID, domain.TimelinePaymentApproved, "")

		invoice, err := w.issueInvoice(ctx, logger, client, order)
		if err != nil {
			return PlaceOrderOutput{}, err
		}
		if err := order.Approve(invoice.ID, w.now()); err != nil {
			return PlaceOrderOutput{}, fmt.Errorf("%w: %w", domain.ErrInvoicingFailed, err)
		}
		w.recordTimeline(ctx, order.ID, domain.TimelineInvoiceIssued, invoice.ID.String())
	} else {
		order.Decline(w.now())
		w.recordTimeline(ctx, order.ID, domain.TimelinePaymentDeclined, string(tx.Status))
	}

	// Запись заказа не обновляется: исход оплаты уходит в timeline и outbox.
	w.enqueueSettled(ctx, order)

	logger.WithFields(log.Fields{
		"status":         order.Status,
		"total":          order.Total().String(),
		"transaction_id": tx.ID,
		"invoice_id":     order.InvoiceID,
	}).Info("order settled")

	return newPlaceOrderOutput(order), nil
}

func parseInput(input PlaceOrderInput) (domain.ID, []domain.ID, error) {
	clientID, err := domain.ParseID(input.ClientID)
	if err != nil {
		return "", nil, fmt.Errorf("client id %q: %w", input.ClientID, err)
	}

	productIDs := make([]domain.ID, 0, len(input.Products))
	for i, product := range input.Products {
		id, err := domain.ParseID(product.ProductID)
		if err != nil {
			return "", nil, fmt.Errorf("product #%d id %q: %w", i, product.ProductID, err)
		}
		productIDs = append(productIDs, id)
	}
	return clientID, productIDs, nil
}

func (w *Workflow) findClient(ctx context.Context, logger *log.Entry, clientID domain.ID) (domain.Client, error) {
	var (
		client domain.Client
		found  bool
	)
	err := w.timed(domain.CheckoutStepClient, func() error {
		if err := checkContext(ctx, domain.CheckoutStepClient); err != nil {
			return err
		}
		var findErr error
		client, found, findErr = w.clients.Find(ctx, clientID)
		return findErr
	})
	if err != nil {
		logger.WithError(err).Error("client directory lookup failed")
		return domain.Client{}, fmt.Errorf("find client %s: %w", clientID, err)
	}
	if !found {
		logger.Warn("checkout rejected: client not found")
		return domain.Client{}, fmt.Errorf("%w: %s", domain.ErrClientNotFound, clientID)
	}
	return client, nil
}

func (w *Workflow) persist(ctx context.Context, logger *log.Entry, order *domain.Order) error {
	return w.timed(domain.CheckoutStepPersist, func() error {
		if err := checkContext(ctx, domain.CheckoutStepPersist); err != nil {
			return err
		}
		saved, err := w.orders.Save(ctx, *order)
		if err != nil {
			logger.WithError(err).Error("order persistence failed")
			return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if !saved.ID.IsZero() {
			order.ID = saved.ID
		}
		logger.Debug("order persisted as pending")
		return nil
	})
}

func (w *Workflow) pay(ctx context.Context, logger *log.Entry, order domain.Order) (domain.Transaction, error) {
	var tx domain.Transaction
	err := w.timed(domain.CheckoutStepPayment, func() error {
		if err := checkContext(ctx, domain.CheckoutStepPayment); err != nil {
			return err
		}
		var payErr error
		tx, payErr = w.payments.Process(ctx, domain.PaymentRequest{
			OrderID: order.ID,
			Amount:  order.Total(),
		})
		if payErr != nil {
			logger.WithError(payErr).Error("payment gateway failed")
			return fmt.Errorf("%w: %w", domain.ErrPaymentGateway, payErr)
		}
		return nil
	})
	return tx, err
}

func (w *Workflow) issueInvoice(ctx context.Context, logger *log.Entry, client domain.Client, order domain.Order) (domain.Invoice, error) {
	var invoice domain.Invoice
	err := w.timed(domain.CheckoutStepInvoice, func() error {
		if err := checkContext(ctx, domain.CheckoutStepInvoice); err != nil {
			return err
		}

		items := make([]domain.InvoiceItem, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, domain.InvoiceItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
			})
		}

		var createErr error
		invoice, createErr = w.invoicing.Create(ctx, domain.InvoiceRequest{
			Name:     client.Name,
			Document: client.Document,
			Address:  client.Address,
			Items:    items,
		})
		if createErr != nil {
			logger.WithError(createErr).Error("invoicing failed after approved payment")
			return fmt.Errorf("%w: %w", domain.ErrInvoicingFailed, createErr)
		}
		return nil
	})
	return invoice, err
}

// timed выполняет шаг и пишет его длительность в метрики.
func (w *Workflow) timed(step domain.CheckoutStep, fn func() error) error {
	start := time.Now()
	err := fn()
	if w.metrics != nil {
		w.metrics.RecordStepDuration(string(step), time.Since(start))
	}
	return err
}

// checkContext прерывает оформление, если ctx уже отменён: новые вызовы не делаются.
func checkContext(ctx context.Context, step domain.CheckoutStep) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("checkout aborted before %s step: %w", step, err)
	}
	return nil
}

// failureKind группирует ошибки для метки метрики.
func failureKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, domain.ErrNoProductsSelected):
		return "no_products_selected"
	case errors.Is(err, domain.ErrInvalidID):
		return "invalid_input"
	case errors.Is(err, domain.ErrClientNotFound):
		return "client_not_found"
	case errors.Is(err, domain.ErrProductUnavailable):
		return "product_unavailable"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	case errors.Is(err, domain.ErrPaymentGateway):
		return "payment_gateway"
	case errors.Is(err, domain.ErrInvoicingFailed):
		return "invoicing"
	default:
		return "collaborator"
	}
}
