package app

import (
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/metrics"
	"github.com/vladislavdragonenkov/checkout/internal/service/catalog"
	"github.com/vladislavdragonenkov/checkout/internal/service/checkout"
	"github.com/vladislavdragonenkov/checkout/internal/service/clientadm"
	"github.com/vladislavdragonenkov/checkout/internal/service/invoice"
	"github.com/vladislavdragonenkov/checkout/internal/service/payment"
)

// Services — in-process адаптеры и сам workflow оформления заказа.
type Services struct {
	Clients  *clientadm.Facade
	Catalog  *catalog.Facade
	Payments *payment.Gateway
	Invoices *invoice.Facade
	Checkout *checkout.Workflow
}

// NewServices собирает адаптеры поверх репозиториев и связывает их с workflow.
// checkoutMetrics может быть nil: тогда метрики оформления не пишутся.
func NewServices(deps *Dependencies, cfg Config, checkoutMetrics *metrics.CheckoutMetrics) (*Services, error) {
	logger := deps.Logger

	clients := clientadm.NewFacade(deps.Clients, logger.WithField("component", "client-adm"))
	products := catalog.NewFacade(deps.Products, logger.WithField("component", "catalog"))
	payments := payment.NewGateway(
		deps.Transactions,
		logger.WithField("component", "payment"),
		payment.WithApprovalThreshold(cfg.PaymentApprovalThreshold),
	)
	invoices := invoice.NewFacade(deps.Invoices, logger.WithField("component", "invoice"))

	opts := []checkout.Option{checkout.WithLogger(logger.WithField("component", "checkout"))}
	if checkoutMetrics != nil {
		opts = append(opts, checkout.WithMetrics(checkoutMetrics))
	}

	workflow, err := checkout.NewWorkflow(checkout.Dependencies{
		Clients:   clients,
		Catalog:   products,
		Payments:  payments,
		Invoicing: invoices,
		Orders:    deps.Orders,
		Timeline:  deps.Timeline,
		Outbox:    deps.Outbox,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("build checkout workflow: %w", err)
	}

	return &Services{
		Clients:  clients,
		Catalog:  products,
		Payments: payments,
		Invoices: invoices,
		Checkout: workflow,
	}, nil
}
