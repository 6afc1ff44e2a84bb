package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/catalog"
	"github.com/vladislavdragonenkov/checkout/internal/service/payment"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

type stubClients struct {
	mu      sync.Mutex
	clients map[domain.ID]domain.Client
	err     error
	calls   int
}

func (s *stubClients) Find(_ context.Context, id domain.ID) (domain.Client, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return domain.Client{}, false, s.err
	}
	client, ok := s.clients[id]
	return client, ok, nil
}

func (s *stubClients) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubInvoicing struct {
	mu       sync.Mutex
	err      error
	calls    int
	requests []domain.InvoiceRequest
}

func (s *stubInvoicing) Create(_ context.Context, req domain.InvoiceRequest) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.requests = append(s.requests, req)
	if s.err != nil {
		return domain.Invoice{}, s.err
	}
	return domain.Invoice{
		ID:       "1i",
		Name:     req.Name,
		Document: req.Document,
		Address:  req.Address,
		Items:    req.Items,
	}, nil
}

func (s *stubInvoicing) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// countingOrders оборачивает in-memory репозиторий и считает сохранения.
type countingOrders struct {
	domain.OrderRepository
	mu    sync.Mutex
	err   error
	saves int
	saved []domain.Order
}

func (c *countingOrders) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	c.mu.Lock()
	c.saves++
	c.saved = append(c.saved, order.Clone())
	err := c.err
	c.mu.Unlock()

	if err != nil {
		return domain.Order{}, err
	}
	return c.OrderRepository.Save(ctx, order)
}

func (c *countingOrders) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

type failingTimeline struct{ err error }

func (f failingTimeline) Append(context.Context, domain.TimelineEvent) error { return f.err }

func (f failingTimeline) List(context.Context, domain.ID) ([]domain.TimelineEvent, error) {
	return nil, f.err
}

type failingOutbox struct {
	domain.OutboxRepository
	err error
}

func (f failingOutbox) Enqueue(context.Context, domain.OutboxMessage) (domain.OutboxMessage, error) {
	return domain.OutboxMessage{}, f.err
}

type fixture struct {
	clients   *stubClients
	catalog   *catalog.MockCatalog
	payments  *payment.MockGateway
	invoicing *stubInvoicing
	orders    *countingOrders
	timeline  domain.TimelineRepository
	outbox    domain.OutboxRepository
}

func newFixture() *fixture {
	return &fixture{
		clients: &stubClients{clients: map[domain.ID]domain.Client{
			"1c": {
				ID:       "1c",
				Name:     "Client 1",
				Email:    "x@x.com",
				Document: "0000",
				Address:  domain.NewAddress("Street", "123", "Complement", "City", "State", "0000"),
			},
		}},
		catalog: catalog.NewMockCatalog().
			WithProduct("1", domain.MustMoney("40"), 10).
			WithProduct("2", domain.MustMoney("30"), 10),
		payments:  payment.NewMockGateway(),
		invoicing: &stubInvoicing{},
		orders:    &countingOrders{OrderRepository: memory.NewOrderRepository()},
		timeline:  memory.NewTimelineRepository(),
		outbox:    memory.NewOutboxRepository(),
	}
}

func (f *fixture) dependencies() Dependencies {
	return Dependencies{
		Clients:   f.clients,
		Catalog:   f.catalog,
		Payments:  f.payments,
		Invoicing: f.invoicing,
		Orders:    f.orders,
		Timeline:  f.timeline,
		Outbox:    f.outbox,
	}
}

func (f *fixture) workflow(t *testing.T, opts ...Option) *Workflow {
	t.Helper()

	opts = append([]Option{WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	})}, opts...)
	workflow, err := NewWorkflow(f.dependencies(), opts...)
	require.NoError(t, err)
	return workflow
}

func products(ids ...string) []ProductInput {
	result := make([]ProductInput, 0, len(ids))
	for _, id := range ids {
		result = append(result, ProductInput{ProductID: id})
	}
	return result
}

func pendingOutbox(t *testing.T, outbox domain.OutboxRepository) []domain.OutboxMessage {
	t.Helper()

	type allPending interface {
		AllPending() []domain.OutboxMessage
	}

	repo, ok := outbox.(allPending)
	if !ok {
		t.Fatalf("outbox repository does not support AllPending")
	}
	return repo.AllPending()
}
