package domain

import (
	"context"
	"time"
)

// ClientDirectory — справочник клиентов.
type ClientDirectory interface {
	// Find возвращает клиента; found=false, если клиента нет. Отсутствие клиента не ошибка.
	Find(ctx context.Context, id ID) (client Client, found bool, err error)
}

// Catalog — склад и каталог витрины.
type Catalog interface {
	// CheckStock возвращает текущий остаток товара.
	CheckStock(ctx context.Context, productID ID) (StockLevel, error)
	// Find возвращает товар с актуальной ценой продажи; found=false, если товара нет.
	Find(ctx context.Context, productID ID) (product Product, found bool, err error)
}

// PaymentGateway — платёжный шлюз.
type PaymentGateway interface {
	// Process выполняет одну попытку оплаты. Отказ в оплате возвращается статусом,
	// ошибка означает сбой самого шлюза.
	Process(ctx context.Context, req PaymentRequest) (Transaction, error)
}

// Invoicing — выставление счетов.
type Invoicing interface {
	Create(ctx context.Context, req InvoiceRequest) (Invoice, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// OutboxPruner удаляет доставленные outbox-сообщения старше before, не больше limit
// за вызов, и возвращает число удалённых.
type OutboxPruner interface {
	DeleteSentBefore(ctx context.Context, before time.Time, limit int) (int, error)
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(ctx context.Context, event TimelineEvent) error
	List(ctx context.Context, orderID ID) ([]TimelineEvent, error)
}

// CheckoutStep задаёт константы шагов оформления для метрик/логов.
type CheckoutStep string

const (
	CheckoutStepClient   CheckoutStep = "client"
	CheckoutStepValidate CheckoutStep = "validate"
	CheckoutStepPricing  CheckoutStep = "pricing"
	CheckoutStepPersist  CheckoutStep = "persist"
	CheckoutStepPayment  CheckoutStep = "payment"
	CheckoutStepInvoice  CheckoutStep = "invoice"
)

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
