package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	// EventTypeOrderSettled — заказ получил исход оплаты (approved/declined).
	EventTypeOrderSettled EventType = "checkout.order_settled"
)

// Topics для Kafka
const (
	TopicOrderEvents     = "checkout.order.events"
	TopicDeadLetterQueue = "checkout.dlq" // Dead Letter Queue для failed messages
)

// AggregateOrder — тип агрегата в outbox-сообщениях о заказах.
const AggregateOrder = "order"

// SettledItem — позиция заказа в событии.
type SettledItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// OrderSettledEvent — снимок заказа после оплаты. Запись заказа в хранилище
// остаётся pending, поэтому потребителям исход доступен только из этого события.
type OrderSettledEvent struct {
	EventType EventType     `json:"event_type"`
	OrderID   string        `json:"order_id"`
	ClientID  string        `json:"client_id"`
	Status    string        `json:"status"`
	Total     string        `json:"total"`
	InvoiceID string        `json:"invoice_id,omitempty"`
	Items     []SettledItem `json:"items"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewOrderSettledEvent строит событие по снимку заказа.
func NewOrderSettledEvent(order domain.Order, at time.Time) *OrderSettledEvent {
	items := make([]SettledItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, SettledItem{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price.String(),
		})
	}

	return &OrderSettledEvent{
		EventType: EventTypeOrderSettled,
		OrderID:   order.ID.String(),
		ClientID:  order.ClientID.String(),
		Status:    string(order.Status),
		Total:     order.Total().String(),
		InvoiceID: order.InvoiceID.String(),
		Items:     items,
		Timestamp: at,
	}
}
