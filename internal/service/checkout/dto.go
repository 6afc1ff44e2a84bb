package checkout

import "github.com/vladislavdragonenkov/checkout/internal/domain"

// ProductInput — запрошенный товар. Цена не принимается от вызывающего кода:
// она всегда берётся из каталога.
type ProductInput struct {
	ProductID string `json:"productId"`
}

// PlaceOrderInput — запрос на оформление заказа.
type PlaceOrderInput struct {
	ClientID string         `json:"clientId"`
	Products []ProductInput `json:"products"`
}

// OrderItemOutput — позиция в ответе.
type OrderItemOutput struct {
	ProductID domain.ID    `json:"productId"`
	Name      string       `json:"name"`
	Price     domain.Money `json:"price"`
}

// PlaceOrderOutput — снимок заказа, который видит вызывающий код.
type PlaceOrderOutput struct {
	ID        domain.ID          `json:"id"`
	ClientID  domain.ID          `json:"clientId"`
	Status    domain.OrderStatus `json:"status"`
	Total     domain.Money       `json:"total"`
	Products  []OrderItemOutput  `json:"products"`
	InvoiceID domain.ID          `json:"invoiceId,omitempty"`
}

// Approved сообщает, что оплата прошла и счёт выставлен.
func (o PlaceOrderOutput) Approved() bool {
	return o.Status == domain.OrderStatusApproved
}

func newPlaceOrderOutput(order domain.Order) PlaceOrderOutput {
	products := make([]OrderItemOutput, 0, len(order.Items))
	for _, item := range order.Items {
		products = append(products, OrderItemOutput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
		})
	}

	return PlaceOrderOutput{
		ID:        order.ID,
		ClientID:  order.ClientID,
		Status:    order.Status,
		Total:     order.Total(),
		Products:  products,
		InvoiceID: order.InvoiceID,
	}
}

// OrderView — сохранённый заказ вместе с историей расчёта.
// Status здесь тот, что записан в хранилище (pending): исход оплаты
// отражается только в Timeline.
type OrderView struct {
	Order    domain.Order
	Timeline []domain.TimelineEvent
}

// SettledStatus выводит исход оплаты из timeline. approved возвращается только
// вместе с выставленным счётом: одобренная оплата без InvoiceIssued (сбой
// выставления счёта) остаётся незавершённой и даёт статус из хранилища.
func (v OrderView) SettledStatus() domain.OrderStatus {
	var approved, declined bool
	for _, event := range v.Timeline {
		switch event.Type {
		case domain.TimelinePaymentApproved:
			approved = true
		case domain.TimelinePaymentDeclined:
			declined = true
		}
	}

	switch {
	case approved && !v.SettledInvoiceID().IsZero():
		return domain.OrderStatusApproved
	case declined:
		return domain.OrderStatusDeclined
	default:
		return v.Order.Status
	}
}

// SettledInvoiceID возвращает счёт из события InvoiceIssued или пустой ID.
func (v OrderView) SettledInvoiceID() domain.ID {
	for _, event := range v.Timeline {
		if event.Type == domain.TimelineInvoiceIssued && event.Reason != "" {
			return domain.ID(event.Reason)
		}
	}
	return ""
}
