package domain

import "time"

// OrderStatus описывает жизненный цикл заказа при оформлении.
type OrderStatus string

const (
	// OrderStatusPending — заказ собран и сохранён, исход оплаты ещё неизвестен.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusApproved — платёж одобрен, по заказу выставлен счёт.
	OrderStatusApproved OrderStatus = "approved"
	// OrderStatusDeclined — платёж не одобрен, счёт не выставляется.
	OrderStatusDeclined OrderStatus = "declined"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusDeclined:
		return true
	default:
		return false
	}
}

// Settled сообщает, что исход оплаты уже известен.
func (s OrderStatus) Settled() bool {
	return s == OrderStatusApproved || s == OrderStatusDeclined
}

// OrderItem — позиция заказа. Price фиксируется в момент оформления
// и не зависит от последующих изменений каталога.
type OrderItem struct {
	ProductID   ID
	Name        string
	Description string
	Price       Money
}

// Order агрегирует состояние заказа и его позиции.
type Order struct {
	ID        ID
	ClientID  ID
	Items     []OrderItem
	Status    OrderStatus
	InvoiceID ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder собирает заказ в статусе pending. Пустой id заменяется сгенерированным.
func NewOrder(id, clientID ID, items []OrderItem, now time.Time) (Order, error) {
	if clientID.IsZero() {
		return Order{}, ErrClientRequired
	}
	if len(items) == 0 {
		return Order{}, ErrItemsRequired
	}

	copied := make([]OrderItem, len(items))
	copy(copied, items)

	return Order{
		ID:        IDOrNew(id),
		ClientID:  clientID,
		Items:     copied,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Total — сумма цен текущих позиций. Всегда вычисляется, никогда не хранится отдельно.
func (o Order) Total() Money {
	total := Zero()
	for _, item := range o.Items {
		total = total.Add(item.Price)
	}
	return total
}

// Approve фиксирует одобренную оплату и привязывает выставленный счёт.
func (o *Order) Approve(invoiceID ID, now time.Time) error {
	if invoiceID.IsZero() {
		return ErrInvoiceRequired
	}
	o.Status = OrderStatusApproved
	o.InvoiceID = invoiceID
	o.UpdatedAt = now
	return nil
}

// Decline фиксирует неодобренную оплату; счёт у такого заказа отсутствует.
func (o *Order) Decline(now time.Time) {
	o.Status = OrderStatusDeclined
	o.InvoiceID = ""
	o.UpdatedAt = now
}

// Clone возвращает копию заказа с независимым срезом позиций.
func (o Order) Clone() Order {
	clone := o
	clone.Items = make([]OrderItem, len(o.Items))
	copy(clone.Items, o.Items)
	return clone
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.ID.IsZero() {
		errs = append(errs, ErrInvalidID)
	}
	if o.ClientID.IsZero() {
		errs = append(errs, ErrClientRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrOrderStatusInvalid)
	}
	for _, item := range o.Items {
		if item.ProductID.IsZero() {
			errs = append(errs, ErrInvalidID)
		}
		if item.Price.Decimal().IsNegative() {
			errs = append(errs, ErrNegativeAmount)
		}
	}

	// invoiceId задан тогда и только тогда, когда заказ одобрен.
	switch {
	case o.Status == OrderStatusApproved && o.InvoiceID.IsZero():
		errs = append(errs, ErrInvoiceRequired)
	case o.Status != OrderStatusApproved && !o.InvoiceID.IsZero():
		errs = append(errs, ErrInvoiceWithoutApproval)
	}

	return errs
}
