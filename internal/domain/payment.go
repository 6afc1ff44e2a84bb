package domain

import "time"

// PaymentStatus — статус, который вернул платёжный шлюз.
type PaymentStatus string

const (
	// PaymentStatusApproved — единственный статус, при котором заказ считается оплаченным.
	PaymentStatusApproved PaymentStatus = "approved"
	// PaymentStatusDeclined — платёж отклонён.
	PaymentStatusDeclined PaymentStatus = "declined"
)

// Approved сообщает, что платёж одобрен. Любой другой статус трактуется как отказ.
func (s PaymentStatus) Approved() bool {
	return s == PaymentStatusApproved
}

// PaymentRequest — запрос на оплату заказа.
type PaymentRequest struct {
	OrderID ID
	Amount  Money
}

// Transaction — результат обработки платежа шлюзом.
type Transaction struct {
	ID        ID
	OrderID   ID
	Amount    Money
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
