package domain

import "time"

// InvoiceItem — строка счёта.
type InvoiceItem struct {
	ProductID ID
	Name      string
	Price     Money
}

// InvoiceRequest — данные для выставления счёта: реквизиты клиента и позиции заказа.
type InvoiceRequest struct {
	Name     string
	Document string
	Address  Address
	Items    []InvoiceItem
}

// Invoice — выставленный счёт.
type Invoice struct {
	ID        ID
	Name      string
	Document  string
	Address   Address
	Items     []InvoiceItem
	CreatedAt time.Time
}

// Total — сумма цен позиций счёта.
func (i Invoice) Total() Money {
	total := Zero()
	for _, item := range i.Items {
		total = total.Add(item.Price)
	}
	return total
}

// Validate проверяет, что счёт можно сохранить.
func (r *InvoiceRequest) Validate() []error {
	var errs []error

	if r.Name == "" {
		errs = append(errs, ErrClientNameRequired)
	}
	if r.Document == "" {
		errs = append(errs, ErrClientDocumentRequired)
	}
	if len(r.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	return errs
}
