package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Save создаёт новую запись и возвращает сохранённый заказ.
	// Обновления на месте не поддерживаются: повторный ID даёт ErrOrderAlreadyExists.
	Save(ctx context.Context, order Order) (Order, error)
	// FindByID возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	FindByID(ctx context.Context, id ID) (Order, error)
}

// ClientRepository хранит клиентов справочника.
type ClientRepository interface {
	Add(ctx context.Context, client Client) error
	// Find возвращает клиента или ErrClientNotFound.
	Find(ctx context.Context, id ID) (Client, error)
}

// ProductRepository хранит товары каталога вместе с остатками и ценами.
type ProductRepository interface {
	Add(ctx context.Context, product CatalogProduct) error
	// Find возвращает товар или ErrCatalogProductNotFound.
	Find(ctx context.Context, id ID) (CatalogProduct, error)
	UpdateSalesPrice(ctx context.Context, id ID, price Money) error
}

// InvoiceRepository хранит выставленные счета.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice Invoice) error
	// Find возвращает счёт или ErrInvoiceNotFound.
	Find(ctx context.Context, id ID) (Invoice, error)
}

// TransactionRepository хранит результаты платежей.
type TransactionRepository interface {
	Save(ctx context.Context, tx Transaction) error
}
