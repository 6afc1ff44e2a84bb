package domain

import "time"

// Product — снимок товара из каталога витрины, по которому считается цена.
type Product struct {
	ID          ID
	Name        string
	Description string
	SalesPrice  Money
}

// StockLevel — ответ каталога на проверку остатка.
type StockLevel struct {
	ProductID ID
	Stock     int
}

// Available сообщает, что товар можно продать: остаток строго больше нуля.
func (s StockLevel) Available() bool {
	return s.Stock > 0
}

// CatalogProduct — запись товара в хранилище каталога: административные
// поля (закупочная цена, остаток) и цена продажи витрины.
type CatalogProduct struct {
	ID            ID
	Name          string
	Description   string
	PurchasePrice Money
	SalesPrice    Money
	Stock         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot возвращает проекцию для расчёта цены.
func (p CatalogProduct) Snapshot() Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SalesPrice:  p.SalesPrice,
	}
}

// Validate проверяет поля товара перед сохранением.
func (p *CatalogProduct) Validate() []error {
	var errs []error

	if p.ID.IsZero() {
		errs = append(errs, ErrInvalidID)
	}
	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrStockNegative)
	}

	return errs
}
