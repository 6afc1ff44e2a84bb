// Package catalog объединяет администрирование товаров (остатки, закупочная цена)
// и витрину (цена продажи) поверх одного ProductRepository.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// AddProductInput — данные нового товара.
type AddProductInput struct {
	ID            domain.ID
	Name          string
	Description   string
	PurchasePrice domain.Money
	Stock         int
}

// Facade реализует порт Catalog для workflow и операции администрирования.
type Facade struct {
	repo   domain.ProductRepository
	logger *log.Entry
	now    func() time.Time
}

// NewFacade создаёт фасад каталога.
func NewFacade(repo domain.ProductRepository, logger *log.Entry) *Facade {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Facade{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// AddProduct регистрирует товар. Цена продажи задаётся отдельно через SetSalesPrice.
func (f *Facade) AddProduct(ctx context.Context, input AddProductInput) (domain.CatalogProduct, error) {
	now := f.now()
	product := domain.CatalogProduct{
		ID:            domain.IDOrNew(input.ID),
		Name:          input.Name,
		Description:   input.Description,
		PurchasePrice: input.PurchasePrice,
		SalesPrice:    domain.Zero(),
		Stock:         input.Stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if errs := product.Validate(); len(errs) > 0 {
		return domain.CatalogProduct{}, errors.Join(errs...)
	}

	if err := f.repo.Add(ctx, product); err != nil {
		return domain.CatalogProduct{}, fmt.Errorf("add product %s: %w", product.ID, err)
	}

	f.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"stock":      product.Stock,
	}).Info("product registered")
	return product, nil
}

// SetSalesPrice задаёт цену продажи. Уже оформленные заказы хранят свою цену и не меняются.
func (f *Facade) SetSalesPrice(ctx context.Context, id domain.ID, price domain.Money) error {
	if err := f.repo.UpdateSalesPrice(ctx, id, price); err != nil {
		return fmt.Errorf("set sales price %s: %w", id, err)
	}
	f.logger.WithFields(log.Fields{
		"product_id": id,
		"price":      price.String(),
	}).Info("sales price updated")
	return nil
}

// CheckStock возвращает остаток товара. Неизвестный товар имеет остаток 0.
func (f *Facade) CheckStock(ctx context.Context, productID domain.ID) (domain.StockLevel, error) {
	product, err := f.repo.Find(ctx, productID)
	switch {
	case errors.Is(err, domain.ErrCatalogProductNotFound):
		return domain.StockLevel{ProductID: productID, Stock: 0}, nil
	case err != nil:
		return domain.StockLevel{}, fmt.Errorf("check stock %s: %w", productID, err)
	}
	return domain.StockLevel{ProductID: productID, Stock: product.Stock}, nil
}

// Find возвращает снимок товара витрины; found=false, если товара нет.
func (f *Facade) Find(ctx context.Context, productID domain.ID) (domain.Product, bool, error) {
	product, err := f.repo.Find(ctx, productID)
	switch {
	case errors.Is(err, domain.ErrCatalogProductNotFound):
		return domain.Product{}, false, nil
	case err != nil:
		return domain.Product{}, false, fmt.Errorf("find product %s: %w", productID, err)
	}
	return product.Snapshot(), true, nil
}

var _ domain.Catalog = (*Facade)(nil)
