package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type productRepositoryInMemory struct {
	mu       sync.RWMutex
	products map[domain.ID]domain.CatalogProduct
}

// NewProductRepository создаёт in-memory хранилище каталога.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{products: make(map[domain.ID]domain.CatalogProduct)}
}

func (r *productRepositoryInMemory) Add(ctx context.Context, product domain.CatalogProduct) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return domain.ErrProductAlreadyExists
	}
	r.products[product.ID] = product
	return nil
}

func (r *productRepositoryInMemory) Find(ctx context.Context, id domain.ID) (domain.CatalogProduct, error) {
	if err := ctx.Err(); err != nil {
		return domain.CatalogProduct{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return domain.CatalogProduct{}, domain.ErrCatalogProductNotFound
	}
	return product, nil
}

func (r *productRepositoryInMemory) UpdateSalesPrice(ctx context.Context, id domain.ID, price domain.Money) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return domain.ErrCatalogProductNotFound
	}
	product.SalesPrice = price
	product.UpdatedAt = time.Now().UTC()
	r.products[id] = product
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
