package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию хранилища каталога.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Add(ctx context.Context, product domain.CatalogProduct) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, description, purchase_price, sales_price, stock, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		product.ID, product.Name, product.Description, product.PurchasePrice,
		product.SalesPrice, product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductAlreadyExists
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *productRepository) Find(ctx context.Context, id domain.ID) (domain.CatalogProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product domain.CatalogProduct
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, purchase_price, sales_price, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.PurchasePrice,
		&product.SalesPrice, &product.Stock, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CatalogProduct{}, domain.ErrCatalogProductNotFound
		}
		return domain.CatalogProduct{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateSalesPrice(ctx context.Context, id domain.ID, price domain.Money) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET sales_price = $2,
		    updated_at = $3
		WHERE id = $1
	`, id, price, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update sales price: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCatalogProductNotFound
	}

	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
