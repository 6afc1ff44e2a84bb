package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
)

type brokenProductRepo struct {
	domain.ProductRepository
	err error
}

func (r brokenProductRepo) Find(context.Context, domain.ID) (domain.CatalogProduct, error) {
	return domain.CatalogProduct{}, r.err
}

func seededFacade(t *testing.T) *Facade {
	t.Helper()

	ctx := context.Background()
	facade := NewFacade(memory.NewProductRepository(), nil)

	_, err := facade.AddProduct(ctx, AddProductInput{
		ID:            "1",
		Name:          "Product 1",
		Description:   "Description 1",
		PurchasePrice: domain.MustMoney("20"),
		Stock:         10,
	})
	require.NoError(t, err)
	require.NoError(t, facade.SetSalesPrice(ctx, "1", domain.MustMoney("40")))
	return facade
}

func TestFacade_CheckStock(t *testing.T) {
	facade := seededFacade(t)

	level, err := facade.CheckStock(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("1"), level.ProductID)
	assert.Equal(t, 10, level.Stock)
	assert.True(t, level.Available())
}

func TestFacade_CheckStockUnknownProduct(t *testing.T) {
	facade := seededFacade(t)

	level, err := facade.CheckStock(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, 0, level.Stock)
	assert.False(t, level.Available())
}

func TestFacade_Find(t *testing.T) {
	facade := seededFacade(t)

	product, ok, err := facade.Find(context.Background(), "1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Product 1", product.Name)
	assert.True(t, product.SalesPrice.Equal(domain.MustMoney("40")))

	_, ok, err = facade.Find(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFacade_AddProductValidation(t *testing.T) {
	facade := NewFacade(memory.NewProductRepository(), nil)

	_, err := facade.AddProduct(context.Background(), AddProductInput{ID: "2", Stock: -1})
	require.ErrorIs(t, err, domain.ErrProductNameRequired)
	require.ErrorIs(t, err, domain.ErrStockNegative)
}

func TestFacade_SetSalesPriceUnknown(t *testing.T) {
	facade := NewFacade(memory.NewProductRepository(), nil)

	err := facade.SetSalesPrice(context.Background(), "missing", domain.MustMoney("1"))
	require.ErrorIs(t, err, domain.ErrCatalogProductNotFound)
}

func TestFacade_RepositoryFailure(t *testing.T) {
	boom := errors.New("db down")
	facade := NewFacade(brokenProductRepo{err: boom}, nil)

	_, err := facade.CheckStock(context.Background(), "1")
	require.ErrorIs(t, err, boom)

	_, _, err = facade.Find(context.Background(), "1")
	require.ErrorIs(t, err, boom)
}

func TestMockCatalog(t *testing.T) {
	ctx := context.Background()
	mock := NewMockCatalog().WithProduct("1", domain.MustMoney("40"), 1)

	level, err := mock.CheckStock(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 1, level.Stock)

	_, ok, err := mock.Find(ctx, "2")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.CheckStockErr = errors.New("stock failed")
	_, err = mock.CheckStock(ctx, "1")
	require.Error(t, err)

	assert.Equal(t, 2, mock.TotalCheckStockCalls())
	assert.Equal(t, 1, mock.TotalFindCalls())
	assert.Equal(t, []string{"check:1", "find:2", "check:1"}, mock.Calls)
}
