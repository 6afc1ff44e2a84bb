package catalog

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// MockCatalog — конфигурируемая заглушка Catalog для тестов.
type MockCatalog struct {
	mu sync.Mutex

	Stock    map[domain.ID]int
	Products map[domain.ID]domain.Product

	CheckStockErr error
	FindErr       error

	CheckStockCalls map[domain.ID]int
	FindCalls       map[domain.ID]int
	// Calls хранит последовательность вызовов вида "check:<id>" / "find:<id>".
	Calls []string
}

// NewMockCatalog возвращает пустой mock: все товары неизвестны.
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{
		Stock:           make(map[domain.ID]int),
		Products:        make(map[domain.ID]domain.Product),
		CheckStockCalls: make(map[domain.ID]int),
		FindCalls:       make(map[domain.ID]int),
	}
}

// WithProduct добавляет товар с ценой и остатком.
func (m *MockCatalog) WithProduct(id domain.ID, price domain.Money, stock int) *MockCatalog {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Stock[id] = stock
	m.Products[id] = domain.Product{
		ID:          id,
		Name:        "Product " + id.String(),
		Description: "Description " + id.String(),
		SalesPrice:  price,
	}
	return m
}

// CheckStock возвращает настроенный остаток и считает вызовы.
func (m *MockCatalog) CheckStock(_ context.Context, productID domain.ID) (domain.StockLevel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CheckStockCalls[productID]++
	m.Calls = append(m.Calls, "check:"+productID.String())
	if m.CheckStockErr != nil {
		return domain.StockLevel{}, m.CheckStockErr
	}
	return domain.StockLevel{ProductID: productID, Stock: m.Stock[productID]}, nil
}

// Find возвращает настроенный товар и считает вызовы.
func (m *MockCatalog) Find(_ context.Context, productID domain.ID) (domain.Product, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindCalls[productID]++
	m.Calls = append(m.Calls, "find:"+productID.String())
	if m.FindErr != nil {
		return domain.Product{}, false, m.FindErr
	}
	product, ok := m.Products[productID]
	return product, ok, nil
}

// TotalCheckStockCalls возвращает общее число вызовов CheckStock.
func (m *MockCatalog) TotalCheckStockCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sumCalls(m.CheckStockCalls)
}

// TotalFindCalls возвращает общее число вызовов Find.
func (m *MockCatalog) TotalFindCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sumCalls(m.FindCalls)
}

func sumCalls(calls map[domain.ID]int) int {
	total := 0
	for _, n := range calls {
		total += n
	}
	return total
}

var _ domain.Catalog = (*MockCatalog)(nil)
