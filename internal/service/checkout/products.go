package checkout

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// ValidateProducts проверяет остаток каждого запрошенного товара.
//
// CheckStock вызывается для каждой позиции, включая повторы, и проверка не
// останавливается на первом недоступном товаре. Возвращается
// ProductUnavailableError для первого недоступного товара в порядке запроса.
// Сбой самого каталога прерывает проверку сразу.
func (w *Workflow) ValidateProducts(ctx context.Context, productIDs []domain.ID) error {
	if len(productIDs) == 0 {
		return domain.ErrNoProductsSelected
	}

	var firstUnavailable domain.ID
	for _, id := range productIDs {
		if err := checkContext(ctx, domain.CheckoutStepValidate); err != nil {
			return err
		}

		level, err := w.catalog.CheckStock(ctx, id)
		if err != nil {
			w.logger.WithError(err).WithField("product_id", id).Error("stock check failed")
			return fmt.Errorf("check stock %s: %w", id, err)
		}

		w.logger.WithFields(log.Fields{
			"product_id": id,
			"stock":      level.Stock,
		}).Debug("stock checked")

		if !level.Available() && firstUnavailable.IsZero() {
			firstUnavailable = id
		}
	}

	if !firstUnavailable.IsZero() {
		return domain.NewProductUnavailableError(firstUnavailable)
	}
	return nil
}

// GetProduct возвращает актуальную позицию для заказа по данным каталога.
func (w *Workflow) GetProduct(ctx context.Context, productID domain.ID) (domain.OrderItem, error) {
	if err := checkContext(ctx, domain.CheckoutStepPricing); err != nil {
		return domain.OrderItem{}, err
	}

	product, found, err := w.catalog.Find(ctx, productID)
	if err != nil {
		w.logger.WithError(err).WithField("product_id", productID).Error("catalog lookup failed")
		return domain.OrderItem{}, fmt.Errorf("find product %s: %w", productID, err)
	}
	if !found {
		return domain.OrderItem{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	return domain.OrderItem{
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.SalesPrice,
	}, nil
}

// priceItems запрашивает каталог один раз на каждый уникальный товар в порядке
// запроса и собирает по позиции на каждое вхождение.
func (w *Workflow) priceItems(ctx context.Context, productIDs []domain.ID) ([]domain.OrderItem, error) {
	priced := make(map[domain.ID]domain.OrderItem, len(productIDs))
	items := make([]domain.OrderItem, 0, len(productIDs))

	for _, id := range productIDs {
		item, ok := priced[id]
		if !ok {
			var err error
			item, err = w.GetProduct(ctx, id)
			if err != nil {
				return nil, err
			}
			if item.ProductID.IsZero() {
				item.ProductID = id
			}
			priced[id] = item
		}
		items = append(items, item)
	}
	return items, nil
}
