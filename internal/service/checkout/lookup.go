package checkout

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// FindOrder возвращает заказ в том виде, в каком он сохранён, и его timeline.
// Сбой чтения timeline не мешает вернуть сам заказ.
func (w *Workflow) FindOrder(ctx context.Context, id domain.ID) (OrderView, error) {
	order, err := w.orders.FindByID(ctx, id)
	if err != nil {
		return OrderView{}, fmt.Errorf("find order %s: %w", id, err)
	}

	view := OrderView{Order: order}
	if w.timeline == nil {
		return view, nil
	}

	events, err := w.timeline.List(ctx, id)
	if err != nil {
		w.logger.WithError(err).WithField("order_id", id).Warn("list timeline failed")
		return view, nil
	}
	view.Timeline = events
	return view, nil
}
