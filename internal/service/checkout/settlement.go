package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
)

// Записи в timeline и outbox не влияют на результат оформления: ошибки
// только логируются. Запись идёт без отмены ctx, чтобы зафиксировать уже
// случившийся исход оплаты.

func (w *Workflow) recordTimeline(ctx context.Context, orderID domain.ID, eventType, reason string) {
	if w.timeline == nil {
		return
	}

	event := domain.TimelineEvent{
		OrderID:  orderID,
		Type:     eventType,
		Reason:   reason,
		Occurred: w.now(),
	}
	if err := w.timeline.Append(context.WithoutCancel(ctx), event); err != nil {
		w.logger.WithError(err).WithFields(log.Fields{
			"order_id": orderID,
			"event":    eventType,
		}).Warn("append timeline event failed")
		if w.metrics != nil {
			w.metrics.RecordSideEffectError("timeline")
		}
		return
	}
	if w.metrics != nil {
		w.metrics.RecordTimelineEvent()
	}
}

func (w *Workflow) enqueueSettled(ctx context.Context, order domain.Order) {
	if w.outbox == nil {
		return
	}

	logger := w.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"event":    kafka.EventTypeOrderSettled,
	})

	msg, err := settledMessage(order, w.now)
	if err != nil {
		logger.WithError(err).Error("marshal settled event failed")
		if w.metrics != nil {
			w.metrics.RecordSideEffectError("outbox")
		}
		return
	}

	if _, err := w.outbox.Enqueue(context.WithoutCancel(ctx), msg); err != nil {
		logger.WithError(err).Error("enqueue settled event failed")
		if w.metrics != nil {
			w.metrics.RecordSideEffectError("outbox")
		}
		return
	}
	if w.metrics != nil {
		w.metrics.RecordOutboxEvent()
	}
}

func settledMessage(order domain.Order, now func() time.Time) (domain.OutboxMessage, error) {
	payload, err := json.Marshal(kafka.NewOrderSettledEvent(order, now()))
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal order settled event: %w", err)
	}
	return domain.OutboxMessage{
		AggregateType: kafka.AggregateOrder,
		AggregateID:   order.ID.String(),
		EventType:     string(kafka.EventTypeOrderSettled),
		Payload:       payload,
	}, nil
}
