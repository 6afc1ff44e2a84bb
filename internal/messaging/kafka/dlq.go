package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotDLQRecord — сообщение не похоже на запись DLQ outbox relay.
var ErrNotDLQRecord = errors.New("message is not an outbox dlq record")

// OutboxEnvelope — конверт, в котором outbox-сообщения уходят в Kafka.
type OutboxEnvelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

// Key возвращает ключ партиционирования: агрегат, а без него id сообщения.
func (e OutboxEnvelope) Key() string {
	if e.AggregateID != "" {
		return e.AggregateID
	}
	return e.ID
}

// DLQRecord — содержимое конверта в DLQ: исходное событие и причина,
// по которой relay не смог его доставить.
type DLQRecord struct {
	OutboxID       string          `json:"outbox_id"`
	AggregateType  string          `json:"aggregate_type"`
	AggregateID    string          `json:"aggregate_id"`
	EventType      string          `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`
	PublishError   string          `json:"publish_error,omitempty"`
	DLQPublishedAt string          `json:"dlq_published_at,omitempty"`
}

// ParseDLQMessage разбирает значение сообщения из DLQ topic.
// Сообщения другого формата возвращают ErrNotDLQRecord.
func ParseDLQMessage(value []byte) (DLQRecord, error) {
	var envelope OutboxEnvelope
	if err := json.Unmarshal(value, &envelope); err != nil || len(envelope.Payload) == 0 {
		return DLQRecord{}, ErrNotDLQRecord
	}

	var record DLQRecord
	if err := json.Unmarshal(envelope.Payload, &record); err != nil {
		return DLQRecord{}, fmt.Errorf("decode outbox dlq payload: %w", err)
	}
	if len(record.Payload) == 0 {
		return DLQRecord{}, errors.New("outbox dlq payload does not contain original event payload")
	}

	record.OutboxID = firstNonEmpty(record.OutboxID, envelope.ID)
	record.AggregateType = firstNonEmpty(record.AggregateType, envelope.AggregateType)
	record.AggregateID = firstNonEmpty(record.AggregateID, envelope.AggregateID)
	record.EventType = firstNonEmpty(record.EventType, envelope.EventType)
	return record, nil
}

// ReplayEnvelope восстанавливает конверт исходного события для повторной публикации.
func (r DLQRecord) ReplayEnvelope(now time.Time) OutboxEnvelope {
	return OutboxEnvelope{
		ID:            r.OutboxID,
		AggregateType: r.AggregateType,
		AggregateID:   r.AggregateID,
		EventType:     r.EventType,
		Payload:       r.Payload,
		PublishedAt:   now,
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
