package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

func settledOrder(t *testing.T) domain.Order {
	t.Helper()

	order, err := domain.NewOrder("order-123", "1c", []domain.OrderItem{
		{ProductID: "1", Name: "Product 1", Price: domain.MustMoney("40")},
		{ProductID: "2", Name: "Product 2", Price: domain.MustMoney("30")},
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	if err := order.Approve("inv-1", time.Now().UTC()); err != nil {
		t.Fatalf("approve: %v", err)
	}
	return order
}

func TestProducer_PublishEvent(t *testing.T) {
	// Создаем mock producer
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSarama(mockProducer, log.WithField("component", "kafka-producer-test"))

	// Проверяем ключ и тело сообщения
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "order-123" {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != TopicOrderEvents {
			return errors.New("unexpected topic " + msg.Topic)
		}
		return nil
	})

	event := NewOrderSettledEvent(settledOrder(t), time.Now().UTC())
	if err := producer.PublishEvent(context.Background(), TopicOrderEvents, "order-123", event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Проверяем, что все ожидания выполнены
	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_Error(t *testing.T) {
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSarama(mockProducer, nil)

	// Настраиваем ожидание ошибки
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishEvent(context.Background(), TopicOrderEvents, "order-123", map[string]string{"status": "approved"})
	if !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishEvent_CanceledContext(t *testing.T) {
	// Без ожиданий: mock упадёт, если сообщение всё же уйдёт.
	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := NewProducerFromSarama(mockProducer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := producer.PublishEvent(ctx, TopicOrderEvents, "k", struct{}{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOrderSettledEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event := NewOrderSettledEvent(settledOrder(t), at)

	if event.EventType != EventTypeOrderSettled {
		t.Errorf("expected event type %s, got %s", EventTypeOrderSettled, event.EventType)
	}
	if event.Status != string(domain.OrderStatusApproved) {
		t.Errorf("expected approved status, got %s", event.Status)
	}
	if event.Total != "70" {
		t.Errorf("expected total 70, got %s", event.Total)
	}
	if event.InvoiceID != "inv-1" {
		t.Errorf("expected invoice id inv-1, got %s", event.InvoiceID)
	}
	if len(event.Items) != 2 || event.Items[0].Price != "40" {
		t.Errorf("unexpected items: %+v", event.Items)
	}
	if !event.Timestamp.Equal(at) {
		t.Errorf("unexpected timestamp: %s", event.Timestamp)
	}

	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["order_id"] != "order-123" || decoded["client_id"] != "1c" {
		t.Errorf("unexpected payload: %s", data)
	}
}
