package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
)

func enqueueSettled(t *testing.T, deps *Dependencies, orderID string) {
	t.Helper()

	_, err := deps.Outbox.Enqueue(context.Background(), domain.OutboxMessage{
		AggregateType: kafka.AggregateOrder,
		AggregateID:   orderID,
		EventType:     string(kafka.EventTypeOrderSettled),
		Payload:       []byte(`{"order_id":"` + orderID + `"}`),
	})
	require.NoError(t, err)
}

func relayConfig() Config {
	cfg := DefaultConfig()
	cfg.OpsAddr = "127.0.0.1:0"
	cfg.OutboxPollInterval = 10 * time.Millisecond
	cfg.OutboxRetryDelay = 0
	return cfg
}

func TestRunRelay_PublishesPendingAndStops(t *testing.T) {
	cfg := relayConfig()
	deps, err := NewDependencies(context.Background(), cfg, log.WithField("test", "relay"))
	require.NoError(t, err)
	enqueueSettled(t, deps, "order-1")

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicOrderEvents {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "order-1" {
			return errors.New("unexpected key " + string(key))
		}
		return nil
	})
	producer := kafka.NewProducerFromSarama(mockProducer, log.WithField("test", "relay"))
	defer func() { _ = producer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runRelay(ctx, cfg, deps, producer, log.WithField("test", "relay"))
	}()

	require.Eventually(t, func() bool {
		stats, err := deps.Outbox.Stats(context.Background())
		return err == nil && stats.PendingCount == 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop after cancel")
	}
}

func TestRunRelay_RequiresKafka(t *testing.T) {
	err := RunRelay(context.Background(), relayConfig())
	require.ErrorIs(t, err, errKafkaDisabled)
}

func TestRunRelay_InvalidConfig(t *testing.T) {
	cfg := relayConfig()
	cfg.StorageDriver = "sqlite"

	err := RunRelay(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestPublishPending_RequiresKafka(t *testing.T) {
	deps, err := NewDependencies(context.Background(), DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = PublishPending(context.Background(), DefaultConfig(), deps)
	require.ErrorIs(t, err, errKafkaDisabled)
}

func TestNewOutboxWorker_DrainsToTopicAndDLQ(t *testing.T) {
	cfg := relayConfig()
	cfg.OutboxMaxAttempts = 1
	deps, err := NewDependencies(context.Background(), cfg, nil)
	require.NoError(t, err)
	enqueueSettled(t, deps, "order-ok")
	enqueueSettled(t, deps, "order-broken")

	mockProducer := mocks.NewSyncProducer(t, nil)
	mockProducer.ExpectSendMessageAndSucceed()
	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	mockProducer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.TopicDeadLetterQueue {
			return errors.New("expected dlq topic, got " + msg.Topic)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var payload map[string]any
		return json.Unmarshal(value, &payload)
	})
	producer := kafka.NewProducerFromSarama(mockProducer, nil)
	defer func() { _ = producer.Close() }()

	result, err := newOutboxWorker(deps, cfg, producer, log.WithField("test", "drain")).Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)

	stats, err := deps.Outbox.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.PendingCount)
}

func TestNewOutboxCleanup(t *testing.T) {
	logger := log.WithField("test", "cleanup")
	deps, err := NewDependencies(context.Background(), DefaultConfig(), logger)
	require.NoError(t, err)

	assert.NotNil(t, newOutboxCleanup(deps, DefaultConfig(), logger))

	disabled := DefaultConfig()
	disabled.OutboxRetention = 0
	assert.Nil(t, newOutboxCleanup(deps, disabled, logger))

	unsupported := *deps
	unsupported.Outbox = outboxOnly{deps.Outbox}
	assert.Nil(t, newOutboxCleanup(&unsupported, DefaultConfig(), logger))
}

// outboxOnly скрывает DeleteSentBefore у обёрнутого хранилища.
type outboxOnly struct {
	domain.OutboxRepository
}
