package app

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/service/outbox"
)

// errKafkaDisabled означает, что брокеры не настроены и публиковать некуда.
var errKafkaDisabled = errors.New("kafka brokers are not configured")

// initKafkaProducer создаёт Kafka producer по списку брокеров из конфигурации.
func initKafkaProducer(cfg Config, logger *log.Entry) (*kafka.Producer, error) {
	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		return nil, errKafkaDisabled
	}

	producer, err := kafka.NewProducer(brokers)
	if err != nil {
		return nil, err
	}

	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer, nil
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}

// newOutboxWorker связывает outbox хранилища с Kafka topic событий заказа и DLQ.
func newOutboxWorker(deps *Dependencies, cfg Config, producer *kafka.Producer, logger *log.Entry) *outbox.Worker {
	opts := []outbox.Option{
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	}
	if cfg.KafkaDLQTopic != "" {
		opts = append(opts, outbox.WithDLQPublisher(kafka.NewOutboxPublisher(producer, cfg.KafkaDLQTopic)))
	}

	return outbox.NewWorker(deps.Outbox, kafka.NewOutboxPublisher(producer, cfg.KafkaTopic), opts...)
}

// newOutboxCleanup возвращает воркер очистки отправленных сообщений или nil,
// если очистка выключена или хранилище её не поддерживает.
func newOutboxCleanup(deps *Dependencies, cfg Config, logger *log.Entry) *outbox.CleanupWorker {
	if cfg.OutboxRetention <= 0 {
		return nil
	}
	pruner, ok := deps.Outbox.(domain.OutboxPruner)
	if !ok {
		logger.Warn("outbox storage does not support cleanup")
		return nil
	}
	return outbox.NewCleanupWorker(pruner,
		outbox.WithCleanupLogger(logger.WithField("component", "outbox-cleanup")),
		outbox.WithCleanupInterval(cfg.OutboxCleanupInterval),
		outbox.WithRetention(cfg.OutboxRetention),
	)
}
