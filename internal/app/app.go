package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/checkout/internal/health"
	"github.com/vladislavdragonenkov/checkout/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/checkout/internal/service/outbox"
	"github.com/vladislavdragonenkov/checkout/internal/version"
)

// RunRelay запускает outbox relay: публикует события оформленных заказов в Kafka
// и обслуживает ops HTTP до отмены ctx.
func RunRelay(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := log.WithField("component", "outbox-relay")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	producer, err := initKafkaProducer(cfg, logger)
	if err != nil {
		return fmt.Errorf("init kafka producer: %w", err)
	}
	defer closeKafka(producer, logger)

	return runRelay(ctx, cfg, deps, producer, logger)
}

func runRelay(ctx context.Context, cfg Config, deps *Dependencies, producer *kafka.Producer, logger *log.Entry) error {
	healthHandler := newHealthHandler(deps, cfg)
	srv, _, err := startOpsServer(ctx, cfg.OpsAddr, NewOpsRouter(healthHandler, prometheus.DefaultGatherer), logger)
	if err != nil {
		return fmt.Errorf("start ops server: %w", err)
	}

	worker := newOutboxWorker(deps, cfg, producer, logger)
	logger.WithFields(log.Fields{
		"topic":         cfg.KafkaTopic,
		"dlq_topic":     cfg.KafkaDLQTopic,
		"poll_interval": cfg.OutboxPollInterval,
	}).Info("outbox relay started")

	var wg sync.WaitGroup
	if cleanup := newOutboxCleanup(deps, cfg, logger); cleanup != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cleanup.Run(ctx)
		}()
	}

	worker.Run(ctx)
	wg.Wait()

	logger.Info("получен сигнал остановки, останавливаем relay")
	shutdownHTTP(srv, logger)
	return ctx.Err()
}

// PublishPending разово выгружает backlog outbox в Kafka. Используется CLI после
// оформления заказа, когда отдельный relay не запущен.
func PublishPending(ctx context.Context, cfg Config, deps *Dependencies) (outbox.BatchResult, error) {
	logger := deps.Logger.WithField("component", "outbox-drain")

	producer, err := initKafkaProducer(cfg, logger)
	if err != nil {
		return outbox.BatchResult{}, fmt.Errorf("init kafka producer: %w", err)
	}
	defer closeKafka(producer, logger)

	return newOutboxWorker(deps, cfg, producer, logger).Drain(ctx)
}

func newHealthHandler(deps *Dependencies, cfg Config) *healthcheck.Handler {
	handler := healthcheck.NewHandler(version.GetVersion())
	handler.RegisterChecker("storage", healthcheck.NewPingChecker("storage", deps))
	handler.RegisterChecker("outbox", healthcheck.NewOutboxBacklogChecker("outbox", deps.Outbox, cfg.OutboxMaxPendingAge))
	return handler
}
