package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/app"
	"github.com/vladislavdragonenkov/checkout/internal/version"
)

// loadConfig читает конфигурацию relay из окружения и настраивает логгер.
func loadConfig(lookup app.EnvLookup) (app.Config, error) {
	cfg, warnings := app.ReadConfigFromEnv(lookup)
	if err := app.SetupLogger(cfg); err != nil {
		return cfg, err
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		log.WithError(err).Fatal("некорректная конфигурация логгера")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"ops_addr":       cfg.OpsAddr,
		"storage_driver": cfg.StorageDriver,
		"kafka_topic":    cfg.KafkaTopic,
		"version":        version.GetVersion(),
	}).Info("запускаем outbox relay")

	if err := app.RunRelay(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("relay завершился с ошибкой")
	}

	log.Info("outbox relay остановлен")
}
