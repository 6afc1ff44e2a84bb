package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/checkout/internal/app"
)

func mapLookup(values map[string]string) app.EnvLookup {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestLoadConfig_AppliesEnvironment(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })

	cfg, err := loadConfig(mapLookup(map[string]string{
		app.EnvKafkaBrokers:      "kafka-1:9092,kafka-2:9092",
		app.EnvOutboxBatchSize:   "10",
		app.EnvLogLevel:          "debug",
		app.EnvOutboxMaxAttempts: "oops",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers())
	assert.Equal(t, 10, cfg.OutboxBatchSize)
	assert.Equal(t, app.DefaultConfig().OutboxMaxAttempts, cfg.OutboxMaxAttempts)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	_, err := loadConfig(mapLookup(map[string]string{
		app.EnvLogLevel: "chatty",
	}))
	require.Error(t, err)
}
