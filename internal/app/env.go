package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
)

// Переменные окружения, из которых читается Config.
const (
	EnvOpsAddr                  = "CHECKOUT_OPS_ADDR"
	EnvStorageDriver            = "CHECKOUT_STORAGE_DRIVER"
	EnvPostgresDSN              = "CHECKOUT_POSTGRES_DSN"
	EnvPostgresAutoMigrate      = "CHECKOUT_POSTGRES_AUTO_MIGRATE"
	EnvKafkaBrokers             = "CHECKOUT_KAFKA_BROKERS"
	EnvKafkaTopic               = "CHECKOUT_KAFKA_TOPIC"
	EnvKafkaDLQTopic            = "CHECKOUT_KAFKA_DLQ_TOPIC"
	EnvPaymentApprovalThreshold = "CHECKOUT_PAYMENT_APPROVAL_THRESHOLD"
	EnvOutboxPollInterval       = "CHECKOUT_OUTBOX_POLL_INTERVAL"
	EnvOutboxBatchSize          = "CHECKOUT_OUTBOX_BATCH_SIZE"
	EnvOutboxMaxAttempts        = "CHECKOUT_OUTBOX_MAX_ATTEMPTS"
	EnvOutboxRetryDelay         = "CHECKOUT_OUTBOX_RETRY_DELAY"
	EnvOutboxMaxPendingAge      = "CHECKOUT_OUTBOX_MAX_PENDING_AGE"
	EnvOutboxRetention          = "CHECKOUT_OUTBOX_RETENTION"
	EnvOutboxCleanupInterval    = "CHECKOUT_OUTBOX_CLEANUP_INTERVAL"
	EnvLogLevel                 = "CHECKOUT_LOG_LEVEL"
	EnvLogFormat                = "CHECKOUT_LOG_FORMAT"
)

// EnvLookup совместим с os.LookupEnv и подменяется в тестах.
type EnvLookup func(key string) (string, bool)

// ReadConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Некорректные значения не применяются: вместо них возвращаются предупреждения.
func ReadConfigFromEnv(lookup EnvLookup) (Config, []string) {
	cfg := DefaultConfig()
	var warnings []string

	warn := func(key, raw string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s=%q ignored: %v", key, raw, err))
	}
	str := func(key string, target *string) {
		if raw, ok := lookupTrimmed(lookup, key); ok {
			*target = raw
		}
	}

	str(EnvOpsAddr, &cfg.OpsAddr)
	str(EnvPostgresDSN, &cfg.PostgresDSN)
	str(EnvKafkaBrokers, &cfg.KafkaBrokers)
	str(EnvKafkaTopic, &cfg.KafkaTopic)
	str(EnvKafkaDLQTopic, &cfg.KafkaDLQTopic)
	str(EnvLogLevel, &cfg.LogLevel)

	if raw, ok := lookupTrimmed(lookup, EnvStorageDriver); ok {
		cfg.StorageDriver = StorageDriver(strings.ToLower(raw))
	}
	if raw, ok := lookupTrimmed(lookup, EnvLogFormat); ok {
		cfg.LogFormat = strings.ToLower(raw)
	}

	if raw, ok := lookupTrimmed(lookup, EnvPostgresAutoMigrate); ok {
		if v, err := parseBool(raw); err != nil {
			warn(EnvPostgresAutoMigrate, raw, err)
		} else {
			cfg.PostgresAutoMigrate = v
		}
	}

	if raw, ok := lookupTrimmed(lookup, EnvPaymentApprovalThreshold); ok {
		if v, err := domain.ParseMoney(raw); err != nil {
			warn(EnvPaymentApprovalThreshold, raw, err)
		} else {
			cfg.PaymentApprovalThreshold = v
		}
	}

	positiveInt := func(v int) bool { return v > 0 }
	for key, target := range map[string]*int{
		EnvOutboxBatchSize:   &cfg.OutboxBatchSize,
		EnvOutboxMaxAttempts: &cfg.OutboxMaxAttempts,
	} {
		if raw, ok := lookupTrimmed(lookup, key); ok {
			if v, err := parseInt(raw, positiveInt, "must be > 0"); err != nil {
				warn(key, raw, err)
			} else {
				*target = v
			}
		}
	}

	durations := []struct {
		key    string
		target *time.Duration
		valid  func(time.Duration) bool
		rule   string
	}{
		{EnvOutboxPollInterval, &cfg.OutboxPollInterval, func(v time.Duration) bool { return v > 0 }, "must be > 0"},
		{EnvOutboxRetryDelay, &cfg.OutboxRetryDelay, func(v time.Duration) bool { return v >= 0 }, "must be >= 0"},
		{EnvOutboxMaxPendingAge, &cfg.OutboxMaxPendingAge, func(v time.Duration) bool { return v >= 0 }, "must be >= 0"},
		{EnvOutboxRetention, &cfg.OutboxRetention, func(v time.Duration) bool { return v >= 0 }, "must be >= 0"},
		{EnvOutboxCleanupInterval, &cfg.OutboxCleanupInterval, func(v time.Duration) bool { return v > 0 }, "must be > 0"},
	}
	for _, d := range durations {
		if raw, ok := lookupTrimmed(lookup, d.key); ok {
			if v, err := parseDuration(raw, d.valid, d.rule); err != nil {
				warn(d.key, raw, err)
			} else {
				*d.target = v
			}
		}
	}

	return cfg, warnings
}

func lookupTrimmed(lookup EnvLookup, key string) (string, bool) {
	if lookup == nil {
		return "", false
	}
	raw, ok := lookup(key)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q: %w", raw, err)
	}
	if !valid(v) {
		return 0, fmt.Errorf("value %d %s", v, rule)
	}
	return v, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q: %w", raw, err)
	}
	if !valid(v) {
		return 0, fmt.Errorf("value %s %s", v, rule)
	}
	return v, nil
}
