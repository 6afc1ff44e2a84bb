package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/storage/memory"
	"github.com/vladislavdragonenkov/checkout/internal/storage/postgres"
)

// Dependencies содержит хранилища приложения для выбранного драйвера.
type Dependencies struct {
	Orders       domain.OrderRepository
	Clients      domain.ClientRepository
	Products     domain.ProductRepository
	Invoices     domain.InvoiceRepository
	Transactions domain.TransactionRepository
	Outbox       domain.OutboxRepository
	Timeline     domain.TimelineRepository

	// Store задан только для драйвера postgres.
	Store  *postgres.Store
	Logger *log.Entry
}

// NewDependencies открывает хранилище по конфигурации и собирает репозитории.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		logger.Info("using in-memory storage")
		return &Dependencies{
			Orders:       memory.NewOrderRepository(),
			Clients:      memory.NewClientRepository(),
			Products:     memory.NewProductRepository(),
			Invoices:     memory.NewInvoiceRepository(),
			Transactions: memory.NewTransactionRepository(),
			Outbox:       memory.NewOutboxRepository(),
			Timeline:     memory.NewTimelineRepository(),
			Logger:       logger,
		}, nil
	case StorageDriverPostgres:
		return newPostgresDependencies(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func newPostgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres dsn is required for storage driver %q", StorageDriverPostgres)
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if cfg.PostgresAutoMigrate {
		if err := store.MigrateUp(ctx, 0); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("postgres migrations applied")
	} else {
		state, err := store.MigrationStatus(ctx)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("migration status: %w", err)
		}
		if !state.UpToDate() {
			logger.WithField("pending", state.Pending).Warn("postgres schema has pending migrations")
		}
	}

	logger.Info("using postgres storage")
	return &Dependencies{
		Orders:       postgres.NewOrderRepository(store),
		Clients:      postgres.NewClientRepository(store),
		Products:     postgres.NewProductRepository(store),
		Invoices:     postgres.NewInvoiceRepository(store),
		Transactions: postgres.NewTransactionRepository(store),
		Outbox:       postgres.NewOutboxRepository(store),
		Timeline:     postgres.NewTimelineRepository(store),
		Store:        store,
		Logger:       logger,
	}, nil
}

// Ping проверяет доступность хранилища; in-memory хранилище доступно всегда.
func (d *Dependencies) Ping(ctx context.Context) error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Ping(ctx)
}

// Close освобождает соединения хранилища.
func (d *Dependencies) Close() error {
	if d == nil || d.Store == nil {
		return nil
	}
	return d.Store.Close()
}
