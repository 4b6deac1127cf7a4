// Package app composes storage, platform clients and module services from
// a Config. Both binaries start here.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/config"
	"github.com/georgemunganga/retail-ordering/internal/modules/admin"
	"github.com/georgemunganga/retail-ordering/internal/modules/analytics"
	"github.com/georgemunganga/retail-ordering/internal/modules/auth"
	"github.com/georgemunganga/retail-ordering/internal/modules/catalog"
	"github.com/georgemunganga/retail-ordering/internal/modules/inventory"
	"github.com/georgemunganga/retail-ordering/internal/modules/order"
	"github.com/georgemunganga/retail-ordering/internal/modules/supply"
	"github.com/georgemunganga/retail-ordering/internal/modules/user"
	"github.com/georgemunganga/retail-ordering/internal/platform/database"
	"github.com/georgemunganga/retail-ordering/internal/platform/events"
	"github.com/georgemunganga/retail-ordering/internal/platform/idempotency"
	"github.com/georgemunganga/retail-ordering/internal/platform/tracing"
	"github.com/georgemunganga/retail-ordering/internal/session"
	"github.com/georgemunganga/retail-ordering/internal/storage/memory"
)

// Repositories groups one implementation of every module repository.
type Repositories struct {
	Users     user.Repository
	Catalog   catalog.Repository
	Inventory inventory.Repository
	Orders    order.Repository
	Supply    supply.Repository
	Analytics analytics.Repository
}

// MemoryRepositories backs every repository with the same in-memory store.
func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:     store,
		Catalog:   store,
		Inventory: store,
		Orders:    store,
		Supply:    store,
		Analytics: store,
	}
}

// PostgresRepositories backs every repository with db.
func PostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		Users:     user.NewPostgresRepository(db),
		Catalog:   catalog.NewPostgresRepository(db),
		Inventory: inventory.NewPostgresRepository(db),
		Orders:    order.NewPostgresRepository(db),
		Supply:    supply.NewPostgresRepository(db),
		Analytics: analytics.NewPostgresRepository(db),
	}
}

type App struct {
	Services session.Services
	Guard    *idempotency.Guard
	// Memory is set when the app runs on in-memory storage.
	Memory *memory.Store
	Logger *zap.Logger

	closers []func(context.Context) error
}

// New connects the configured backends. Kafka, Redis and tracing are
// optional and only enabled when their settings are present.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Logger: logger}

	shutdownTracing, err := tracing.Setup(ctx, cfg.OtelURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, shutdownTracing)

	var repos Repositories
	switch cfg.Storage {
	case config.StorageMemory:
		a.Memory = memory.New()
		repos = MemoryRepositories(a.Memory)
	default:
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		if err := database.EnsureSchema(ctx, db); err != nil {
			a.Close(ctx)
			return nil, err
		}
		repos = PostgresRepositories(db)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBroker) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
		a.closers = append(a.closers, func(context.Context) error { return publisher.Close() })
		logger.Info("publishing events to kafka", zap.Strings("brokers", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		a.Guard = idempotency.NewGuard(rdb)
	}

	a.Services = NewServices(repos, cfg, publisher, logger)
	return a, nil
}

// NewServices builds every module service over repos.
func NewServices(repos Repositories, cfg *config.Config, publisher events.Publisher, logger *zap.Logger) session.Services {
	resolver := auth.NewResolver(repos.Users, logger)
	inventoryService := inventory.NewService(repos.Inventory, repos.Catalog, resolver, publisher, logger)
	return session.Services{
		Users:     user.NewService(repos.Users, logger),
		Auth:      auth.NewService(repos.Users, []byte(cfg.JWTSecret), cfg.JWTTTL, logger),
		Resolver:  resolver,
		Catalog:   catalog.NewService(repos.Catalog, resolver),
		Orders:    order.NewService(repos.Orders, repos.Catalog, resolver, publisher, logger),
		Inventory: inventoryService,
		Supply:    supply.NewService(repos.Supply, repos.Catalog, resolver, publisher, logger),
		Admin:     admin.NewService(repos.Users, repos.Catalog, inventoryService, resolver, logger),
		Analytics: analytics.NewService(repos.Analytics, resolver),
	}
}

// Close releases backends in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
