package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Apurer/shop-backoffice/internal/app/seed"
	analyticsobs "github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/observability"
	analyticsreport "github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/report"
	analyticssources "github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/sources"
	analyticsapp "github.com/Apurer/shop-backoffice/internal/domains/analytics/application"
	analyticsports "github.com/Apurer/shop-backoffice/internal/domains/analytics/ports"
	catalogmemory "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/shop-backoffice/internal/domains/catalog/application"
	catalogports "github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
	discountmemory "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/memory"
	discountobs "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/observability"
	discountpostgres "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/persistence/postgres"
	discountapp "github.com/Apurer/shop-backoffice/internal/domains/discounts/application"
	discountports "github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
	ordermemory "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/persistence/postgres"
	orderredis "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/redis"
	orderapp "github.com/Apurer/shop-backoffice/internal/domains/orders/application"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	usermemory "github.com/Apurer/shop-backoffice/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/shop-backoffice/internal/domains/users/adapters/observability"
	userpostgres "github.com/Apurer/shop-backoffice/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/Apurer/shop-backoffice/internal/domains/users/application"
	userports "github.com/Apurer/shop-backoffice/internal/domains/users/ports"
	"github.com/Apurer/shop-backoffice/internal/platform/migrations"
	platformobs "github.com/Apurer/shop-backoffice/internal/platform/observability"
	platformpostgres "github.com/Apurer/shop-backoffice/internal/platform/postgres"
	platformredis "github.com/Apurer/shop-backoffice/internal/platform/redis"
)

// Services are the decorated use-case services shared by the API, the worker and the CLI.
type Services struct {
	Catalog   catalogports.Service
	Discounts discountports.Service
	Orders    orderports.Service
	Analytics analyticsports.Service
	Users     userports.Service

	// Persistent reports whether repositories are PostgreSQL-backed and shared across processes.
	Persistent bool
}

// ErrEphemeralStore is returned when a component needs repositories shared with other processes
// but BuildServices fell back to in-memory storage.
var ErrEphemeralStore = errors.New("repositories are in-memory; set POSTGRES_DSN to share orders across processes")

// RequirePersistent fails with ErrEphemeralStore unless the services are PostgreSQL-backed.
func (s *Services) RequirePersistent() error {
	if !s.Persistent {
		return ErrEphemeralStore
	}
	return nil
}

// SeedTargets exposes the services the demo seeder writes through.
func (s *Services) SeedTargets() seed.Services {
	return seed.Services{
		Users:     s.Users,
		Catalog:   s.Catalog,
		Discounts: s.Discounts,
		Orders:    s.Orders,
	}
}

type repositories struct {
	persistent  bool
	catalog     catalogports.Repository
	discounts   discountports.Repository
	orders      orderports.Repository
	users       userports.Repository
	idempotency orderports.IdempotencyStore
}

// BuildServices picks PostgreSQL repositories when POSTGRES_DSN connects and in-memory ones
// otherwise. Order idempotency keys live in Redis when REDIS_URL connects, else next to the orders.
// The returned cleanup closes every connection that was opened.
func BuildServices(ctx context.Context, cfg Config, instruments *platformobs.Instruments) (*Services, func(), error) {
	logger := instruments.Logger
	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	catalog := catalogobs.New(catalogapp.NewService(repos.catalog),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	discounts := discountobs.New(discountapp.NewService(repos.discounts),
		discountobs.WithLogger(logger),
		discountobs.WithTracer(instruments.Tracer("internal.discounts.application")),
		discountobs.WithMeter(instruments.Meter("internal.discounts.application")),
	)
	orders := orderobs.New(orderapp.NewService(repos.orders, orderapp.WithIdempotencyStore(repos.idempotency)),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	users := userobs.New(userapp.NewService(repos.users),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.users.application")),
		userobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	analytics := analyticsobs.New(
		analyticsapp.NewService(
			analyticssources.New(repos.catalog, repos.orders, orders, discounts),
			analyticsapp.WithReportWriter(analyticsreport.NewXLSXWriter()),
		),
		analyticsobs.WithLogger(logger),
		analyticsobs.WithTracer(instruments.Tracer("internal.analytics.application")),
		analyticsobs.WithMeter(instruments.Meter("internal.analytics.application")),
	)

	return &Services{
		Catalog:    catalog,
		Discounts:  discounts,
		Orders:     orders,
		Analytics:  analytics,
		Users:      users,
		Persistent: repos.persistent,
	}, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func(), error) {
	var repos repositories
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	cleanups = append(cleanups, closeDB)
	if db != nil {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return repositories{}, nil, fmt.Errorf("apply migrations: %w", err)
		}
		repos = repositories{
			persistent:  true,
			catalog:     catalogpostgres.NewRepository(db),
			discounts:   discountpostgres.NewRepository(db),
			orders:      orderpostgres.NewRepository(db),
			users:       userpostgres.NewRepository(db),
			idempotency: orderpostgres.NewIdempotencyStore(db),
		}
		logger.Info("repositories configured with postgres")
	} else {
		repos = repositories{
			catalog:     catalogmemory.NewRepository(),
			discounts:   discountmemory.NewRepository(),
			orders:      ordermemory.NewRepository(),
			users:       usermemory.NewRepository(),
			idempotency: ordermemory.NewIdempotencyStore(),
		}
	}

	redisClient, closeRedis := platformredis.ConnectOptional(ctx, cfg.RedisURL, logger)
	cleanups = append(cleanups, closeRedis)
	if redisClient != nil {
		repos.idempotency = orderredis.NewIdempotencyStore(redisClient, ttlOrDefault(cfg.IdempotencyTTL))
		logger.Info("order idempotency keys stored in redis", slog.Duration("ttl", ttlOrDefault(cfg.IdempotencyTTL)))
	}
	return repos, cleanup, nil
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
