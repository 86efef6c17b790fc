package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/client"

	backofficeserver "github.com/Apurer/shop-backoffice/go"
	"github.com/Apurer/shop-backoffice/internal/app/seed"
	orderworkflows "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/workflows"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	platformobservability "github.com/Apurer/shop-backoffice/internal/platform/observability"
	platformtemporal "github.com/Apurer/shop-backoffice/internal/platform/temporal"
)

// ServiceName identifies the API in traces, metrics and logs.
const ServiceName = "shop-backoffice-api"

// Run boots the back-office HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: ServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := BuildServices(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	owner := cfg.DemoOwnerID
	if cfg.SeedDemoData {
		res, err := seed.Run(ctx, services.SeedTargets(), time.Now().UTC(), logger)
		if err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		if res.OwnerID != owner {
			logger.Warn("demo user id differs from DEMO_OWNER_ID, serving the demo user",
				slog.Int64("configured", owner), slog.Int64("demo", res.OwnerID))
			owner = res.OwnerID
		}
	}

	var workflows orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(services.Orders)
	if temporalClient, err := connectTemporal(cfg, services, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		workflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := backofficeserver.ApiHandleFunctions{
		CatalogAPI:   backofficeserver.NewCatalogAPI(services.Catalog, owner),
		DiscountAPI:  backofficeserver.NewDiscountAPI(services.Discounts, owner, time.Now),
		OrderAPI:     backofficeserver.NewOrderAPI(services.Orders, workflows, owner),
		AnalyticsAPI: backofficeserver.NewAnalyticsAPI(services.Analytics, owner, time.Now),
		UserAPI:      backofficeserver.NewUserAPI(services.Users, owner),
	}

	router := backofficeserver.NewRouter(handlers, backofficeserver.RouterOptions{
		ServiceName:    ServiceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	addr := cfg.Addr()
	logger.Info("back-office API listening", slog.String("addr", addr), slog.Int64("owner", owner))
	if err := router.Run(addr); err != nil {
		logger.Error("back-office API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectTemporal(cfg Config, services *Services, instruments *platformobservability.Instruments) (client.Client, error) {
	if err := temporalEligible(cfg, services); err != nil {
		return nil, err
	}
	return platformtemporal.Dial(cfg.TemporalAddress, cfg.TemporalNamespace, instruments)
}

// temporalEligible rejects Temporal placement when it is disabled or when the worker could not
// see the orders this process stores.
func temporalEligible(cfg Config, services *Services) error {
	if cfg.TemporalDisabled {
		return errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	if err := services.RequirePersistent(); err != nil {
		return fmt.Errorf("temporal worker cannot share orders: %w", err)
	}
	return nil
}
