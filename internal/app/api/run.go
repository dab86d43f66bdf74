package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	cataloghttp "github.com/florenda/florenda-api/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/florenda/florenda-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/florenda/florenda-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/florenda/florenda-api/internal/domains/catalog/application"
	catalogports "github.com/florenda/florenda-api/internal/domains/catalog/ports"

	customerhttp "github.com/florenda/florenda-api/internal/domains/customers/adapters/http"
	customermemory "github.com/florenda/florenda-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/florenda/florenda-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/florenda/florenda-api/internal/domains/customers/application"
	customerports "github.com/florenda/florenda-api/internal/domains/customers/ports"

	inventoryhttp "github.com/florenda/florenda-api/internal/domains/inventory/adapters/http"
	inventorymemory "github.com/florenda/florenda-api/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/florenda/florenda-api/internal/domains/inventory/adapters/observability"
	inventorypostgres "github.com/florenda/florenda-api/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/florenda/florenda-api/internal/domains/inventory/application"
	inventoryports "github.com/florenda/florenda-api/internal/domains/inventory/ports"

	ordercatalog "github.com/florenda/florenda-api/internal/domains/orders/adapters/catalog"
	ordercustomers "github.com/florenda/florenda-api/internal/domains/orders/adapters/customers"
	orderhttp "github.com/florenda/florenda-api/internal/domains/orders/adapters/http"
	ordermemory "github.com/florenda/florenda-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/florenda/florenda-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/florenda/florenda-api/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/florenda/florenda-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/florenda/florenda-api/internal/domains/orders/application"
	orderports "github.com/florenda/florenda-api/internal/domains/orders/ports"

	userhttp "github.com/florenda/florenda-api/internal/domains/users/adapters/http"
	usermemory "github.com/florenda/florenda-api/internal/domains/users/adapters/memory"
	userpostgres "github.com/florenda/florenda-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/florenda/florenda-api/internal/domains/users/application"
	userports "github.com/florenda/florenda-api/internal/domains/users/ports"

	"github.com/florenda/florenda-api/internal/platform/migrations"
	platformobservability "github.com/florenda/florenda-api/internal/platform/observability"
	platformpostgres "github.com/florenda/florenda-api/internal/platform/postgres"
)

// Run boots the Florenda HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "florenda-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	repos := buildRepositories(db)
	sessions := buildSessionStore(db, cfg.SessionTTL)

	catalogService := catalogapp.NewService(repos.products)
	inventoryService := inventoryobs.New(
		inventoryapp.NewService(repos.items),
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
	customerService := customerapp.NewService(repos.customers)
	userService := userapp.NewService(repos.users, sessions)

	orderService := orderobs.New(
		orderapp.NewService(
			repos.orders,
			ordercatalog.NewLookup(catalogService),
			ordercustomers.NewDirectory(customerService),
		),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderOrchestrator orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderOrchestrator = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	if db == nil || cfg.SeedDemoData {
		seedDemoData(ctx, logger, seedServices{
			users:     userService,
			catalog:   catalogService,
			inventory: inventoryService,
			customers: customerService,
		})
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := router.Group("/api/v1")
	protected := router.Group("/api/v1")
	protected.Use(userhttp.AuthMiddleware(userService))

	userhttp.NewHandler(userService).RegisterRoutes(public, protected)
	orderhttp.NewHandler(orderService, orderOrchestrator).RegisterRoutes(protected)
	inventoryhttp.NewHandler(inventoryService).RegisterRoutes(protected)
	cataloghttp.NewHandler(catalogService).RegisterRoutes(protected)
	customerhttp.NewHandler(customerService).RegisterRoutes(protected)

	addr := ":" + cfg.Port
	logger.Info("Florenda API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Florenda API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	orders    orderports.Repository
	items     inventoryports.Repository
	products  catalogports.Repository
	customers customerports.Repository
	users     userports.Repository
}

func buildRepositories(db *gorm.DB) repositories {
	if db == nil {
		return repositories{
			orders:    ordermemory.NewRepository(),
			items:     inventorymemory.NewRepository(),
			products:  catalogmemory.NewRepository(),
			customers: customermemory.NewRepository(),
			users:     usermemory.NewRepository(),
		}
	}
	return repositories{
		orders:    orderpostgres.NewRepository(db),
		items:     inventorypostgres.NewRepository(db),
		products:  catalogpostgres.NewRepository(db),
		customers: customerpostgres.NewRepository(db),
		users:     userpostgres.NewRepository(db),
	}
}

func buildSessionStore(db *gorm.DB, ttl time.Duration) userports.SessionStore {
	if db == nil {
		return usermemory.NewSessionStore(ttl)
	}
	return userpostgres.NewSessionStore(db, ttl)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
