package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	catalogmemory "github.com/florenda/florenda-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/florenda/florenda-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/florenda/florenda-api/internal/domains/catalog/application"
	catalogports "github.com/florenda/florenda-api/internal/domains/catalog/ports"
	customermemory "github.com/florenda/florenda-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/florenda/florenda-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/florenda/florenda-api/internal/domains/customers/application"
	customerports "github.com/florenda/florenda-api/internal/domains/customers/ports"
	ordercatalog "github.com/florenda/florenda-api/internal/domains/orders/adapters/catalog"
	ordercustomers "github.com/florenda/florenda-api/internal/domains/orders/adapters/customers"
	ordermemory "github.com/florenda/florenda-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/florenda/florenda-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/florenda/florenda-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/florenda/florenda-api/internal/domains/orders/application"
	orderports "github.com/florenda/florenda-api/internal/domains/orders/ports"
	"github.com/florenda/florenda-api/internal/platform/migrations"
	platformobservability "github.com/florenda/florenda-api/internal/platform/observability"
	platformpostgres "github.com/florenda/florenda-api/internal/platform/postgres"
	orderactivities "github.com/florenda/florenda-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/florenda/florenda-api/internal/platform/temporal/workflows/orders"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "florenda-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	orderRepo := buildOrderRepository(db)
	catalogService := catalogapp.NewService(buildProductRepository(db))
	customerService := customerapp.NewService(buildCustomerRepository(db))

	// The persist service carries no customer directory: the purchase
	// counters are bumped by a dedicated activity with its own retries.
	persistService := orderobs.New(
		orderapp.NewService(orderRepo, ordercatalog.NewLookup(catalogService), nil),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(persistService, ordercustomers.NewDirectory(customerService))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderSubmissionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderSubmissionWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderSubmissionWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	w.RegisterActivityWithOptions(activities.RecordCustomerPurchase, activity.RegisterOptions{Name: orderactivities.RecordCustomerPurchaseActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderSubmissionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderRepository(db *gorm.DB) orderports.Repository {
	if db == nil {
		return ordermemory.NewRepository()
	}
	return orderpostgres.NewRepository(db)
}

func buildProductRepository(db *gorm.DB) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db)
}

func buildCustomerRepository(db *gorm.DB) customerports.Repository {
	if db == nil {
		return customermemory.NewRepository()
	}
	return customerpostgres.NewRepository(db)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
