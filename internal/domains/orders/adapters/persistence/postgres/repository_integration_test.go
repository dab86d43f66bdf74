//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderpostgres "github.com/florenda/florenda-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/florenda/florenda-api/internal/domains/orders/domain"
	"github.com/florenda/florenda-api/internal/domains/orders/ports"
	"github.com/florenda/florenda-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("florenda_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func buildOrder(t *testing.T, id, customerName string) *domain.Order {
	t.Helper()
	ledger := domain.NewLedger()
	require.NoError(t, ledger.AddItem(domain.CatalogItem{ProductID: "prod-1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99}))
	require.NoError(t, ledger.AddItem(domain.CatalogItem{ProductID: "prod-2", Name: "Tulipany mix", UnitPrice: 89.99}))
	require.NoError(t, ledger.SetQuantity(ledger.Items()[1].ID, 2))
	pickup := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	order, err := domain.NewOrder(id, customerName, domain.CustomerIndividual, "", "", pickup, ledger)
	require.NoError(t, err)
	return order
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderpostgres.NewRepository(db)
	ctx := context.Background()

	order := buildOrder(t, "ord-1", "Anna Kowalska")
	order.ReplaceTags([]string{"pilne", "dostawa"})

	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", saved.ID)

	retrieved, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "Anna Kowalska", retrieved.CustomerName)
	assert.Equal(t, domain.StatusPending, retrieved.Status)
	assert.Equal(t, []string{"pilne", "dostawa"}, retrieved.Tags)
	require.Len(t, retrieved.Items, 2)
	assert.Equal(t, "prod-2", retrieved.Items[1].ProductID)
	assert.Equal(t, 2, retrieved.Items[1].Quantity)
	assert.InDelta(t, 129.99+2*89.99, retrieved.Total, 1e-9)
}

func TestPostgresRepository_UpdateKeepsItemSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderpostgres.NewRepository(db)
	ctx := context.Background()

	order := buildOrder(t, "ord-1", "Anna Kowalska")
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	require.NoError(t, order.UpdateStatus(domain.StatusReady))
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReady, updated.Status)
	require.Len(t, updated.Items, 2)
	assert.InDelta(t, 129.99, updated.Items[0].UnitPrice, 1e-9)
}

func TestPostgresRepository_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderpostgres.NewRepository(db)
	ctx := context.Background()

	individual := buildOrder(t, "ord-1", "Anna Kowalska")
	_, err := repo.Save(ctx, individual)
	require.NoError(t, err)

	ledger := domain.NewLedger()
	require.NoError(t, ledger.AddItem(domain.CatalogItem{ProductID: "prod-1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99}))
	company, err := domain.NewOrder("ord-2", "Recepcja", domain.CustomerCompany, "Hotel Grand Sp. z o.o.", "1234567890", time.Now().Add(24*time.Hour), ledger)
	require.NoError(t, err)
	require.NoError(t, company.UpdateStatus(domain.StatusCompleted))
	_, err = repo.Save(ctx, company)
	require.NoError(t, err)

	all, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := repo.List(ctx, ports.ListFilter{Status: domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "ord-2", completed[0].ID)

	companies, err := repo.List(ctx, ports.ListFilter{CustomerType: domain.CustomerCompany})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Hotel Grand Sp. z o.o.", companies[0].CompanyName)
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderpostgres.NewRepository(db)
	ctx := context.Background()

	order := buildOrder(t, "ord-1", "Anna Kowalska")
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	err = repo.Delete(ctx, "ord-1")
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "ord-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, "ord-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
