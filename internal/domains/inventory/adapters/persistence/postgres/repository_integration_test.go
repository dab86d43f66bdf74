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

	inventorypostgres "github.com/florenda/florenda-api/internal/domains/inventory/adapters/persistence/postgres"
	"github.com/florenda/florenda-api/internal/domains/inventory/domain"
	"github.com/florenda/florenda-api/internal/domains/inventory/ports"
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

func buildItem(t *testing.T, id, name, sku string, current, minimum int) *domain.Item {
	t.Helper()
	item, err := domain.NewItem(id, name, sku, domain.UnitPiece, current, minimum)
	require.NoError(t, err)
	return item
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()

	item := buildItem(t, "item-1", "Róże czerwone", "KW-ROZ-001", 150, 50)
	item.Category = "kwiaty cięte"
	item.Location = "Chłodnia A"
	item.Supplier = "Hurtownia Flora"
	require.NoError(t, item.SetPrice(4.5))

	saved, err := repo.Save(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, "item-1", saved.ID)

	retrieved, err := repo.GetByID(ctx, "item-1")
	require.NoError(t, err)
	assert.Equal(t, "Róże czerwone", retrieved.Name)
	assert.Equal(t, "KW-ROZ-001", retrieved.SKU)
	assert.Equal(t, domain.UnitPiece, retrieved.Unit)
	assert.Equal(t, domain.StockInStock, retrieved.Status())
	assert.InDelta(t, 4.5, retrieved.UnitPrice, 1e-9)
}

func TestPostgresRepository_MovementHistoryNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()

	item := buildItem(t, "item-1", "Róże czerwone", "KW-ROZ-001", 150, 50)
	_, err := repo.Save(ctx, item)
	require.NoError(t, err)

	base := time.Now().Truncate(time.Second)
	err = repo.AppendMovement(ctx, &domain.Movement{
		ID: "mov-1", ItemID: "item-1", Type: domain.MovementUsage, Quantity: 110, OccurredAt: base,
	})
	require.NoError(t, err)
	err = repo.AppendMovement(ctx, &domain.Movement{
		ID: "mov-2", ItemID: "item-1", Type: domain.MovementRestock, Quantity: 60, OccurredAt: base.Add(time.Hour), PerformedBy: "admin",
	})
	require.NoError(t, err)

	movements, err := repo.Movements(ctx, "item-1")
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, "mov-2", movements[0].ID)
	assert.Equal(t, domain.MovementRestock, movements[0].Type)
	assert.Equal(t, "admin", movements[0].PerformedBy)
	assert.Equal(t, "mov-1", movements[1].ID)
}

func TestPostgresRepository_ListByDerivedStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()

	fixtures := []struct {
		id, name, sku    string
		current, minimum int
	}{
		{"item-1", "Róże czerwone", "KW-ROZ-001", 150, 50},
		{"item-2", "Wstążka satynowa", "DOD-WST-002", 25, 30},
		{"item-3", "Tulipany mix", "KW-TUL-003", 0, 40},
	}
	for _, f := range fixtures {
		_, err := repo.Save(ctx, buildItem(t, f.id, f.name, f.sku, f.current, f.minimum))
		require.NoError(t, err)
	}

	low, err := repo.List(ctx, ports.ListFilter{Status: domain.StockLowStock})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "item-2", low[0].ID)

	out, err := repo.List(ctx, ports.ListFilter{Status: domain.StockOutOfStock})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "item-3", out[0].ID)

	bySKU, err := repo.List(ctx, ports.ListFilter{Search: "kw-"})
	require.NoError(t, err)
	assert.Len(t, bySKU, 2)
}

func TestPostgresRepository_DeleteRemovesMovements(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := inventorypostgres.NewRepository(db)
	ctx := context.Background()

	item := buildItem(t, "item-1", "Róże czerwone", "KW-ROZ-001", 150, 50)
	_, err := repo.Save(ctx, item)
	require.NoError(t, err)
	err = repo.AppendMovement(ctx, &domain.Movement{
		ID: "mov-1", ItemID: "item-1", Type: domain.MovementUsage, Quantity: 10, OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	err = repo.Delete(ctx, "item-1")
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "item-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	movements, err := repo.Movements(ctx, "item-1")
	require.NoError(t, err)
	assert.Empty(t, movements)
}
