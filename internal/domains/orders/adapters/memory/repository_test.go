package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
	"github.com/florenda/florenda-api/internal/domains/orders/ports"
)

func buildOrder(t *testing.T, id, customerName string) *domain.Order {
	t.Helper()
	ledger := domain.NewLedger()
	require.NoError(t, ledger.AddItem(domain.CatalogItem{ProductID: "prod-1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99}))
	pickup := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	order, err := domain.NewOrder(id, customerName, domain.CustomerIndividual, "", "", pickup, ledger)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	order := buildOrder(t, "ord-1", "Anna Kowalska")
	order.ReplaceTags([]string{"pilne"})

	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", saved.ID)

	retrieved, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "Anna Kowalska", retrieved.CustomerName)
	assert.Equal(t, []string{"pilne"}, retrieved.Tags)

	// the stored copy is isolated from caller mutations
	retrieved.CustomerName = "zmieniona"
	again, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "Anna Kowalska", again.CustomerName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, id := range []string{"ord-1", "ord-2", "ord-3"} {
		_, err := repo.Save(ctx, buildOrder(t, id, "Anna Kowalska"))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ord-3", list[0].ID)
	assert.Equal(t, "ord-2", list[1].ID)
	assert.Equal(t, "ord-1", list[2].ID)

	// re-saving keeps the original position
	first, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	require.NoError(t, first.UpdateStatus(domain.StatusReady))
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	list, err = repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ord-1", list[2].ID)
}

func TestRepository_ListFilters(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, buildOrder(t, "ord-1", "Anna Kowalska"))
	require.NoError(t, err)

	ledger := domain.NewLedger()
	require.NoError(t, ledger.AddItem(domain.CatalogItem{ProductID: "prod-1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99}))
	company, err := domain.NewOrder("ord-2", "Recepcja", domain.CustomerCompany, "Hotel Grand Sp. z o.o.", "1234567890", time.Now().Add(24*time.Hour), ledger)
	require.NoError(t, err)
	require.NoError(t, company.UpdateStatus(domain.StatusCompleted))
	_, err = repo.Save(ctx, company)
	require.NoError(t, err)

	completed, err := repo.List(ctx, ports.ListFilter{Status: domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "ord-2", completed[0].ID)

	companies, err := repo.List(ctx, ports.ListFilter{CustomerType: domain.CustomerCompany})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Hotel Grand Sp. z o.o.", companies[0].CompanyName)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, buildOrder(t, "ord-1", "Anna Kowalska"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "ord-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "ord-1"), ports.ErrNotFound)

	// a deleted id takes a fresh slot at the top when reused
	_, err = repo.Save(ctx, buildOrder(t, "ord-2", "Anna Kowalska"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, buildOrder(t, "ord-1", "Anna Kowalska"))
	require.NoError(t, err)

	list, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ord-1", list[0].ID)
}
