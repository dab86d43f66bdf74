package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerWithRoses(t *testing.T) *Ledger {
	t.Helper()
	ledger := NewLedger()
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 129.99}))
	return ledger
}

func TestNewOrder_SnapshotsLedger(t *testing.T) {
	ledger := ledgerWithRoses(t)
	pickup := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	order, err := NewOrder("ord-1", "Jan Kowalski", CustomerIndividual, "", "", pickup, ledger)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 129.99, order.Total, 1e-9)

	// The snapshot must stay stable if the ledger keeps mutating.
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "2", Name: "Tulipany", UnitPrice: 89.99}))
	assert.Len(t, order.Items, 1)
	assert.InDelta(t, 129.99, order.Total, 1e-9)
}

func TestNewOrder_RejectsEmptyLedger(t *testing.T) {
	_, err := NewOrder("ord-1", "Jan Kowalski", CustomerIndividual, "", "", time.Now(), NewLedger())
	require.ErrorIs(t, err, ErrNoItems)
}

func TestNewOrder_RejectsEmptyCustomerName(t *testing.T) {
	_, err := NewOrder("ord-1", "   ", CustomerIndividual, "", "", time.Now(), ledgerWithRoses(t))
	require.ErrorIs(t, err, ErrEmptyCustomerName)
}

func TestOrder_CompanyRequiresCompanyName(t *testing.T) {
	_, err := NewOrder("ord-1", "Firma ABC", CustomerCompany, "", "", time.Now(), ledgerWithRoses(t))
	require.ErrorIs(t, err, ErrEmptyCompanyName)
}

func TestOrder_SetCompany(t *testing.T) {
	order, err := NewOrder("ord-1", "Anna Nowak", CustomerIndividual, "", "", time.Now(), ledgerWithRoses(t))
	require.NoError(t, err)

	require.NoError(t, order.SetCompany("Firma ABC Sp. z o.o.", "5213017228"))
	assert.Equal(t, CustomerCompany, order.CustomerType)
	assert.Equal(t, "Firma ABC Sp. z o.o.", order.CompanyName)
	require.NoError(t, order.Validate())

	require.ErrorIs(t, order.SetCompany("  ", ""), ErrEmptyCompanyName)
}

func TestOrder_UpdateStatus(t *testing.T) {
	order, err := NewOrder("ord-1", "Jan Kowalski", CustomerIndividual, "", "", time.Now(), ledgerWithRoses(t))
	require.NoError(t, err)

	for _, status := range []Status{StatusProcessing, StatusReady, StatusCompleted, StatusCancelled} {
		require.NoError(t, order.UpdateStatus(status))
		assert.Equal(t, status, order.Status)
	}

	require.ErrorIs(t, order.UpdateStatus("shipped"), ErrInvalidStatus)
	assert.Equal(t, StatusCancelled, order.Status)

	require.NoError(t, order.UpdateStatus(""))
	assert.Equal(t, StatusPending, order.Status)
}
