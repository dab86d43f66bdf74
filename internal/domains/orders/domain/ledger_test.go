package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_AddItemMergesDuplicateProducts(t *testing.T) {
	ledger := NewLedger()
	roses := CatalogItem{ProductID: "1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99}

	for i := 0; i < 5; i++ {
		require.NoError(t, ledger.AddItem(roses))
	}

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestLedger_AddItemMergesRegardlessOfInterleaving(t *testing.T) {
	ledger := NewLedger()
	roses := CatalogItem{ProductID: "1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99}
	tulips := CatalogItem{ProductID: "2", Name: "Tulipany mix", UnitPrice: 89.99}
	orchid := CatalogItem{ProductID: "3", Name: "Storczyk biały", UnitPrice: 159.99}

	for _, product := range []CatalogItem{roses, tulips, roses, orchid, tulips, roses} {
		require.NoError(t, ledger.AddItem(product))
	}

	items := ledger.Items()
	require.Len(t, items, 3)
	// Insertion order is preserved even when later adds merge into earlier lines.
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "2", items[1].ProductID)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, "3", items[2].ProductID)
	assert.Equal(t, 1, items[2].Quantity)
}

func TestLedger_AddItemPinsPriceAtFirstInsertion(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 129.99}))
	// A catalog price change between adds must not leak into the open order.
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 999.99}))

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 129.99, items[0].UnitPrice, 1e-9)
}

func TestLedger_AddItemRejectsMalformedProducts(t *testing.T) {
	ledger := NewLedger()

	err := ledger.AddItem(CatalogItem{ProductID: "", Name: "bez id", UnitPrice: 10})
	require.ErrorIs(t, err, ErrEmptyProductID)

	err = ledger.AddItem(CatalogItem{ProductID: "1", Name: "ujemna cena", UnitPrice: -0.01})
	require.ErrorIs(t, err, ErrNegativePrice)

	assert.Zero(t, ledger.Len())
	assert.Zero(t, ledger.Total())
}

func TestLedger_ZeroPriceItemCountsButDoesNotChangeTotal(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 129.99}))
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "gift", Name: "Bilecik gratis", UnitPrice: 0}))

	assert.Equal(t, 2, ledger.Len())
	assert.InDelta(t, 129.99, ledger.Total(), 1e-9)
}

func TestLedger_SetQuantityBelowOneFailsAndLeavesStateIntact(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 129.99}))
	id := ledger.Items()[0].ID

	require.ErrorIs(t, ledger.SetQuantity(id, 0), ErrInvalidQuantity)
	require.ErrorIs(t, ledger.SetQuantity(id, -3), ErrInvalidQuantity)

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestLedger_SetQuantityUnknownLine(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 129.99}))

	err := ledger.SetQuantity("no-such-line", 4)
	require.ErrorIs(t, err, ErrLineItemNotFound)
	assert.Equal(t, 1, ledger.Items()[0].Quantity)
}

func TestLedger_RemoveItemIsIdempotent(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 129.99}))
	id := ledger.Items()[0].ID

	ledger.RemoveItem(id)
	assert.Zero(t, ledger.Len())

	ledger.RemoveItem(id)
	assert.Zero(t, ledger.Len())
	assert.Zero(t, ledger.Total())
}

func TestLedger_ItemsReturnsDefensiveCopy(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.AddItem(CatalogItem{ProductID: "1", Name: "Bukiet róż", UnitPrice: 129.99}))

	snapshot := ledger.Items()
	snapshot[0].Quantity = 100
	snapshot[0].UnitPrice = 0

	items := ledger.Items()
	assert.Equal(t, 1, items[0].Quantity)
	assert.InDelta(t, 129.99, items[0].UnitPrice, 1e-9)
}

func TestLedger_EmptyLedger(t *testing.T) {
	ledger := NewLedger()
	assert.Empty(t, ledger.Items())
	assert.Zero(t, ledger.Total())
}

func TestLedger_OrderEntrySession(t *testing.T) {
	ledger := NewLedger()
	roses := CatalogItem{ProductID: "1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99}
	tulips := CatalogItem{ProductID: "2", Name: "Tulipany mix", UnitPrice: 89.99}

	require.NoError(t, ledger.AddItem(roses))
	require.Len(t, ledger.Items(), 1)
	assert.Equal(t, 1, ledger.Items()[0].Quantity)
	assert.InDelta(t, 129.99, ledger.Total(), 1e-9)

	require.NoError(t, ledger.AddItem(roses))
	require.Len(t, ledger.Items(), 1)
	assert.Equal(t, 2, ledger.Items()[0].Quantity)
	assert.InDelta(t, 259.98, ledger.Total(), 1e-9)

	require.NoError(t, ledger.AddItem(tulips))
	require.Len(t, ledger.Items(), 2)
	assert.InDelta(t, 349.97, ledger.Total(), 1e-9)

	rosesLine := ledger.Items()[0].ID
	require.ErrorIs(t, ledger.SetQuantity(rosesLine, 0), ErrInvalidQuantity)
	assert.Equal(t, 2, ledger.Items()[0].Quantity)
	assert.InDelta(t, 349.97, ledger.Total(), 1e-9)

	ledger.RemoveItem(rosesLine)
	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ProductID)
	assert.InDelta(t, 89.99, ledger.Total(), 1e-9)
}
