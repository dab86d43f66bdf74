package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRibbonItem(t *testing.T) *Item {
	t.Helper()
	item, err := NewItem("inv-2", "Wstążka satynowa biała", "DOD-WST-002", UnitMeter, 25, 30)
	require.NoError(t, err)
	return item
}

func TestNewItem_Validation(t *testing.T) {
	_, err := NewItem("inv-1", "  ", "KW-ROZ-001", UnitPiece, 150, 50)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewItem("inv-1", "Róże czerwone", "", UnitPiece, 150, 50)
	require.ErrorIs(t, err, ErrEmptySKU)

	_, err = NewItem("inv-1", "Róże czerwone", "KW-ROZ-001", "l", 150, 50)
	require.ErrorIs(t, err, ErrInvalidUnit)

	_, err = NewItem("inv-1", "Róże czerwone", "KW-ROZ-001", UnitPiece, -1, 50)
	require.ErrorIs(t, err, ErrNegativeStock)
}

func TestItem_StatusIsDerived(t *testing.T) {
	item := newRibbonItem(t)
	assert.Equal(t, StockLowStock, item.Status())

	require.NoError(t, item.Apply(Movement{Type: MovementRestock, Quantity: 100}))
	assert.Equal(t, StockInStock, item.Status())

	require.NoError(t, item.Apply(Movement{Type: MovementAdjustment, Quantity: 125}))
	require.NoError(t, item.Apply(Movement{Type: MovementUsage, Quantity: 125}))
	assert.Equal(t, StockOutOfStock, item.Status())
}

func TestItem_ApplyRestockBumpsLastRestocked(t *testing.T) {
	item := newRibbonItem(t)
	occurred := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, item.Apply(Movement{Type: MovementRestock, Quantity: 50, OccurredAt: occurred}))
	assert.Equal(t, 75, item.CurrentStock)
	assert.Equal(t, occurred, item.LastRestocked)
}

func TestItem_ApplyUsageCannotGoNegative(t *testing.T) {
	item := newRibbonItem(t)

	err := item.Apply(Movement{Type: MovementUsage, Quantity: 26})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 25, item.CurrentStock)

	require.NoError(t, item.Apply(Movement{Type: MovementLoss, Quantity: 25}))
	assert.Equal(t, 0, item.CurrentStock)
}

func TestItem_ApplyRejectsBadMovements(t *testing.T) {
	item := newRibbonItem(t)

	require.ErrorIs(t, item.Apply(Movement{Type: MovementRestock, Quantity: 0}), ErrNonPositiveMovement)
	require.ErrorIs(t, item.Apply(Movement{Type: MovementUsage, Quantity: 0}), ErrNonPositiveMovement)
	require.ErrorIs(t, item.Apply(Movement{Type: "transfer", Quantity: 5}), ErrInvalidMovement)
	assert.Equal(t, 25, item.CurrentStock)
}

func TestItem_ApplyAdjustmentWritesOffStock(t *testing.T) {
	item := newRibbonItem(t)

	require.NoError(t, item.Apply(Movement{Type: MovementAdjustment, Quantity: 0}))
	assert.Equal(t, 0, item.CurrentStock)
	assert.Equal(t, StockOutOfStock, item.Status())

	require.ErrorIs(t, item.Apply(Movement{Type: MovementAdjustment, Quantity: -5}), ErrNegativeAdjustment)
	assert.Equal(t, 0, item.CurrentStock)
}
