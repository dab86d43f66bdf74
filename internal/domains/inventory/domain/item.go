package domain

import (
	"errors"
	"strings"
	"time"
)

// Unit enumerates the measurement units used by the shop.
type Unit string

const (
	UnitPiece Unit = "szt"
	UnitKilo  Unit = "kg"
	UnitGram  Unit = "g"
	UnitMeter Unit = "m"
)

// MovementType enumerates the reasons stock counts change.
type MovementType string

const (
	MovementRestock    MovementType = "restock"
	MovementUsage      MovementType = "usage"
	MovementLoss       MovementType = "loss"
	MovementAdjustment MovementType = "adjustment"
)

var (
	ErrEmptyName           = errors.New("item name is required")
	ErrEmptySKU            = errors.New("item sku is required")
	ErrInvalidUnit         = errors.New("item unit is invalid")
	ErrNegativeStock       = errors.New("stock counts must be greater or equal to zero")
	ErrNegativePrice       = errors.New("item price must be greater or equal to zero")
	ErrInvalidMovement     = errors.New("movement type is invalid")
	ErrNonPositiveMovement = errors.New("movement quantity must be greater than zero")
	ErrNegativeAdjustment  = errors.New("adjustment quantity must be greater or equal to zero")
	ErrInsufficientStock   = errors.New("movement would drive stock below zero")
)

// Item is one stocked supply (cut flowers, ribbons, vases). StockStatus is
// derived from the counts via ClassifyStock and never stored on the item.
type Item struct {
	ID            string
	Name          string
	Category      string
	SKU           string
	CurrentStock  int
	MinimumStock  int
	Unit          Unit
	Location      string
	LastRestocked time.Time
	Supplier      string
	UnitPrice     float64
	Notes         string
}

// Movement records a single stock change applied to an item.
type Movement struct {
	ID          string
	ItemID      string
	Type        MovementType
	Quantity    int
	OccurredAt  time.Time
	Notes       string
	PerformedBy string
}

// NewItem validates and builds an inventory item.
func NewItem(id, name, sku string, unit Unit, currentStock, minimumStock int) (*Item, error) {
	item := &Item{ID: id, Unit: unit, CurrentStock: currentStock, MinimumStock: minimumStock}
	if err := item.Rename(name); err != nil {
		return nil, err
	}
	if err := item.SetSKU(sku); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Status classifies the current counts.
func (i *Item) Status() StockStatus {
	return ClassifyStock(i.CurrentStock, i.MinimumStock)
}

// Rename trims and validates the item name.
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	i.Name = name
	return nil
}

// SetSKU trims and validates the stock-keeping unit code.
func (i *Item) SetSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrEmptySKU
	}
	i.SKU = sku
	return nil
}

// SetPrice validates the purchase price per unit.
func (i *Item) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	i.UnitPrice = price
	return nil
}

// Validate re-applies core invariants for persistence.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(i.SKU) == "" {
		return ErrEmptySKU
	}
	if !isValidUnit(i.Unit) {
		return ErrInvalidUnit
	}
	if i.CurrentStock < 0 || i.MinimumStock < 0 {
		return ErrNegativeStock
	}
	if i.UnitPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Apply mutates the stock count according to the movement. Restocks add and
// bump LastRestocked, usage and loss subtract, adjustments set the absolute
// count. Adjustments accept zero so a full write-off is possible; the other
// types require a positive quantity. A movement that fails leaves the item
// unchanged.
func (i *Item) Apply(movement Movement) error {
	switch movement.Type {
	case MovementRestock:
		if movement.Quantity <= 0 {
			return ErrNonPositiveMovement
		}
		i.CurrentStock += movement.Quantity
		if movement.OccurredAt.IsZero() {
			i.LastRestocked = time.Now()
		} else {
			i.LastRestocked = movement.OccurredAt
		}
	case MovementUsage, MovementLoss:
		if movement.Quantity <= 0 {
			return ErrNonPositiveMovement
		}
		if movement.Quantity > i.CurrentStock {
			return ErrInsufficientStock
		}
		i.CurrentStock -= movement.Quantity
	case MovementAdjustment:
		if movement.Quantity < 0 {
			return ErrNegativeAdjustment
		}
		i.CurrentStock = movement.Quantity
	default:
		return ErrInvalidMovement
	}
	return nil
}

func isValidUnit(unit Unit) bool {
	switch unit {
	case UnitPiece, UnitKilo, UnitGram, UnitMeter:
		return true
	default:
		return false
	}
}
