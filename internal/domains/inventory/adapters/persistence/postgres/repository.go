package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/florenda/florenda-api/internal/domains/inventory/domain"
	"github.com/florenda/florenda-api/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists inventory items and movements in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&itemRecord{}, &movementRecord{})
	}
	return repo
}

type itemRecord struct {
	ID            string    `gorm:"primaryKey;column:id;size:64"`
	Name          string    `gorm:"column:name"`
	Category      string    `gorm:"column:category;index"`
	SKU           string    `gorm:"column:sku;uniqueIndex"`
	CurrentStock  int       `gorm:"column:current_stock"`
	MinimumStock  int       `gorm:"column:minimum_stock"`
	Unit          string    `gorm:"column:unit;type:varchar(8)"`
	Location      string    `gorm:"column:location"`
	LastRestocked time.Time `gorm:"column:last_restocked"`
	Supplier      string    `gorm:"column:supplier"`
	UnitPrice     float64   `gorm:"column:unit_price"`
	Notes         string    `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "inventory_items" }

type movementRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	ItemID      string    `gorm:"column:item_id;size:64;index"`
	Type        string    `gorm:"column:type;type:varchar(16)"`
	Quantity    int       `gorm:"column:quantity"`
	OccurredAt  time.Time `gorm:"column:occurred_at;index"`
	Notes       string    `gorm:"column:notes"`
	PerformedBy string    `gorm:"column:performed_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (movementRecord) TableName() string { return "inventory_movements" }

// Save inserts or updates an item.
func (r *Repository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toItemRecord(item)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":           record.Name,
				"category":       record.Category,
				"sku":            record.SKU,
				"current_stock":  record.CurrentStock,
				"minimum_stock":  record.MinimumStock,
				"unit":           record.Unit,
				"location":       record.Location,
				"last_restocked": record.LastRestocked,
				"supplier":       record.Supplier,
				"unit_price":     record.UnitPrice,
				"notes":          record.Notes,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an item by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an item and its movement history.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&itemRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return r.db.WithContext(ctx).Delete(&movementRecord{}, "item_id = ?", id).Error
}

// List returns items matching the filter. The derived status filter is applied
// in memory since it is never stored.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("name ASC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}
	var records []itemRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		item := records[i].toDomain()
		if filter.Status != "" && item.Status() != filter.Status {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// AppendMovement stores one movement row.
func (r *Repository) AppendMovement(ctx context.Context, movement *domain.Movement) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if movement == nil {
		return errors.New("movement is nil")
	}
	record := movementRecord{
		ID:          movement.ID,
		ItemID:      movement.ItemID,
		Type:        string(movement.Type),
		Quantity:    movement.Quantity,
		OccurredAt:  movement.OccurredAt,
		Notes:       movement.Notes,
		PerformedBy: movement.PerformedBy,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

// Movements returns the movement history of an item, newest first.
func (r *Repository) Movements(ctx context.Context, itemID string) ([]*domain.Movement, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []movementRecord
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("occurred_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	movements := make([]*domain.Movement, 0, len(records))
	for i := range records {
		rec := records[i]
		movements = append(movements, &domain.Movement{
			ID:          rec.ID,
			ItemID:      rec.ItemID,
			Type:        domain.MovementType(rec.Type),
			Quantity:    rec.Quantity,
			OccurredAt:  rec.OccurredAt,
			Notes:       rec.Notes,
			PerformedBy: rec.PerformedBy,
		})
	}
	return movements, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inventory repository not configured")
	}
	return nil
}

func toItemRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		SKU:           item.SKU,
		CurrentStock:  item.CurrentStock,
		MinimumStock:  item.MinimumStock,
		Unit:          string(item.Unit),
		Location:      item.Location,
		LastRestocked: item.LastRestocked,
		Supplier:      item.Supplier,
		UnitPrice:     item.UnitPrice,
		Notes:         item.Notes,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		SKU:           r.SKU,
		CurrentStock:  r.CurrentStock,
		MinimumStock:  r.MinimumStock,
		Unit:          domain.Unit(r.Unit),
		Location:      r.Location,
		LastRestocked: r.LastRestocked,
		Supplier:      r.Supplier,
		UnitPrice:     r.UnitPrice,
		Notes:         r.Notes,
	}
}
