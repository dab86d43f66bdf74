package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
	"github.com/florenda/florenda-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table. Line items are
// stored denormalized as JSON since they are an immutable snapshot.
type orderRecord struct {
	ID           string           `gorm:"primaryKey;column:id;size:64"`
	CustomerID   string           `gorm:"column:customer_id;size:64;index"`
	CustomerName string           `gorm:"column:customer_name"`
	CustomerType string           `gorm:"column:customer_type;type:varchar(16);index:idx_orders_type_status"`
	CompanyName  string           `gorm:"column:company_name"`
	TaxID        string           `gorm:"column:tax_id;size:32"`
	PickupAt     time.Time        `gorm:"column:pickup_at;index"`
	Notes        string           `gorm:"column:notes"`
	Tags         pq.StringArray   `gorm:"column:tags;type:text[]"`
	Items        []lineItemRecord `gorm:"column:items;serializer:json;type:jsonb"`
	Total        float64          `gorm:"column:total"`
	Status       string           `gorm:"column:status;type:varchar(16);index:idx_orders_type_status"`
	CreatedAt    time.Time        `gorm:"column:created_at;index"`
	UpdatedAt    time.Time        `gorm:"column:updated_at"`
}

type lineItemRecord struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"customer_id":   record.CustomerID,
				"customer_name": record.CustomerName,
				"customer_type": record.CustomerType,
				"company_name":  record.CompanyName,
				"tax_id":        record.TaxID,
				"pickup_at":     record.PickupAt,
				"notes":         record.Notes,
				"tags":          record.Tags,
				"items":         gorm.Expr("EXCLUDED.items"),
				"total":         record.Total,
				"status":        record.Status,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns orders matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.CustomerType != "" {
		query = query.Where("customer_type = ?", string(filter.CustomerType))
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]lineItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemRecord{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return orderRecord{
		ID:           order.ID,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		CustomerType: string(order.CustomerType),
		CompanyName:  order.CompanyName,
		TaxID:        order.TaxID,
		PickupAt:     order.PickupAt,
		Notes:        order.Notes,
		Tags:         pq.StringArray(order.Tags),
		Items:        items,
		Total:        order.Total,
		Status:       string(order.Status),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.LineItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return &domain.Order{
		ID:           r.ID,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		CustomerType: domain.CustomerType(r.CustomerType),
		CompanyName:  r.CompanyName,
		TaxID:        r.TaxID,
		PickupAt:     r.PickupAt,
		Notes:        r.Notes,
		Tags:         []string(r.Tags),
		Items:        items,
		Total:        r.Total,
		Status:       domain.Status(r.Status),
	}
}
