package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/florenda/florenda-api/internal/domains/catalog/domain"
	"github.com/florenda/florenda-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

type productRecord struct {
	ID           string            `gorm:"primaryKey;column:id;size:64"`
	Name         string            `gorm:"column:name"`
	Description  string            `gorm:"column:description"`
	Price        float64           `gorm:"column:price"`
	Status       string            `gorm:"column:status;type:varchar(16);index"`
	Stock        int               `gorm:"column:stock"`
	MinimumStock int               `gorm:"column:minimum_stock"`
	ImageURL     string            `gorm:"column:image_url"`
	Category     string            `gorm:"column:category;index"`
	Components   []componentRecord `gorm:"column:components;serializer:json;type:jsonb"`
	CreatedAt    time.Time         `gorm:"column:created_at"`
	UpdatedAt    time.Time         `gorm:"column:updated_at"`
}

type componentRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":          record.Name,
				"description":   record.Description,
				"price":         record.Price,
				"status":        record.Status,
				"stock":         record.Stock,
				"minimum_stock": record.MinimumStock,
				"image_url":     record.ImageURL,
				"category":      record.Category,
				"components":    gorm.Expr("EXCLUDED.components"),
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a product by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns products matching the filter.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("name ASC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR category ILIKE ?", pattern, pattern)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	components := make([]componentRecord, 0, len(product.Components))
	for _, c := range product.Components {
		components = append(components, componentRecord{
			ID:       c.ID,
			Name:     c.Name,
			Quantity: c.Quantity,
			Unit:     string(c.Unit),
			Price:    c.Price,
		})
	}
	return productRecord{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		Status:       string(product.Status),
		Stock:        product.Stock,
		MinimumStock: product.MinimumStock,
		ImageURL:     product.ImageURL,
		Category:     product.Category,
		Components:   components,
	}
}

func (r productRecord) toDomain() *domain.Product {
	components := make([]domain.Component, 0, len(r.Components))
	for _, c := range r.Components {
		components = append(components, domain.Component{
			ID:       c.ID,
			Name:     c.Name,
			Quantity: c.Quantity,
			Unit:     domain.ComponentUnit(c.Unit),
			Price:    c.Price,
		})
	}
	return &domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Status:       domain.Status(r.Status),
		Stock:        r.Stock,
		MinimumStock: r.MinimumStock,
		ImageURL:     r.ImageURL,
		Category:     r.Category,
		Components:   components,
	}
}
