package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/florenda/florenda-api/internal/domains/customers/domain"
	"github.com/florenda/florenda-api/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&customerRecord{})
	}
	return repo
}

type customerRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Type        string         `gorm:"column:type;type:varchar(16);index"`
	Name        string         `gorm:"column:name;index"`
	Email       string         `gorm:"column:email"`
	Phone       string         `gorm:"column:phone"`
	Address     string         `gorm:"column:address"`
	CompanyName string         `gorm:"column:company_name"`
	TaxID       string         `gorm:"column:tax_id;size:32"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[]"`
	Notes       string         `gorm:"column:notes"`
	TotalOrders int            `gorm:"column:total_orders"`
	TotalSpent  float64        `gorm:"column:total_spent"`
	Status      string         `gorm:"column:status;type:varchar(16);index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Save inserts or updates a customer.
func (r *Repository) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	record := toRecord(customer)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"type":         record.Type,
				"name":         record.Name,
				"email":        record.Email,
				"phone":        record.Phone,
				"address":      record.Address,
				"company_name": record.CompanyName,
				"tax_id":       record.TaxID,
				"tags":         record.Tags,
				"notes":        record.Notes,
				"total_orders": record.TotalOrders,
				"total_spent":  record.TotalSpent,
				"status":       record.Status,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a customer by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a customer by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&customerRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns customers matching the filter.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("name ASC")
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company_name ILIKE ?", pattern, pattern, pattern)
	}
	var records []customerRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]*domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	return nil
}

func toRecord(customer *domain.Customer) customerRecord {
	return customerRecord{
		ID:          customer.ID,
		Type:        string(customer.Type),
		Name:        customer.Name,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Address:     customer.Address,
		CompanyName: customer.CompanyName,
		TaxID:       customer.TaxID,
		Tags:        pq.StringArray(customer.Tags),
		Notes:       customer.Notes,
		TotalOrders: customer.TotalOrders,
		TotalSpent:  customer.TotalSpent,
		Status:      string(customer.Status),
		CreatedAt:   customer.CreatedAt,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          r.ID,
		Type:        domain.Type(r.Type),
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		CompanyName: r.CompanyName,
		TaxID:       r.TaxID,
		Tags:        []string(r.Tags),
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		TotalOrders: r.TotalOrders,
		TotalSpent:  r.TotalSpent,
		Status:      domain.Status(r.Status),
	}
}
