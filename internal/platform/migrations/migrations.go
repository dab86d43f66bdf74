package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&itemRecord{},
		&movementRecord{},
		&orderRecord{},
		&customerRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:64"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description"`
	Price        float64   `gorm:"column:price"`
	Status       string    `gorm:"column:status;type:varchar(16);index"`
	Stock        int       `gorm:"column:stock"`
	MinimumStock int       `gorm:"column:minimum_stock"`
	ImageURL     string    `gorm:"column:image_url"`
	Category     string    `gorm:"column:category;index"`
	Components   string    `gorm:"column:components;type:jsonb"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Item and movement schemas mirror the inventory Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID           string         `gorm:"primaryKey;column:id;size:64"`
	CustomerID   string         `gorm:"column:customer_id;size:64;index"`
	CustomerName string         `gorm:"column:customer_name"`
	CustomerType string         `gorm:"column:customer_type;type:varchar(16);index:idx_orders_type_status"`
	CompanyName  string         `gorm:"column:company_name"`
	TaxID        string         `gorm:"column:tax_id;size:32"`
	PickupAt     time.Time      `gorm:"column:pickup_at;index"`
	Notes        string         `gorm:"column:notes"`
	Tags         pq.StringArray `gorm:"column:tags;type:text[]"`
	Items        string         `gorm:"column:items;type:jsonb"`
	Total        float64        `gorm:"column:total"`
	Status       string         `gorm:"column:status;type:varchar(16);index:idx_orders_type_status"`
	CreatedAt    time.Time      `gorm:"column:created_at;index"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Customer schema mirrors the customers Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
	Password  string    `gorm:"column:password_hash"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
