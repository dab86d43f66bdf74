package api

import (
	"context"
	"log/slog"

	catalogdomain "github.com/florenda/florenda-api/internal/domains/catalog/domain"
	catalogports "github.com/florenda/florenda-api/internal/domains/catalog/ports"
	customerdomain "github.com/florenda/florenda-api/internal/domains/customers/domain"
	customerports "github.com/florenda/florenda-api/internal/domains/customers/ports"
	inventorydomain "github.com/florenda/florenda-api/internal/domains/inventory/domain"
	inventoryports "github.com/florenda/florenda-api/internal/domains/inventory/ports"
	userdomain "github.com/florenda/florenda-api/internal/domains/users/domain"
	userports "github.com/florenda/florenda-api/internal/domains/users/ports"
)

type seedServices struct {
	users     userports.Service
	catalog   catalogports.Service
	inventory inventoryports.Service
	customers customerports.Service
}

// seedDemoData loads the fixtures the dashboard expects on a fresh install.
// It keys off the admin account: when it already exists, seeding is skipped.
func seedDemoData(ctx context.Context, logger *slog.Logger, s seedServices) {
	if _, err := s.users.GetByUsername(ctx, "admin"); err == nil {
		logger.Info("demo data already present, skipping seed")
		return
	}

	admin, err := userdomain.NewUser(0, "admin", "admin", userdomain.RoleAdmin)
	if err == nil {
		_, err = s.users.CreateUser(ctx, admin)
	}
	if err != nil {
		logger.Warn("failed to seed admin account", slog.String("error", err.Error()))
		return
	}

	for _, product := range demoProducts() {
		if _, err := s.catalog.Create(ctx, product); err != nil {
			logger.Warn("failed to seed product", slog.String("error", err.Error()))
		}
	}
	for _, item := range demoItems() {
		if _, err := s.inventory.CreateItem(ctx, item); err != nil {
			logger.Warn("failed to seed inventory item", slog.String("error", err.Error()))
		}
	}
	for _, customer := range demoCustomers() {
		if _, err := s.customers.Create(ctx, customer); err != nil {
			logger.Warn("failed to seed customer", slog.String("error", err.Error()))
		}
	}
	logger.Info("demo data seeded")
}

func demoProducts() []catalogports.ProductMutation {
	return []catalogports.ProductMutation{
		{
			Name:         strPtr("Bukiet róż czerwonych"),
			Description:  strPtr("Klasyczny bukiet dwunastu czerwonych róż ze wstążką"),
			Price:        floatPtr(129.99),
			Stock:        intPtr(15),
			MinimumStock: intPtr(5),
			Category:     strPtr("bukiety"),
			Components: &[]catalogports.ComponentInput{
				{Name: "Róża czerwona", Quantity: 12, Unit: catalogdomain.ComponentPiece, Price: 8.5},
				{Name: "Wstążka satynowa", Quantity: 50, Unit: catalogdomain.ComponentCentimeter, Price: 0.05},
			},
		},
		{
			Name:         strPtr("Tulipany mix"),
			Description:  strPtr("Wiązanka tulipanów w mieszanych kolorach"),
			Price:        floatPtr(89.99),
			Stock:        intPtr(8),
			MinimumStock: intPtr(3),
			Category:     strPtr("wiązanki"),
			Components: &[]catalogports.ComponentInput{
				{Name: "Tulipan", Quantity: 15, Unit: catalogdomain.ComponentPiece, Price: 4.0},
			},
		},
	}
}

func demoItems() []inventoryports.ItemMutation {
	return []inventoryports.ItemMutation{
		{
			Name:         strPtr("Róże czerwone"),
			Category:     strPtr("kwiaty cięte"),
			SKU:          strPtr("KW-ROZ-001"),
			CurrentStock: intPtr(150),
			MinimumStock: intPtr(50),
			Unit:         unitPtr(inventorydomain.UnitPiece),
			Location:     strPtr("Chłodnia A"),
			Supplier:     strPtr("Hurtownia Flora"),
			UnitPrice:    floatPtr(4.5),
		},
		{
			Name:         strPtr("Wstążka satynowa"),
			Category:     strPtr("dodatki"),
			SKU:          strPtr("DOD-WST-002"),
			CurrentStock: intPtr(25),
			MinimumStock: intPtr(30),
			Unit:         unitPtr(inventorydomain.UnitMeter),
			Location:     strPtr("Magazyn B"),
			Supplier:     strPtr("Dekor-Pol"),
			UnitPrice:    floatPtr(2.2),
		},
		{
			Name:         strPtr("Tulipany mix"),
			Category:     strPtr("kwiaty cięte"),
			SKU:          strPtr("KW-TUL-003"),
			CurrentStock: intPtr(0),
			MinimumStock: intPtr(40),
			Unit:         unitPtr(inventorydomain.UnitPiece),
			Location:     strPtr("Chłodnia A"),
			Supplier:     strPtr("Hurtownia Flora"),
			UnitPrice:    floatPtr(2.8),
		},
	}
}

func demoCustomers() []customerports.CustomerMutation {
	individual := customerdomain.TypeIndividual
	company := customerdomain.TypeCompany
	return []customerports.CustomerMutation{
		{
			Type:  &individual,
			Name:  strPtr("Anna Kowalska"),
			Email: strPtr("anna.kowalska@example.com"),
			Phone: strPtr("+48 600 100 200"),
			Tags:  &[]string{"stały klient"},
		},
		{
			Type:        &company,
			Name:        strPtr("Recepcja"),
			CompanyName: strPtr("Hotel Grand Sp. z o.o."),
			TaxID:       strPtr("1234567890"),
			Email:       strPtr("recepcja@hotelgrand.example.com"),
			Tags:        &[]string{"faktury", "cotygodniowe dostawy"},
		},
	}
}

func strPtr(s string) *string                              { return &s }
func intPtr(i int) *int                                    { return &i }
func floatPtr(f float64) *float64                          { return &f }
func unitPtr(u inventorydomain.Unit) *inventorydomain.Unit { return &u }
