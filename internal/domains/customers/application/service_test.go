package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florenda/florenda-api/internal/domains/customers/domain"
	"github.com/florenda/florenda-api/internal/domains/customers/ports"
)

type fakeCustomerRepo struct {
	customers map[string]*domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*domain.Customer{}}
}

func (f *fakeCustomerRepo) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	copy := *customer
	f.customers[customer.ID] = &copy
	return &copy, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Customer, error) {
	var list []*domain.Customer
	for _, c := range f.customers {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.Name), needle) &&
				!strings.Contains(strings.ToLower(c.Email), needle) &&
				!strings.Contains(strings.ToLower(c.CompanyName), needle) {
				continue
			}
		}
		copy := *c
		list = append(list, &copy)
	}
	return list, nil
}

func strPtr(s string) *string { return &s }

func TestCreateCustomer_Individual(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	created, err := svc.Create(context.Background(), ports.CustomerMutation{
		Name:  strPtr("Anna Kowalska"),
		Email: strPtr("anna.kowalska@email.pl"),
		Phone: strPtr("+48 601 234 567"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.TypeIndividual, created.Type)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, "anna.kowalska@email.pl", created.Email)
	assert.Zero(t, created.TotalOrders)
}

func TestCreateCustomer_CompanyRequiresName(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	companyType := domain.TypeCompany
	_, err := svc.Create(context.Background(), ports.CustomerMutation{
		Name: strPtr("Hotel Grand"),
		Type: &companyType,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.Create(context.Background(), ports.CustomerMutation{
		Name:        strPtr("Hotel Grand"),
		Type:        &companyType,
		CompanyName: strPtr("Hotel Grand Sp. z o.o."),
		TaxID:       strPtr("1234567890"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeCompany, created.Type)
	assert.Equal(t, "1234567890", created.TaxID)
}

func TestCreateCustomer_RejectsBadEmail(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	_, err := svc.Create(context.Background(), ports.CustomerMutation{
		Name:  strPtr("Anna Kowalska"),
		Email: strPtr("not-an-email"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCustomer_PartialMutation(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), ports.CustomerMutation{
		Name:  strPtr("Anna Kowalska"),
		Email: strPtr("anna@email.pl"),
		Phone: strPtr("+48 601 234 567"),
	})
	require.NoError(t, err)

	tags := []string{"vip", "stały klient"}
	updated, err := svc.Update(context.Background(), created.ID, ports.CustomerMutation{
		Phone: strPtr("+48 602 000 000"),
		Tags:  &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "+48 602 000 000", updated.Phone)
	assert.Equal(t, "anna@email.pl", updated.Email)
	assert.Equal(t, tags, updated.Tags)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	svc := NewService(newFakeCustomerRepo())

	_, err := svc.Update(context.Background(), "missing", ports.CustomerMutation{Name: strPtr("X")})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRecordOrder_BumpsCounters(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), ports.CustomerMutation{
		Name: strPtr("Anna Kowalska"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecordOrder(context.Background(), created.ID, 129.99))
	require.NoError(t, svc.RecordOrder(context.Background(), created.ID, 89.99))

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalOrders)
	assert.InDelta(t, 219.98, got.TotalSpent, 1e-9)

	err = svc.RecordOrder(context.Background(), created.ID, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListCustomers_Filters(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), ports.CustomerMutation{Name: strPtr("Anna Kowalska")})
	require.NoError(t, err)
	companyType := domain.TypeCompany
	_, err = svc.Create(context.Background(), ports.CustomerMutation{
		Name:        strPtr("Hotel Grand"),
		Type:        &companyType,
		CompanyName: strPtr("Hotel Grand Sp. z o.o."),
	})
	require.NoError(t, err)

	companies, err := svc.List(context.Background(), ports.ListFilter{Type: domain.TypeCompany})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Hotel Grand", companies[0].Name)

	byName, err := svc.List(context.Background(), ports.ListFilter{Search: "kowalska"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
}
