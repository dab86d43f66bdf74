package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
	"github.com/florenda/florenda-api/internal/domains/orders/ports"
)

type fakeOrderRepo struct {
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (f *fakeOrderRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	clone := *order
	f.orders[order.ID] = &clone
	return &clone, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	var list []*domain.Order
	for _, o := range f.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.CustomerType != "" && o.CustomerType != filter.CustomerType {
			continue
		}
		clone := *o
		list = append(list, &clone)
	}
	return list, nil
}

type fakeCatalog struct {
	products map[string]domain.CatalogItem
}

func (f *fakeCatalog) Lookup(_ context.Context, productID string) (domain.CatalogItem, error) {
	if p, ok := f.products[productID]; ok {
		return p, nil
	}
	return domain.CatalogItem{}, ports.ErrUnknownProduct
}

type fakeDirectory struct {
	recorded map[string]float64
	calls    int
}

func (f *fakeDirectory) RecordOrder(_ context.Context, customerID string, total float64) error {
	if f.recorded == nil {
		f.recorded = map[string]float64{}
	}
	f.recorded[customerID] += total
	f.calls++
	return nil
}

func flowerCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]domain.CatalogItem{
		"1": {ProductID: "1", Name: "Bukiet róż czerwonych", UnitPrice: 129.99},
		"2": {ProductID: "2", Name: "Tulipany mix", UnitPrice: 89.99},
	}}
}

func placeInput(lines ...ports.OrderLine) ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		CustomerName: "Jan Kowalski",
		CustomerType: domain.CustomerIndividual,
		PickupAt:     time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
		Lines:        lines,
	}
}

func TestPlaceOrder_ResolvesLinesAndPersists(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, flowerCatalog(), nil)

	order, err := svc.PlaceOrder(context.Background(), placeInput(
		ports.OrderLine{ProductID: "1", Quantity: 2},
		ports.OrderLine{ProductID: "2", Quantity: 1},
	))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 349.97, order.Total, 1e-9)
	assert.Len(t, repo.orders, 1)
}

func TestPlaceOrder_MergesRepeatedProductLines(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), flowerCatalog(), nil)

	order, err := svc.PlaceOrder(context.Background(), placeInput(
		ports.OrderLine{ProductID: "1", Quantity: 1},
		ports.OrderLine{ProductID: "1", Quantity: 2},
	))
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), flowerCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput(ports.OrderLine{ProductID: "99", Quantity: 1}))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ports.ErrUnknownProduct)
}

func TestPlaceOrder_RejectsNonPositiveQuantity(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), flowerCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput(ports.OrderLine{ProductID: "1", Quantity: 0}))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPlaceOrder_EmptyOrder(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), flowerCatalog(), nil)

	_, err := svc.PlaceOrder(context.Background(), placeInput())
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoItems)
}

func TestPlaceOrder_CompanyOrderRequiresCompanyName(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), flowerCatalog(), nil)

	input := placeInput(ports.OrderLine{ProductID: "1", Quantity: 1})
	input.CustomerType = domain.CustomerCompany
	_, err := svc.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrEmptyCompanyName)

	input.CompanyName = "Firma ABC"
	input.TaxID = "5213017228"
	order, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerCompany, order.CustomerType)
	assert.Equal(t, "Firma ABC", order.CompanyName)
}

func TestPlaceOrder_RecordsSaleAgainstCustomer(t *testing.T) {
	directory := &fakeDirectory{}
	svc := NewService(newFakeOrderRepo(), flowerCatalog(), directory)

	input := placeInput(ports.OrderLine{ProductID: "2", Quantity: 1})
	input.CustomerID = "cust-7"
	_, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 1, directory.calls)
	assert.InDelta(t, 89.99, directory.recorded["cust-7"], 1e-9)
}

func TestPlaceOrder_AnonymousOrderSkipsDirectory(t *testing.T) {
	directory := &fakeDirectory{}
	svc := NewService(newFakeOrderRepo(), flowerCatalog(), directory)

	_, err := svc.PlaceOrder(context.Background(), placeInput(ports.OrderLine{ProductID: "2", Quantity: 1}))
	require.NoError(t, err)
	assert.Zero(t, directory.calls)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, flowerCatalog(), nil)

	order, err := svc.PlaceOrder(context.Background(), placeInput(ports.OrderLine{ProductID: "1", Quantity: 1}))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{ID: order.ID, Status: domain.StatusReady})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{ID: order.ID, Status: "shipped"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{ID: "missing", Status: domain.StatusReady})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_Filters(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, flowerCatalog(), nil)

	individual := placeInput(ports.OrderLine{ProductID: "1", Quantity: 1})
	company := placeInput(ports.OrderLine{ProductID: "2", Quantity: 1})
	company.CustomerType = domain.CustomerCompany
	company.CompanyName = "Firma ABC"

	_, err := svc.PlaceOrder(context.Background(), individual)
	require.NoError(t, err)
	placed, err := svc.PlaceOrder(context.Background(), company)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), ports.UpdateStatusInput{ID: placed.ID, Status: domain.StatusProcessing})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ports.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	companies, err := svc.List(context.Background(), ports.ListFilter{CustomerType: domain.CustomerCompany})
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "Firma ABC", companies[0].CompanyName)

	processing, err := svc.List(context.Background(), ports.ListFilter{Status: domain.StatusProcessing})
	require.NoError(t, err)
	assert.Len(t, processing, 1)
}
