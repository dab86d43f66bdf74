package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	orderdomain "github.com/florenda/florenda-api/internal/domains/orders/domain"
	orderports "github.com/florenda/florenda-api/internal/domains/orders/ports"
)

const (
	// PersistOrderActivityName persists an order aggregate without touching customer counters.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// RecordCustomerPurchaseActivityName bumps the customer lifetime counters for a placed order.
	RecordCustomerPurchaseActivityName = "orders.activities.RecordCustomerPurchase"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	persistService orderports.Service
	directory      orderports.CustomerDirectory
}

// NewActivities wires the order collaborators into the Temporal activities bundle.
// persistService should be constructed without a customer directory to avoid duplicate counter bumps.
func NewActivities(persistService orderports.Service, directory orderports.CustomerDirectory) *Activities {
	return &Activities{
		persistService: persistService,
		directory:      directory,
	}
}

// PersistOrder resolves and stores a new order aggregate.
func (a *Activities) PersistOrder(ctx context.Context, input orderports.PlaceOrderInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persistService == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "customerName", input.CustomerName)
	order, err := a.persistService.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "customerName", input.CustomerName, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID, "total", order.Total)
	return order, nil
}

// PurchaseRecord identifies a placed order for customer bookkeeping.
type PurchaseRecord struct {
	OrderID    string
	CustomerID string
	Total      float64
}

// RecordCustomerPurchase bumps the lifetime counters of the ordering customer.
func (a *Activities) RecordCustomerPurchase(ctx context.Context, input PurchaseRecord) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("purchase record activity not initialized", "orderId", input.OrderID)
		return errors.New("purchase record activity not initialized")
	}
	if a.directory == nil {
		logger.Info("customer directory not configured; skipping", "orderId", input.OrderID)
		return nil
	}

	var hb purchaseHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("RecordCustomerPurchase already completed in prior attempt; skipping", "orderId", input.OrderID)
		return nil
	}

	logger.Info("RecordCustomerPurchase activity started", "orderId", input.OrderID, "customerId", input.CustomerID)
	if err := a.directory.RecordOrder(ctx, input.CustomerID, input.Total); err != nil {
		logger.Error("RecordCustomerPurchase failed", "orderId", input.OrderID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, purchaseHeartbeat{Completed: true})
	logger.Info("RecordCustomerPurchase activity completed", "orderId", input.OrderID)
	return nil
}

type purchaseHeartbeat struct {
	Completed bool
}
