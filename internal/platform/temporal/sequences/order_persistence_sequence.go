package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/florenda/florenda-api/internal/domains/orders/domain"
	orderports "github.com/florenda/florenda-api/internal/domains/orders/ports"
	orderactivities "github.com/florenda/florenda-api/internal/platform/temporal/activities/orders"
)

// RunOrderPersistenceSequence executes the ordered set of activities needed to
// persist an order aggregate and settle its customer counters.
func RunOrderPersistenceSequence(ctx workflow.Context, input orderports.PlaceOrderInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started", "customerName", input.CustomerName)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	purchaseOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var order orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), orderactivities.PersistOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order persistence sequence failed", "customerName", input.CustomerName, "error", err)
		return nil, err
	}
	logger.Info("order persistence sequence persisted", "orderId", order.ID)

	// Settle customer counters with a separate retry policy.
	if order.CustomerID != "" {
		purchase := orderactivities.PurchaseRecord{OrderID: order.ID, CustomerID: order.CustomerID, Total: order.Total}
		if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, purchaseOptions), orderactivities.RecordCustomerPurchaseActivityName, purchase).Get(ctx, nil); err != nil {
			logger.Error("order persistence sequence purchase record failed", "orderId", order.ID, "error", err)
			return &order, err
		}
		logger.Info("order persistence sequence recorded purchase", "orderId", order.ID)
	}
	return &order, nil
}
