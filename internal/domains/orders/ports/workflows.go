package ports

import (
	"context"

	"github.com/florenda/florenda-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator submits placed orders, either durably through a
// workflow engine or inline. The HTTP layer goes through this port so order
// placement survives process restarts when Temporal is available.
type WorkflowOrchestrator interface {
	SubmitOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
