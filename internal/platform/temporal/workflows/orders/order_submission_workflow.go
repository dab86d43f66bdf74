package orders

import (
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/florenda/florenda-api/internal/domains/orders/domain"
	orderports "github.com/florenda/florenda-api/internal/domains/orders/ports"
	"github.com/florenda/florenda-api/internal/platform/temporal/sequences"
)

const (
	// OrderSubmissionWorkflowName is the public identifier for registering the workflow.
	OrderSubmissionWorkflowName = "orders.workflows.Submission"
	// OrderSubmissionTaskQueue is the queue consumed by the worker processing order workflows.
	OrderSubmissionTaskQueue = "ORDER_SUBMISSION"
)

// OrderSubmissionWorkflowInput captures the payload required to submit an order.
type OrderSubmissionWorkflowInput struct {
	Command orderports.PlaceOrderInput
	TraceID string
}

// OrderSubmissionWorkflow orchestrates the activities needed to persist an
// order aggregate and record the purchase against the customer.
func OrderSubmissionWorkflow(ctx workflow.Context, input OrderSubmissionWorkflowInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderSubmissionWorkflow started", withTraceID(input.TraceID, "customerName", input.Command.CustomerName)...)
	order, err := sequences.RunOrderPersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderSubmissionWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	if order != nil {
		logger.Info("OrderSubmissionWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	} else {
		logger.Info("OrderSubmissionWorkflow completed", withTraceID(input.TraceID)...)
	}
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
