package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/shop-backoffice/internal/platform/temporal/activities/orders"
)

// placementActivityOptions retries transient storage failures only.
func placementActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{orderactivities.ErrTypeInvalidOrder, orderactivities.ErrTypeIdempotencyConflict},
		},
	}
}

// RunOrderPlacementSequence executes the activities needed to store a placed order.
func RunOrderPlacementSequence(ctx workflow.Context, input orderports.PlaceOrderInput) (*orderdomain.OrderDetails, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "ownerId", input.OwnerID, "items", len(input.Items))

	var details orderdomain.OrderDetails
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placementActivityOptions()), orderactivities.PlaceOrderActivityName, input).Get(ctx, &details)
	if err != nil {
		logger.Error("order placement sequence failed", "ownerId", input.OwnerID, "error", err)
		return nil, err
	}
	if details.Order != nil {
		logger.Info("order placement sequence persisted", "orderId", details.Order.ID)
	}
	return &details, nil
}
