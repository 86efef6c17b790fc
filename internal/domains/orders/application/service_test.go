package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/memory"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

const owner int64 = 1

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(opts ...Option) (*Service, *testClock) {
	clock := &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewService(memory.NewRepository(), opts...), clock
}

func sampleInput(email string, total float64) ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		OwnerID: owner,
		Order: domain.Order{
			CustomerName:    "Sarah Johnson",
			CustomerEmail:   email,
			ShippingAddress: "123 Main St, Anytown",
			Total:           total,
		},
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "Premium Headphones", Price: total, Quantity: 1, Total: total},
		},
	}
}

func TestPlaceOrder_StoresOrderWithItems(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, sampleInput("sarah@example.com", 159.99))
	require.NoError(t, err)
	assert.Equal(t, int64(1), placed.Order.ID)
	assert.Equal(t, owner, placed.Order.OwnerID)
	assert.Equal(t, clock.now, placed.Order.CreatedAt)
	assert.Equal(t, domain.StatusPending, placed.Order.Status)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, placed.Order.ID, placed.Items[0].OrderID)

	fetched, err := svc.GetOrder(ctx, placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, placed, fetched)
}

func TestPlaceOrder_InvalidItemStoresNothing(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	input := sampleInput("sarah@example.com", 10)
	input.Items = append(input.Items, domain.OrderItem{ProductID: 2, ProductName: "Shoes", Price: 5, Quantity: 0, Total: 0})

	_, err := svc.PlaceOrder(ctx, input)
	require.ErrorIs(t, err, ErrInvalidInput)
	fields, ok := validation.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "items[1].quantity")

	orders, err := svc.ListOrders(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_IdempotencyKeyReplaysAndConflicts(t *testing.T) {
	svc, _ := newTestService(WithIdempotencyStore(memory.NewIdempotencyStore()))
	ctx := context.Background()

	input := sampleInput("sarah@example.com", 159.99)
	input.IdempotencyKey = "checkout-42"

	first, err := svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	again, err := svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.Order.ID, again.Order.ID)

	orders, err := svc.ListOrders(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	changed := sampleInput("sarah@example.com", 10)
	changed.IdempotencyKey = "checkout-42"
	_, err = svc.PlaceOrder(ctx, changed)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestUpdateOrder_StatusLabelsAreIndependent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	placed, err := svc.PlaceOrder(ctx, sampleInput("sarah@example.com", 20))
	require.NoError(t, err)

	cancelled, released := domain.StatusCancelled, domain.EscrowReleased
	updated, err := svc.UpdateOrder(ctx, placed.Order.ID, domain.OrderPatch{Status: &cancelled, EscrowStatus: &released})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, domain.EscrowReleased, updated.EscrowStatus)
	assert.Equal(t, domain.PaymentPending, updated.PaymentStatus)
	assert.Equal(t, placed.Order.CreatedAt, updated.CreatedAt)

	bogus := domain.Status("lost")
	_, err = svc.UpdateOrder(ctx, placed.Order.ID, domain.OrderPatch{Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateOrder(ctx, 99, domain.OrderPatch{Status: &cancelled})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestAddOrderItem_RequiresExistingOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddOrderItem(ctx, 7, domain.OrderItem{ProductID: 1, ProductName: "Watch", Price: 1, Quantity: 1, Total: 1})
	require.ErrorIs(t, err, ports.ErrNotFound)

	placed, err := svc.PlaceOrder(ctx, sampleInput("sarah@example.com", 20))
	require.NoError(t, err)
	item, err := svc.AddOrderItem(ctx, placed.Order.ID, domain.OrderItem{ProductID: 2, ProductName: "Watch", Price: 249, Quantity: 1, Total: 249})
	require.NoError(t, err)
	assert.Equal(t, placed.Order.ID, item.OrderID)

	items, err := svc.ListOrderItems(ctx, placed.Order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	order, err := svc.GetOrder(ctx, placed.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.Order.Total, "total is never recomputed from items")
}

func TestRecentOrders_NewestFirstWithLimit(t *testing.T) {
	svc, clock := newTestService()
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.PlaceOrder(ctx, sampleInput(email, 10))
		require.NoError(t, err)
		clock.Advance(time.Hour)
	}

	recent, err := svc.RecentOrders(ctx, owner, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c@example.com", recent[0].Order.CustomerEmail)
	assert.Equal(t, "b@example.com", recent[1].Order.CustomerEmail)
	assert.Len(t, recent[0].Items, 1)

	all, err := svc.RecentOrders(ctx, owner, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateReturn_AcceptsItemsFromOtherOrders(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	placed, err := svc.PlaceOrder(ctx, sampleInput("sarah@example.com", 20))
	require.NoError(t, err)

	refund := 999.0
	created, err := svc.CreateReturn(ctx, domain.Return{
		OrderID:        placed.Order.ID,
		Reason:         "Item not as described",
		RequestedItems: []int64{404, 405},
		RefundAmount:   &refund,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReturnPending, created.Return.Status)
	assert.Equal(t, []int64{404, 405}, created.Return.RequestedItems)
	assert.Equal(t, 999.0, *created.Return.RefundAmount)
	require.NotNil(t, created.Order)
	assert.Equal(t, placed.Order.ID, created.Order.ID)
}

func TestCreateReturn_MissingOrderIsValidationError(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateReturn(context.Background(), domain.Return{OrderID: 12, Reason: "Damaged"})
	require.ErrorIs(t, err, ErrInvalidInput)
	fields, ok := validation.Fields(err)
	require.True(t, ok)
	assert.Contains(t, fields, "orderId")
}

func TestUpdateReturn_AnyTransitionAllowed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	placed, err := svc.PlaceOrder(ctx, sampleInput("sarah@example.com", 20))
	require.NoError(t, err)
	created, err := svc.CreateReturn(ctx, domain.Return{OrderID: placed.Order.ID, Reason: "Too small"})
	require.NoError(t, err)

	for _, status := range []domain.ReturnStatus{domain.ReturnCompleted, domain.ReturnPending, domain.ReturnRejected, domain.ReturnApproved} {
		s := status
		updated, err := svc.UpdateReturn(ctx, created.Return.ID, domain.ReturnPatch{Status: &s})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.Equal(t, "Too small", updated.Reason)
	}

	_, err = svc.UpdateReturn(ctx, 77, domain.ReturnPatch{})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListReturns_ScopedToOwnerWithOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mine, err := svc.PlaceOrder(ctx, sampleInput("sarah@example.com", 20))
	require.NoError(t, err)
	other := sampleInput("other@example.com", 5)
	other.OwnerID = 2
	theirs, err := svc.PlaceOrder(ctx, other)
	require.NoError(t, err)

	_, err = svc.CreateReturn(ctx, domain.Return{OrderID: mine.Order.ID, Reason: "Mine"})
	require.NoError(t, err)
	_, err = svc.CreateReturn(ctx, domain.Return{OrderID: theirs.Order.ID, Reason: "Theirs"})
	require.NoError(t, err)

	returns, err := svc.ListReturns(ctx, owner)
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.Equal(t, "Mine", returns[0].Return.Reason)
	assert.Equal(t, mine.Order.ID, returns[0].Order.ID)

	details, err := svc.GetReturn(ctx, returns[0].Return.ID)
	require.NoError(t, err)
	assert.Equal(t, "sarah@example.com", details.Order.CustomerEmail)
}

func TestQuoteRefund_OnlyCountsItemsOfOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	input := sampleInput("james@example.com", 459.98)
	input.Items = []domain.OrderItem{
		{ProductID: 2, ProductName: "Smart Watch", Price: 299.99, Quantity: 1, Total: 299.99},
		{ProductID: 1, ProductName: "Premium Headphones", Price: 159.99, Quantity: 1, Total: 159.99},
	}
	placed, err := svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	otherOrder, err := svc.PlaceOrder(ctx, sampleInput("sarah@example.com", 20))
	require.NoError(t, err)

	quote, err := svc.QuoteRefund(ctx, placed.Order.ID, []int64{placed.Items[0].ID, otherOrder.Items[0].ID})
	require.NoError(t, err)
	assert.Equal(t, 299.99, quote)

	_, err = svc.QuoteRefund(ctx, 99, nil)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
