package service

import (
	"context"
	"testing"
	"time"

	"github.com/palmbay/resort/api/internal/model"
	"github.com/palmbay/resort/api/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

func newSnackService(repo SnackRepository) *SnackService {
	return NewSnackService(SnackServiceConfig{Repo: repo})
}

func snackItemReq(code, price string) *model.CreateSnackItemRequest {
	return &model.CreateSnackItemRequest{
		Code:     code,
		Name:     "Club Sandwich",
		Category: model.SnackCategoryMeals,
		Price:    price,
	}
}

func orderReq(itemID string, qty int) *model.CreateOrderRequest {
	return &model.CreateOrderRequest{
		GuestID: guestCarol,
		Lines:   []model.OrderLineRequest{{ItemID: itemID, Quantity: qty}},
	}
}

func todayKey() string {
	return time.Now().UTC().Format("2006-01-02")
}

func TestCreateItem_RejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	_, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "9.50"))
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, snackItemReq("SANDWICH", "8.00"))
	require.True(t, model.IsCode(err, model.CodeDuplicateCode), "got %v", err)
}

func TestCreateOrder_CapturesUnitPrices(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	item, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "9.50"))
	require.NoError(t, err)

	order, err := svc.CreateOrder(ctx, orderReq(item.ID, 3))
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.Lines, 1)
	require.Equal(t, "9.50", order.Lines[0].UnitPrice.StringFixed(2))
	require.Equal(t, "28.50", order.Total.StringFixed(2))

	// Raising the catalog price later leaves the placed order untouched.
	newPrice := "12.00"
	_, err = svc.UpdateItem(ctx, item.ID, &model.UpdateSnackItemRequest{Price: &newPrice})
	require.NoError(t, err)

	order, err = svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, "9.50", order.Lines[0].UnitPrice.StringFixed(2))
	require.Equal(t, "28.50", order.Total.StringFixed(2))
}

func TestCreateOrder_RejectsInactiveItem(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	item, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "9.50"))
	require.NoError(t, err)
	_, err = svc.DeactivateItem(ctx, item.ID)
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, orderReq(item.ID, 1))
	require.True(t, model.IsCode(err, "INVALID_ITEM"), "got %v", err)
}

func TestDeactivateItem_RejectsRepeat(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	item, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "9.50"))
	require.NoError(t, err)

	_, err = svc.DeactivateItem(ctx, item.ID)
	require.NoError(t, err)
	_, err = svc.DeactivateItem(ctx, item.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)

	item, err = svc.ReactivateItem(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, model.SnackItemStatusActive, item.Status)
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	item, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "9.50"))
	require.NoError(t, err)
	order, err := svc.CreateOrder(ctx, orderReq(item.ID, 1))
	require.NoError(t, err)

	order, err = svc.StartPreparing(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPreparing, order.Status)

	order, err = svc.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusDelivered, order.Status)

	// Delivered orders cannot be cancelled.
	_, err = svc.CancelOrder(ctx, order.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestCancelOrder_BeforeDelivery(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	item, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "9.50"))
	require.NoError(t, err)

	// Cancellable while pending.
	pending, err := svc.CreateOrder(ctx, orderReq(item.ID, 1))
	require.NoError(t, err)
	cancelled, err := svc.CancelOrder(ctx, pending.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	// And while in the kitchen.
	preparing, err := svc.CreateOrder(ctx, orderReq(item.ID, 1))
	require.NoError(t, err)
	_, err = svc.StartPreparing(ctx, preparing.ID)
	require.NoError(t, err)
	cancelled, err = svc.CancelOrder(ctx, preparing.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCancelled, cancelled.Status)
}

func TestMarkDelivered_RequiresPreparing(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	item, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "9.50"))
	require.NoError(t, err)
	order, err := svc.CreateOrder(ctx, orderReq(item.ID, 1))
	require.NoError(t, err)

	_, err = svc.MarkDelivered(ctx, order.ID)
	require.True(t, model.IsCode(err, model.CodeInvalidStatus), "got %v", err)
}

func TestGetOrderStats_CountsDeliveredRevenueOnly(t *testing.T) {
	ctx := context.Background()
	svc := newSnackService(memory.NewSnackStore())

	item, err := svc.CreateItem(ctx, snackItemReq("SANDWICH", "10.00"))
	require.NoError(t, err)

	deliver := func(qty int) {
		order, err := svc.CreateOrder(ctx, orderReq(item.ID, qty))
		require.NoError(t, err)
		_, err = svc.StartPreparing(ctx, order.ID)
		require.NoError(t, err)
		_, err = svc.MarkDelivered(ctx, order.ID)
		require.NoError(t, err)
	}
	deliver(1) // 10.00
	deliver(2) // 20.00

	skipped, err := svc.CreateOrder(ctx, orderReq(item.ID, 5))
	require.NoError(t, err)
	_, err = svc.CancelOrder(ctx, skipped.ID)
	require.NoError(t, err)

	stats, err := svc.GetOrderStats(ctx, todayKey(), todayKey())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalOrders)
	require.Equal(t, "30.00", stats.DeliveredRevenue)
	require.Equal(t, "15.00", stats.AverageOrderValue)
	require.Equal(t, 2, stats.ByStatus[model.OrderStatusDelivered])
	require.Equal(t, 1, stats.ByStatus[model.OrderStatusCancelled])
}

func TestGetOrderStats_EmptyWindow(t *testing.T) {
	svc := newSnackService(memory.NewSnackStore())

	stats, err := svc.GetOrderStats(context.Background(), "2025-01-01", "2025-01-07")
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalOrders)
	require.Equal(t, "0.00", stats.DeliveredRevenue)
	require.Equal(t, "0.00", stats.AverageOrderValue)
}
