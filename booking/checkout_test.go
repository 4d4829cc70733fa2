package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TIrth999999/Cinemas/model"
)

func TestServiceCharge(t *testing.T) {
	assert.Equal(t, 24.0, ServiceCharge(400, 6))
	assert.Equal(t, 424.0, FinalTotal(400, 6))
	assert.Equal(t, 0.0, ServiceCharge(0, 6))
	// Rounded to the nearest rupee: 6% of 250 is 15, of 255 is 15.3 -> 15.
	assert.Equal(t, 15.0, ServiceCharge(255, 6))
}

type fakeOrdersAPI struct {
	verify    model.VerifyResult
	verifyErr error
	orders    []model.Order
	ordersErr error
}

func (f *fakeOrdersAPI) VerifyPayment(ctx context.Context, sessionID string) (model.VerifyResult, error) {
	return f.verify, f.verifyErr
}

func (f *fakeOrdersAPI) GetOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders, f.ordersErr
}

func TestResolveOrderVerified(t *testing.T) {
	api := &fakeOrdersAPI{verify: model.VerifyResult{OrderId: "order-1"}}

	orderID, verified, err := ResolveOrder(context.Background(), api, "cs_123", time.Now())
	require.NoError(t, err)
	assert.True(t, verified)
	assert.Equal(t, "order-1", orderID)
}

func TestResolveOrderFallsBackToRecentOrder(t *testing.T) {
	now := time.Now()
	api := &fakeOrdersAPI{
		verifyErr: errors.New("verify down"),
		orders: []model.Order{
			{Id: "old", CreatedAt: now.Add(-2 * time.Hour)},
			{Id: "fresh", CreatedAt: now.Add(-1 * time.Minute)},
		},
	}

	orderID, verified, err := ResolveOrder(context.Background(), api, "cs_123", now)
	require.NoError(t, err)
	assert.False(t, verified)
	assert.Equal(t, "fresh", orderID)
}

func TestResolveOrderWithoutSessionID(t *testing.T) {
	now := time.Now()
	api := &fakeOrdersAPI{
		orders: []model.Order{{Id: "fresh", CreatedAt: now.Add(-30 * time.Second)}},
	}

	orderID, verified, err := ResolveOrder(context.Background(), api, "", now)
	require.NoError(t, err)
	assert.False(t, verified)
	assert.Equal(t, "fresh", orderID)
}

func TestResolveOrderStaleOrdersUnresolved(t *testing.T) {
	now := time.Now()
	api := &fakeOrdersAPI{
		orders: []model.Order{{Id: "old", CreatedAt: now.Add(-10 * time.Minute)}},
	}

	_, _, err := ResolveOrder(context.Background(), api, "", now)
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolveOrderNoOrders(t *testing.T) {
	api := &fakeOrdersAPI{}
	_, _, err := ResolveOrder(context.Background(), api, "", time.Now())
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestResolveOrderPropagatesListError(t *testing.T) {
	api := &fakeOrdersAPI{ordersErr: errors.New("boom")}
	_, _, err := ResolveOrder(context.Background(), api, "", time.Now())
	assert.EqualError(t, err, "boom")
}

func TestFindOrder(t *testing.T) {
	orders := []model.Order{{Id: "a"}, {Id: "b"}}

	order, ok := FindOrder(orders, "b")
	require.True(t, ok)
	assert.Equal(t, "b", order.Id)

	_, ok = FindOrder(orders, "c")
	assert.False(t, ok)
}

func TestCompletedOrders(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		{Id: "pending", Status: model.OrderStatusPending, CreatedAt: now},
		{Id: "older", Status: model.OrderStatusCompleted, CreatedAt: now.Add(-2 * time.Hour)},
		{Id: "newer", Status: model.OrderStatusCompleted, CreatedAt: now.Add(-1 * time.Hour)},
		{Id: "cancelled", Status: model.OrderStatusCancelled, CreatedAt: now.Add(-3 * time.Hour)},
	}

	got := CompletedOrders(orders)
	require.Len(t, got, 3)
	assert.Equal(t, "newer", got[0].Id)
	assert.Equal(t, "older", got[1].Id)
	assert.Equal(t, "cancelled", got[2].Id)
}
