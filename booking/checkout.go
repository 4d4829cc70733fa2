package booking

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/TIrth999999/Cinemas/model"
)

// recentOrderWindow bounds the payment-reconciliation fallback: an order is
// only accepted as "probably this payment" when created inside this window.
const recentOrderWindow = 5 * time.Minute

// ServiceCharge returns the rounded booking fee for a seat subtotal.
func ServiceCharge(subtotal float64, percent int) float64 {
	return math.Round(subtotal * float64(percent) / 100)
}

// FinalTotal is the seat subtotal plus the service charge.
func FinalTotal(subtotal float64, percent int) float64 {
	return subtotal + ServiceCharge(subtotal, percent)
}

// OrdersAPI is the slice of the API client payment reconciliation needs.
type OrdersAPI interface {
	VerifyPayment(ctx context.Context, sessionID string) (model.VerifyResult, error)
	GetOrders(ctx context.Context) ([]model.Order, error)
}

// ErrUnresolved means neither verification nor the recent-order fallback
// produced an order; the user should check their tickets to confirm.
var ErrUnresolved = errors.New("payment could not be verified")

// ResolveOrder confirms a completed checkout. With a session id it asks the
// server to verify; when that fails (or no session id is known) it falls
// back to the caller's newest order, accepted only if created within the
// last five minutes. The fallback is best-effort reconciliation for an
// unreliable webhook race, not a guarantee; verified distinguishes the two
// outcomes.
func ResolveOrder(ctx context.Context, api OrdersAPI, sessionID string, now time.Time) (orderID string, verified bool, err error) {
	if sessionID != "" {
		if res, verr := api.VerifyPayment(ctx, sessionID); verr == nil && res.OrderId != "" {
			return res.OrderId, true, nil
		}
	}

	orders, err := api.GetOrders(ctx)
	if err != nil {
		return "", false, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > 0 && now.Sub(orders[0].CreatedAt) < recentOrderWindow {
		return orders[0].Id, false, nil
	}
	return "", false, ErrUnresolved
}

// FindOrder locates an order by id in a fetched list.
func FindOrder(orders []model.Order, orderID string) (model.Order, bool) {
	for _, order := range orders {
		if order.Id == orderID {
			return order, true
		}
	}
	return model.Order{}, false
}

// CompletedOrders filters out orders still awaiting payment, newest first.
func CompletedOrders(orders []model.Order) []model.Order {
	out := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status != model.OrderStatusPending {
			out = append(out, order)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
