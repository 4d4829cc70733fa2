package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/TIrth999999/Cinemas/model"
)

// CreateOrder reserves the given seats and returns the payment redirect.
// The call is issued exactly once; a request id is attached so the server
// can spot accidental resubmissions.
func (c *Client) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.CreateOrderResponse, error) {
	if req.ShowtimeId == "" {
		return model.CreateOrderResponse{}, errors.New("showtime id is required")
	}
	if len(req.SeatData.Seats) == 0 {
		return model.CreateOrderResponse{}, errors.New("at least one seat is required")
	}
	endpoint := c.baseURL + "/orders"
	headers := map[string]string{"X-Request-ID": uuid.NewString()}

	var res model.CreateOrderResponse
	if err := c.postJSON(ctx, endpoint, req, &res, headers); err != nil {
		return model.CreateOrderResponse{}, err
	}
	return res, nil
}

// GetOrders lists the caller's orders, newest and oldest alike.
func (c *Client) GetOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.getJSON(ctx, c.baseURL+"/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// VerifyPayment resolves a checkout session id to the order it paid for.
func (c *Client) VerifyPayment(ctx context.Context, sessionID string) (model.VerifyResult, error) {
	if sessionID == "" {
		return model.VerifyResult{}, errors.New("session id is required")
	}
	endpoint := fmt.Sprintf("%s/payments/verify?session_id=%s", c.baseURL, url.QueryEscape(sessionID))

	var res model.VerifyResult
	if err := c.getJSON(ctx, endpoint, &res); err != nil {
		return model.VerifyResult{}, err
	}
	return res, nil
}
