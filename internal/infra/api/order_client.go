package api

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
)

// 注文APIのクライアント。
type OrderClient struct {
	c *Client
}

// DI
func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

// place-order のレスポンスエンベロープ。
// HTTPが200でも success=false なら注文は作られていない。
type placeOrderResponse struct {
	Success bool              `json:"success"`
	Order   model.PlacedOrder `json:"order"`
	Message string            `json:"message"`
}

// POST /orders/place-order
func (g *OrderClient) PlaceOrder(ctx context.Context, token string, req model.PlaceOrderRequest, idempotencyKey string) (model.PlacedOrder, error) {
	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}

	var out placeOrderResponse
	err := g.c.doJSON(ctx, http.MethodPost, "/orders/place-order", token, req, &out, header)
	if err != nil {
		return model.PlacedOrder{}, err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "order creation failed"
		}
		return model.PlacedOrder{}, errors.New(msg)
	}
	return out.Order, nil
}

// GET /orders/my-orders
func (g *OrderClient) ListMyOrders(ctx context.Context, token string) ([]model.OrderSummary, error) {
	var out []model.OrderSummary
	if err := g.c.doJSON(ctx, http.MethodGet, "/orders/my-orders", token, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
