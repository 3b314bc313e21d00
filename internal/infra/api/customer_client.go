package api

import (
	"context"
	"net/http"

	"app/internal/domain/model"
)

// 顧客プロフィールAPIのクライアント。
type CustomerClient struct {
	c *Client
}

// DI
func NewCustomerClient(c *Client) *CustomerClient {
	return &CustomerClient{c: c}
}

// GET /customers/me
func (g *CustomerClient) FetchProfile(ctx context.Context, token string) (model.Customer, error) {
	var out model.Customer
	if err := g.c.doJSON(ctx, http.MethodGet, "/customers/me", token, nil, &out, nil); err != nil {
		return model.Customer{}, err
	}
	return out, nil
}
