package api

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/domain/model"
)

// カタログAPI（公開・認証不要）のクライアント。
type CatalogClient struct {
	c *Client
}

// DI
func NewCatalogClient(c *Client) *CatalogClient {
	return &CatalogClient{c: c}
}

// GET /sarees
func (g *CatalogClient) ListSarees(ctx context.Context) ([]model.Saree, error) {
	var out []model.Saree
	if err := g.c.doJSON(ctx, http.MethodGet, "/sarees", "", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// GET /sarees/{id}
func (g *CatalogClient) FindSaree(ctx context.Context, id int64) (model.Saree, error) {
	var out model.Saree
	path := fmt.Sprintf("/sarees/%d", id)
	if err := g.c.doJSON(ctx, http.MethodGet, path, "", nil, &out, nil); err != nil {
		return model.Saree{}, err
	}
	return out, nil
}
