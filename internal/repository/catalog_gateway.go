package repository

import (
	"context"

	"app/internal/domain/model"
)

// 商品カタログAPI（GET /sarees）。
type CatalogGateway interface {
	ListSarees(ctx context.Context) ([]model.Saree, error)
	FindSaree(ctx context.Context, id int64) (model.Saree, error)
}
