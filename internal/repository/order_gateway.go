package repository

import (
	"context"

	"app/internal/domain/model"
)

// 外部の注文API。PlaceOrderは1呼び出し＝1リクエスト（自動リトライしない）。
// idempotencyKey は同一送信試行の再送を同じ注文に束ねるためのキー。
type OrderGateway interface {
	PlaceOrder(ctx context.Context, token string, req model.PlaceOrderRequest, idempotencyKey string) (model.PlacedOrder, error)
	ListMyOrders(ctx context.Context, token string) ([]model.OrderSummary, error)
}
