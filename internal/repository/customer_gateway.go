package repository

import (
	"context"

	"app/internal/domain/model"
)

// 顧客プロフィールAPI（GET /customers/me）。要Bearerトークン。
type CustomerGateway interface {
	FetchProfile(ctx context.Context, token string) (model.Customer, error)
}
