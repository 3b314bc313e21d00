package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// MyOrders は自分の注文履歴を取る。
func (s *Store) MyOrders(ctx context.Context) ([]model.OrderSummary, error) {
	s.mu.Lock()
	token := s.tokenLocked(ctx)
	s.mu.Unlock()

	if token == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := s.orders.ListMyOrders(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrUnauthorized) {
			s.mu.Lock()
			s.session = nil
			_ = s.state.Delete(ctx, repo.StateKeySession)
			s.mu.Unlock()
			return nil, NewHTTPError(http.StatusUnauthorized, "session expired, please login again")
		}
		return nil, NewHTTPError(http.StatusBadGateway, "could not load orders")
	}
	return orders, nil
}
