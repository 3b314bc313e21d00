package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

func TestMyOrders_ReturnsHistory(t *testing.T) {
	env := newTestStore(t)
	env.loginAs(t, 10)

	env.orders.On("ListMyOrders", mock.Anything, mock.Anything).
		Return([]model.OrderSummary{{ID: 1, Status: "DELIVERED"}}, nil).Once()

	orders, err := env.store.MyOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "DELIVERED", orders[0].Status)
}

func TestMyOrders_RequiresSession(t *testing.T) {
	env := newTestStore(t)

	_, err := env.store.MyOrders(context.Background())
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 401, he.Status)
}

func TestMyOrders_DeadTokenClearsSession(t *testing.T) {
	env := newTestStore(t)
	env.loginAs(t, 10)
	ctx := context.Background()

	env.orders.On("ListMyOrders", mock.Anything, mock.Anything).
		Return(nil, repo.ErrUnauthorized).Once()

	_, err := env.store.MyOrders(ctx)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 401, he.Status)
	assert.False(t, env.store.Authenticated(ctx))
}

func TestMyOrders_GatewayErrorBecomesBadGateway(t *testing.T) {
	env := newTestStore(t)
	env.loginAs(t, 10)

	env.orders.On("ListMyOrders", mock.Anything, mock.Anything).
		Return(nil, errors.New("boom")).Once()

	_, err := env.store.MyOrders(context.Background())
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 502, he.Status)
}
