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

var testCustomer = model.Customer{
	ID:          10,
	Name:        "Saree Fan",
	PhoneNumber: "9876543210",
	Email:       "saree@example.com",
	Address:     "12 Temple Road, Mysore",
}

// ログイン済み・カート入り・チェックアウト開始済みの状態を作る。
func startedCheckout(t *testing.T) *storeEnv {
	t.Helper()

	env := newTestStore(t)
	env.loginAs(t, 10)
	ctx := context.Background()

	_, err := env.store.AddToCart(ctx, AddToCartInput{Saree: saree(1, "Red Silk", 1200, 5), Quantity: 2})
	require.NoError(t, err)

	env.customers.On("FetchProfile", mock.Anything, mock.Anything).Return(testCustomer, nil).Once()

	view, err := env.store.StartCheckout(ctx)
	require.NoError(t, err)
	require.Equal(t, "delivery_info", view.Stage)

	return env
}

// 段3（レビュー）まで進めておく。
func atReview(t *testing.T, env *storeEnv) {
	t.Helper()

	_, err := env.store.NextStage() // 1 -> 2
	require.NoError(t, err)
	view, err := env.store.NextStage() // 2 -> 3
	require.NoError(t, err)
	require.Equal(t, "review", view.Stage)
}

func TestStartCheckout_RequiresNonEmptyCart(t *testing.T) {
	env := newTestStore(t)
	env.loginAs(t, 10)

	_, err := env.store.StartCheckout(context.Background())
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestStartCheckout_DeadTokenClearsSession(t *testing.T) {
	env := newTestStore(t)
	env.loginAs(t, 10)
	ctx := context.Background()

	_, err := env.store.AddToCart(ctx, AddToCartInput{Saree: saree(1, "Red Silk", 1200, 5), Quantity: 1})
	require.NoError(t, err)

	env.customers.On("FetchProfile", mock.Anything, mock.Anything).
		Return(model.Customer{}, repo.ErrUnauthorized).Once()

	_, err = env.store.StartCheckout(ctx)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 401, he.Status)
	assert.False(t, env.store.Authenticated(ctx))
}

func TestNextStage_BlocksOnWhitespaceOnlyNewAddress(t *testing.T) {
	env := startedCheckout(t)

	_, err := env.store.SetDeliveryInfo(DeliveryInfoInput{
		UseNewAddress: true,
		NewAddress:    "   \t ",
	})
	require.NoError(t, err)

	_, err = env.store.NextStage()
	require.Error(t, err)

	//段1のまま
	view, err := env.store.Checkout()
	require.NoError(t, err)
	assert.Equal(t, "delivery_info", view.Stage)
}

func TestNextStage_ProfileAddressPasses(t *testing.T) {
	env := startedCheckout(t)

	view, err := env.store.NextStage()
	require.NoError(t, err)
	assert.Equal(t, "order_process", view.Stage)

	//段2は案内だけ。ゲートなしで段3へ
	view, err = env.store.NextStage()
	require.NoError(t, err)
	assert.Equal(t, "review", view.Stage)

	//段3より先は無い
	_, err = env.store.NextStage()
	require.Error(t, err)
}

func TestBackStage_WalksBackAndStopsAtFirst(t *testing.T) {
	env := startedCheckout(t)
	atReview(t, env)

	view, err := env.store.BackStage()
	require.NoError(t, err)
	assert.Equal(t, "order_process", view.Stage)

	view, err = env.store.BackStage()
	require.NoError(t, err)
	assert.Equal(t, "delivery_info", view.Stage)

	//段1より前には行かない
	view, err = env.store.BackStage()
	require.NoError(t, err)
	assert.Equal(t, "delivery_info", view.Stage)
}

func TestPlaceOrder_OnlyAtReviewStage(t *testing.T) {
	env := startedCheckout(t)

	_, err := env.store.PlaceOrder(context.Background())
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestPlaceOrder_SendsItemsAndResolvedAddress(t *testing.T) {
	env := startedCheckout(t)
	atReview(t, env)
	ctx := context.Background()

	var sent model.PlaceOrderRequest
	env.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, "key-1").
		Run(func(args mock.Arguments) {
			sent = args.Get(2).(model.PlaceOrderRequest)
		}).
		Return(model.PlacedOrder{ID: 555}, nil).Once()

	out, err := env.store.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(555), out.Order.ID)

	//価格は送らない。customerId・数量・プロフィール住所だけ
	assert.Equal(t, int64(10), sent.CustomerID)
	require.Len(t, sent.Items, 1)
	assert.Equal(t, model.OrderItemRequest{SareeID: 1, Quantity: 2}, sent.Items[0])
	assert.Equal(t, testCustomer.Address, sent.ShippingAddress)

	//成功でカートは空、チェックアウトは閉じる
	assert.Empty(t, env.store.Cart().Items)
	_, err = env.store.Checkout()
	require.Error(t, err)
}

func TestPlaceOrder_FailureKeepsCartAndStage(t *testing.T) {
	env := startedCheckout(t)
	atReview(t, env)
	ctx := context.Background()

	env.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(model.PlacedOrder{}, errors.New("boom")).Once()

	before := env.store.Cart()

	_, err := env.store.PlaceOrder(ctx)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, 502, he.Status)

	//カートはそのまま、段もレビューのまま（手動リトライできる）
	assert.Equal(t, before, env.store.Cart())
	view, err := env.store.Checkout()
	require.NoError(t, err)
	assert.Equal(t, "review", view.Stage)
}

func TestPlaceOrder_RetryReusesIdempotencyKey(t *testing.T) {
	env := startedCheckout(t)
	atReview(t, env)
	ctx := context.Background()

	env.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, "key-1").
		Return(model.PlacedOrder{}, errors.New("boom")).Once()

	_, err := env.store.PlaceOrder(ctx)
	require.Error(t, err)

	//同じ送信試行のリトライは同じキー
	env.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, "key-1").
		Return(model.PlacedOrder{ID: 556}, nil).Once()

	out, err := env.store.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(556), out.Order.ID)
}

func TestPlaceOrder_CartChangeMintsNewIdempotencyKey(t *testing.T) {
	env := startedCheckout(t)
	atReview(t, env)
	ctx := context.Background()

	env.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, "key-1").
		Return(model.PlacedOrder{}, errors.New("boom")).Once()

	_, err := env.store.PlaceOrder(ctx)
	require.Error(t, err)

	//カートが変わったら別の注文内容なので新しいキー
	_, err = env.store.UpdateQuantity(ctx, 1, 3)
	require.NoError(t, err)

	env.orders.On("PlaceOrder", mock.Anything, mock.Anything, mock.Anything, "key-2").
		Return(model.PlacedOrder{ID: 557}, nil).Once()

	_, err = env.store.PlaceOrder(ctx)
	require.NoError(t, err)
}

func TestLogout_DiscardsCheckoutInProgress(t *testing.T) {
	env := startedCheckout(t)
	atReview(t, env)
	ctx := context.Background()

	require.NoError(t, env.store.Logout(ctx))

	_, err := env.store.Checkout()
	require.Error(t, err)
	assert.Empty(t, env.store.Cart().Items)
}
