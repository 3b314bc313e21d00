package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// チェックアウトの3段階。前へは常に戻れる。先へは検証を通らないと進めない。
type CheckoutStage int

const (
	StageDeliveryInfo CheckoutStage = iota + 1
	StageOrderProcess               // 案内だけの段。ゲートなし
	StageReview
)

func (st CheckoutStage) String() string {
	switch st {
	case StageDeliveryInfo:
		return "delivery_info"
	case StageOrderProcess:
		return "order_process"
	case StageReview:
		return "review"
	default:
		return "unknown"
	}
}

type checkoutState struct {
	stage         CheckoutStage
	customer      model.Customer
	useNewAddress bool
	newAddress    string
	notes         string

	// 同じ送信試行の再送を同じ注文に束ねるキー。
	// 最初の送信で発番し、失敗後の手動リトライでは使い回す。
	// 成功時とカートが変わったときに捨てる。
	idempotencyKey string
}

// チェックアウト画面向けのビュー。
type CheckoutView struct {
	Stage         string         `json:"stage"`
	Customer      model.Customer `json:"customer"`
	UseNewAddress bool           `json:"use_new_address"`
	NewAddress    string         `json:"new_address"`
	Notes         string         `json:"notes"`
	Cart          CartSnapshot   `json:"cart"`
	Shipping      string         `json:"shipping"` // 常に0（送料無料）
	Total         string         `json:"total"`
}

type DeliveryInfoInput struct {
	UseNewAddress bool   `json:"use_new_address"`
	NewAddress    string `json:"new_address"`
	Notes         string `json:"notes"`
}

type PlaceOrderOutput struct {
	Order model.PlacedOrder `json:"order"`
}

// StartCheckout はチェックアウトを開始する。
// 認証済み・カート非空が前提。プロフィールはここで取りに行く。
func (s *Store) StartCheckout(ctx context.Context) (CheckoutView, error) {
	s.mu.Lock()
	token := s.tokenLocked(ctx)
	empty := len(s.cart) == 0
	s.mu.Unlock()

	if token == "" {
		return CheckoutView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if empty {
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	customer, err := s.customers.FetchProfile(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrUnauthorized) {
			//トークンが死んでいたらセッションごと捨てる
			s.mu.Lock()
			s.session = nil
			_ = s.state.Delete(ctx, repo.StateKeySession)
			s.mu.Unlock()
			return CheckoutView{}, NewHTTPError(http.StatusUnauthorized, "session expired, please login again")
		}
		return CheckoutView{}, NewHTTPError(http.StatusBadGateway, "could not load your profile")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkout = &checkoutState{
		stage:    StageDeliveryInfo,
		customer: customer,
	}
	return s.checkoutViewLocked(), nil
}

// Checkout は進行中のチェックアウトのビューを返す。
func (s *Store) Checkout() (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "checkout not started")
	}
	return s.checkoutViewLocked(), nil
}

// SetDeliveryInfo は配送先の選択内容を更新する。検証は段階遷移時に行う。
func (s *Store) SetDeliveryInfo(in DeliveryInfoInput) (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "checkout not started")
	}

	s.checkout.useNewAddress = in.UseNewAddress
	s.checkout.newAddress = in.NewAddress
	s.checkout.notes = in.Notes
	return s.checkoutViewLocked(), nil
}

// NextStage は次の段へ。段1は配送情報の検証を通らないと進めない。
func (s *Store) NextStage() (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "checkout not started")
	}

	switch s.checkout.stage {
	case StageDeliveryInfo:
		if !s.checkout.validStage1() {
			return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "delivery information is incomplete")
		}
		s.checkout.stage = StageOrderProcess
	case StageOrderProcess:
		s.checkout.stage = StageReview
	case StageReview:
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "already at the last step")
	}

	return s.checkoutViewLocked(), nil
}

// BackStage は前の段へ。段1より前には行かない。
func (s *Store) BackStage() (CheckoutView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return CheckoutView{}, NewHTTPError(http.StatusBadRequest, "checkout not started")
	}
	if s.checkout.stage > StageDeliveryInfo {
		s.checkout.stage--
	}
	return s.checkoutViewLocked(), nil
}

// 段1の検証。名前・電話と、解決できる配送先があること。
func (c *checkoutState) validStage1() bool {
	if c.customer.Name == "" || c.customer.PhoneNumber == "" {
		return false
	}
	if c.useNewAddress {
		return strings.TrimSpace(c.newAddress) != ""
	}
	return c.customer.Address != ""
}

func (c *checkoutState) resolveAddress() string {
	if c.useNewAddress {
		return strings.TrimSpace(c.newAddress)
	}
	return c.customer.Address
}

// PlaceOrder は最終段での明示的な送信で、注文APIを1回だけ呼ぶ。
// 成功：カートを空にしてチェックアウト終了。失敗：何も変えずエラーを返す
// （ユーザーが同じ画面からリトライできる）。
func (s *Store) PlaceOrder(ctx context.Context) (PlaceOrderOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkout == nil {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "checkout not started")
	}
	if s.checkout.stage != StageReview {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "not at the review step")
	}

	token := s.tokenLocked(ctx)
	if token == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(s.cart) == 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}
	if !s.checkout.validStage1() {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery information is incomplete")
	}

	if s.checkout.idempotencyKey == "" {
		s.checkout.idempotencyKey = s.idGen.NewID()
	}

	items := make([]model.OrderItemRequest, 0, len(s.cart))
	for _, line := range s.cart {
		items = append(items, model.OrderItemRequest{
			SareeID:  line.SareeID,
			Quantity: line.Quantity,
		})
	}

	req := model.PlaceOrderRequest{
		CustomerID:      s.session.CustomerID,
		Items:           items,
		ShippingAddress: s.checkout.resolveAddress(),
		Notes:           s.checkout.notes,
	}

	order, err := s.orders.PlaceOrder(ctx, token, req, s.checkout.idempotencyKey)
	if err != nil {
		if errors.Is(err, repo.ErrUnauthorized) {
			s.session = nil
			s.checkout = nil
			_ = s.state.Delete(ctx, repo.StateKeySession)
			return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "session expired, please login again")
		}
		//カートも段もそのまま。キーも残すので、リトライは同じ注文に束ねられる
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadGateway, "failed to place order, please try again")
	}

	//成功。カートを空にしてチェックアウトを閉じる
	s.checkout = nil
	if err := s.clearCartLocked(ctx); err != nil {
		return PlaceOrderOutput{}, err
	}

	return PlaceOrderOutput{Order: order}, nil
}

// カートが変わったら送信キーは無効（別の注文内容になるため）。
func (s *Store) dropIdempotencyKeyLocked() {
	if s.checkout != nil {
		s.checkout.idempotencyKey = ""
	}
}

func (s *Store) checkoutViewLocked() CheckoutView {
	snap := s.snapshotLocked()
	return CheckoutView{
		Stage:         s.checkout.stage.String(),
		Customer:      s.checkout.customer,
		UseNewAddress: s.checkout.useNewAddress,
		NewAddress:    s.checkout.newAddress,
		Notes:         s.checkout.notes,
		Cart:          snap,
		Shipping:      "0",
		Total:         snap.Subtotal,
	}
}
