package usecase

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AddToCartInput struct {
	Saree    model.Saree
	Quantity int64
	ReturnTo string // ログイン後に戻す画面（現在地）
}

type AddToCartOutput struct {
	// trueならカートは触っていない。商品はPendingCartItemに退避済みで、
	// 呼び出し側はログイン画面へ誘導する。
	LoginRequired bool         `json:"login_required"`
	Cart          CartSnapshot `json:"cart"`
}

// AddToCart はカート追加。未ログインなら追加せずに保留して合図だけ返す。
func (s *Store) AddToCart(ctx context.Context, in AddToCartInput) (AddToCartOutput, error) {
	if in.Saree.ID <= 0 {
		return AddToCartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid saree")
	}
	if in.Quantity < 1 {
		return AddToCartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	//未ログインは保留（deferred commit）
	if !s.authenticatedLocked(ctx) {
		s.pending = &model.PendingCartItem{Saree: in.Saree, Quantity: in.Quantity}

		returnTo := in.ReturnTo
		if returnTo == "" {
			returnTo = "/"
		}
		if raw, err := json.Marshal(returnTo); err == nil {
			_ = s.state.Put(ctx, repo.StateKeyRedirectAfter, raw)
		}

		return AddToCartOutput{LoginRequired: true, Cart: s.snapshotLocked()}, nil
	}

	if err := s.mergeLineLocked(ctx, in.Saree, in.Quantity); err != nil {
		return AddToCartOutput{}, err
	}

	return AddToCartOutput{Cart: s.snapshotLocked()}, nil
}

// 同一商品は数量加算、新規は末尾に追加。追加後に必ず永続化する。
func (s *Store) mergeLineLocked(ctx context.Context, saree model.Saree, qty int64) error {
	for i := range s.cart {
		if s.cart[i].SareeID == saree.ID {
			newQty := s.cart[i].Quantity + qty
			if newQty > s.cart[i].StockQuantity {
				return NewHTTPError(http.StatusBadRequest, "stock exceeded")
			}
			s.cart[i].Quantity = newQty
			//カートが変わったので前回の送信キーは使い回さない
			s.dropIdempotencyKeyLocked()
			return s.persistCartLocked(ctx)
		}
	}

	if qty > saree.StockQuantity {
		return NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	s.cart = append(s.cart, model.NewCartLine(saree, qty))
	s.dropIdempotencyKeyLocked()
	return s.persistCartLocked(ctx)
}

// UpdateQuantity は数量変更。0は削除と同じ。知らないIDは黙って無視する。
// 在庫上限は追加時点のスナップショットで見る（再取得はしない）。
func (s *Store) UpdateQuantity(ctx context.Context, sareeID int64, quantity int64) (CartSnapshot, error) {
	if quantity < 0 {
		return CartSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	if quantity == 0 {
		return s.RemoveFromCart(ctx, sareeID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].SareeID != sareeID {
			continue
		}
		if quantity > s.cart[i].StockQuantity {
			return CartSnapshot{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
		}
		s.cart[i].Quantity = quantity
		s.dropIdempotencyKeyLocked()
		if err := s.persistCartLocked(ctx); err != nil {
			return CartSnapshot{}, err
		}
		return s.snapshotLocked(), nil
	}

	// no-op
	return s.snapshotLocked(), nil
}

// RemoveFromCart は明細削除。無ければno-op。
func (s *Store) RemoveFromCart(ctx context.Context, sareeID int64) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cart[:0]
	removed := false
	for _, line := range s.cart {
		if line.SareeID == sareeID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	s.cart = kept

	if removed {
		s.dropIdempotencyKeyLocked()
		if err := s.persistCartLocked(ctx); err != nil {
			return CartSnapshot{}, err
		}
	}
	return s.snapshotLocked(), nil
}

// ClearCart は全明細を消して空の状態を永続化する。
func (s *Store) ClearCart(ctx context.Context) (CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearCartLocked(ctx); err != nil {
		return CartSnapshot{}, err
	}
	return s.snapshotLocked(), nil
}

func (s *Store) clearCartLocked(ctx context.Context) error {
	s.cart = nil
	s.dropIdempotencyKeyLocked()
	return s.persistCartLocked(ctx)
}

// Cart は現在のスナップショットを返す（読み取り専用）。
func (s *Store) Cart() CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func totalItemCount(cart []model.CartLine) int64 {
	var n int64
	for _, line := range cart {
		n += line.Quantity
	}
	return n
}

func subtotal(cart []model.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range cart {
		sum = sum.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return sum
}
