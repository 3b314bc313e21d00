package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// ID生成（注文のIdempotency-Keyに使う）
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

// Store はカート・セッション・チェックアウトを一手に持つコントローラ。
// アプリシェルが1つだけ生成し、各ビューはここを通してだけ状態を触る。
// 読み出しは常にコピーを返す（ビュー側に生の参照を渡さない）。
type Store struct {
	mu sync.Mutex

	state     repo.StateStore
	auth      repo.AuthGateway
	customers repo.CustomerGateway
	orders    repo.OrderGateway

	role  model.Role // このシェルが受け付けるロール
	idGen IDGenerator
	clock Clock

	cart     []model.CartLine
	session  *model.Session
	pending  *model.PendingCartItem
	checkout *checkoutState
}

// NewStore は永続化済みのカートとセッションを読み戻して初期化する。
// 期限切れのセッションはここで捨てる。
func NewStore(
	state repo.StateStore,
	auth repo.AuthGateway,
	customers repo.CustomerGateway,
	orders repo.OrderGateway,
	role model.Role,
	idGen IDGenerator,
	clock Clock,
) (*Store, error) {
	s := &Store{
		state:     state,
		auth:      auth,
		customers: customers,
		orders:    orders,
		role:      role,
		idGen:     idGen,
		clock:     clock,
	}

	ctx := context.Background()

	//カートを読み戻す
	if raw, ok, err := state.Get(ctx, repo.StateKeyCart); err != nil {
		return nil, err
	} else if ok {
		var cart []model.CartLine
		if err := json.Unmarshal(raw, &cart); err == nil {
			s.cart = cart
		}
	}

	//セッションを読み戻す（期限切れは破棄）
	if raw, ok, err := state.Get(ctx, repo.StateKeySession); err != nil {
		return nil, err
	} else if ok {
		var sess model.Session
		if err := json.Unmarshal(raw, &sess); err == nil && !sess.Expired(clock.Now()) && sess.Role == role {
			s.session = &sess
		} else {
			_ = state.Delete(ctx, repo.StateKeySession)
		}
	}

	return s, nil
}

// カートのスナップショット。導出値は毎回計算する（キャッシュしない）。
type CartSnapshot struct {
	Items          []model.CartLine `json:"items"`
	TotalItemCount int64            `json:"total_item_count"`
	Subtotal       string           `json:"subtotal"`
}

// 呼び出し側はロック保持済みであること。
func (s *Store) snapshotLocked() CartSnapshot {
	items := make([]model.CartLine, len(s.cart))
	copy(items, s.cart)

	return CartSnapshot{
		Items:          items,
		TotalItemCount: totalItemCount(s.cart),
		Subtotal:       subtotal(s.cart).String(),
	}
}

// カートを永続化する。ミューテーションと同じステップ内で必ず呼ぶ。
func (s *Store) persistCartLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.cart)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := s.state.Put(ctx, repo.StateKeyCart, raw); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}

func (s *Store) persistSessionLocked(ctx context.Context) error {
	if s.session == nil {
		if err := s.state.Delete(ctx, repo.StateKeySession); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "storage error")
		}
		return nil
	}

	raw, err := json.Marshal(s.session)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := s.state.Put(ctx, repo.StateKeySession, raw); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	return nil
}

// 認証済みかどうか。期限切れならその場でセッションを捨てる。
func (s *Store) authenticatedLocked(ctx context.Context) bool {
	if s.session == nil {
		return false
	}
	if s.session.Expired(s.clock.Now()) {
		s.session = nil
		_ = s.state.Delete(ctx, repo.StateKeySession)
		return false
	}
	return true
}

// トークンのexpクレームを取り出す。署名はリモートAuthサービスのものなので
// ここでは検証しない（検証はサーバー側の仕事。クライアントは期限だけ見る）。
func tokenExpiry(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, jwt.ErrTokenInvalidClaims
	}
	return exp.Time, nil
}
