package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type LoginInput struct {
	Email    string
	Password string
}

type AuthOutput struct {
	Name       string     `json:"name"`
	Role       model.Role `json:"role"`
	Email      string     `json:"email"`
	CustomerID int64      `json:"customer_id"`

	// ログイン前に記録していた画面。1回使ったら消える。
	RedirectTo string `json:"redirect_to"`

	// 保留していた商品をコミットしたときの1回限りの通知。
	Notice string `json:"notice,omitempty"`
}

// Login は外部Authサービスで認証してセッションを確立する。
// ロールが合わない応答はセッションを作らずに拒否する。
func (s *Store) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	if in.Email == "" || in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	result, err := s.auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		return AuthOutput{}, mapAuthError(err)
	}

	return s.completeAuthentication(ctx, result)
}

// Signup は会員登録。成功したらそのままログイン扱いになる。
func (s *Store) Signup(ctx context.Context, in repo.SignupInput) (AuthOutput, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	result, err := s.auth.Signup(ctx, in)
	if err != nil {
		return AuthOutput{}, mapAuthError(err)
	}

	return s.completeAuthentication(ctx, result)
}

// completeAuthentication はログイン/サインアップ成功後の共通処理。
//  1. ロール検査（合わなければ破棄）
//  2. セッション確立＋永続化
//  3. 保留商品のコミット
//  4. 記録済みリダイレクト先の回収（1回限り）
func (s *Store) completeAuthentication(ctx context.Context, result repo.AuthResult) (AuthOutput, error) {
	if result.Role != s.role {
		if s.role == model.RoleCustomer {
			return AuthOutput{}, NewHTTPError(http.StatusForbidden, "admin accounts cannot shop here")
		}
		return AuthOutput{}, NewHTTPError(http.StatusForbidden, "customer accounts cannot access the admin panel")
	}

	expiresAt, err := tokenExpiry(result.Token)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid session token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &model.Session{
		Token:      result.Token,
		Role:       result.Role,
		Name:       result.Name,
		Email:      result.Email,
		UserID:     result.UserID,
		CustomerID: result.CustomerID,
		ExpiresAt:  expiresAt,
	}
	if err := s.persistSessionLocked(ctx); err != nil {
		return AuthOutput{}, err
	}

	out := AuthOutput{
		Name:       result.Name,
		Role:       result.Role,
		Email:      result.Email,
		CustomerID: result.CustomerID,
		RedirectTo: s.consumeRedirectLocked(ctx),
	}

	//保留していた商品をここでコミットする
	if s.pending != nil {
		pending := *s.pending
		s.pending = nil
		if err := s.mergeLineLocked(ctx, pending.Saree, pending.Quantity); err == nil {
			out.Notice = fmt.Sprintf("%s has been added to your cart", pending.Saree.Title)
		}
	}

	return out, nil
}

// 記録済みのリダイレクト先を読み、読んだら消す。無ければ "/"。
func (s *Store) consumeRedirectLocked(ctx context.Context) string {
	raw, ok, err := s.state.Get(ctx, repo.StateKeyRedirectAfter)
	if err != nil || !ok {
		return "/"
	}
	_ = s.state.Delete(ctx, repo.StateKeyRedirectAfter)

	var target string
	if err := json.Unmarshal(raw, &target); err != nil || target == "" {
		return "/"
	}
	return target
}

// Logout はセッション・カート・保留商品・進行中チェックアウトを全部捨てる。
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.pending = nil
	s.checkout = nil

	if err := s.persistSessionLocked(ctx); err != nil {
		return err
	}
	_ = s.state.Delete(ctx, repo.StateKeyRedirectAfter)

	return s.clearCartLocked(ctx)
}

// セッションの読み取り専用ビュー。
type SessionInfo struct {
	Authenticated bool       `json:"authenticated"`
	Role          model.Role `json:"role,omitempty"`
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email,omitempty"`
}

func (s *Store) Session(ctx context.Context) SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticatedLocked(ctx) {
		return SessionInfo{}
	}
	return SessionInfo{
		Authenticated: true,
		Role:          s.session.Role,
		Name:          s.session.Name,
		Email:         s.session.Email,
	}
}

// Authenticated は有効なセッションを持っているかどうか。
func (s *Store) Authenticated(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticatedLocked(ctx)
}

// 保留中の商品があれば返す（テスト・画面表示用）。
func (s *Store) PendingItem() (model.PendingCartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return model.PendingCartItem{}, false
	}
	return *s.pending, true
}

// トークンを取り出す。無効なら空文字。
func (s *Store) tokenLocked(ctx context.Context) string {
	if !s.authenticatedLocked(ctx) {
		return ""
	}
	return s.session.Token
}

// リモートAPIのクライアントが返すステータス付きエラー。
// infraの具象型に依存しないため、ここではインタフェースだけ見る。
type statusError interface {
	error
	StatusCode() int
}

// Authサービスの失敗をユーザー向けのHTTPErrorへ畳む。
func mapAuthError(err error) error {
	if errors.Is(err, repo.ErrUnauthorized) {
		return NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	var se statusError
	if errors.As(err, &se) {
		return NewHTTPError(se.StatusCode(), se.Error())
	}
	return NewHTTPError(http.StatusBadGateway, "authentication service unavailable")
}
