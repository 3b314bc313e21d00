package model

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// 認証済みセッション。tokenは外部Authサービスが発行したJWT。
// roleが合わないセッションはアプリ側で受け付けない（顧客用と管理用は別ドメイン）。
type Session struct {
	Token      string    `json:"token"`
	Role       Role      `json:"role"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	UserID     int64     `json:"user_id"`
	CustomerID int64     `json:"customer_id"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// 期限切れかどうか。ゼロ値のExpiresAtは期限不明なので有効扱いにしない。
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(s.ExpiresAt)
}
