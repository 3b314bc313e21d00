package model

// GET /customers/me が返す顧客プロフィール。
// チェックアウトの配送先解決に使う。
type Customer struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}
