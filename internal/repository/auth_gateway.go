package repository

import (
	"context"

	"app/internal/domain/model"
)

// 外部Authサービスが返す認証結果。
// CustomerIDはCUSTOMERロールのときだけ入る。
type AuthResult struct {
	Token      string     `json:"token"`
	Role       model.Role `json:"role"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	UserID     int64      `json:"userId"`
	CustomerID int64      `json:"customerId"`
}

// 会員登録の入力。
type SignupInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// 外部Authサービス（ブラックボックス）。
type AuthGateway interface {
	Login(ctx context.Context, email string, password string) (AuthResult, error)
	Signup(ctx context.Context, in SignupInput) (AuthResult, error)
}
