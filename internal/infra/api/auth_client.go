package api

import (
	"context"
	"net/http"

	repo "app/internal/repository"
)

// 外部Authサービスのクライアント。
type AuthClient struct {
	c *Client
}

// DI
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /auth/login
func (a *AuthClient) Login(ctx context.Context, email string, password string) (repo.AuthResult, error) {
	var out repo.AuthResult
	err := a.c.doJSON(ctx, http.MethodPost, "/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &out, nil)
	if err != nil {
		return repo.AuthResult{}, err
	}
	return out, nil
}

// POST /auth/signup
func (a *AuthClient) Signup(ctx context.Context, in repo.SignupInput) (repo.AuthResult, error) {
	var out repo.AuthResult
	err := a.c.doJSON(ctx, http.MethodPost, "/auth/signup", "", in, &out, nil)
	if err != nil {
		return repo.AuthResult{}, err
	}
	return out, nil
}
