package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	repo "app/internal/repository"
	"app/internal/usecase"
)

// /session のHTTP。ログイン・サインアップ・ログアウト・状態確認。
type SessionHandler struct {
	store *usecase.Store
}

// DI
func NewSessionHandler(store *usecase.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/session", h.current)
	e.POST("/session/login", h.login)
	e.POST("/session/signup", h.signup)
	e.DELETE("/session", h.logout)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

func (h *SessionHandler) current(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Session(c.Request().Context()))
}

func (h *SessionHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.store.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SessionHandler) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.store.Signup(c.Request().Context(), repo.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SessionHandler) logout(c echo.Context) error {
	if err := h.store.Logout(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}
