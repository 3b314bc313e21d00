package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// SessionGuard は有効なセッションが無ければ401で止める。
// ロール検査はセッション確立時に済んでいるので、ここでは有効性だけ見る。
func SessionGuard(store *usecase.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.Authenticated(c.Request().Context()) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			return next(c)
		}
	}
}
