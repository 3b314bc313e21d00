package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/middleware"
	"app/internal/usecase"
)

// /orders のHTTP。注文履歴の参照だけ（注文確定は /checkout 側）。
type OrderHandler struct {
	store *usecase.Store
}

// DI
func NewOrderHandler(store *usecase.Store) *OrderHandler {
	return &OrderHandler{store: store}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")
	g.Use(middleware.SessionGuard(h.store))
	g.GET("", h.list)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.store.MyOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
