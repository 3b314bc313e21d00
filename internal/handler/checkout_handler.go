package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"app/internal/middleware"
	"app/internal/usecase"
)

// /checkout のHTTP。3段階の購入フロー。
type CheckoutHandler struct {
	store *usecase.Store
}

// DI
func NewCheckoutHandler(store *usecase.Store) *CheckoutHandler {
	return &CheckoutHandler{store: store}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/checkout")
	g.Use(middleware.SessionGuard(h.store))

	g.POST("/start", h.start)
	g.GET("", h.view)
	g.POST("/delivery", h.delivery)
	g.POST("/next", h.next)
	g.POST("/back", h.back)
	g.POST("/place-order", h.placeOrder)
}

func (h *CheckoutHandler) start(c echo.Context) error {
	out, err := h.store.StartCheckout(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) view(c echo.Context) error {
	out, err := h.store.Checkout()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) delivery(c echo.Context) error {
	var req usecase.DeliveryInfoInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.store.SetDeliveryInfo(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) next(c echo.Context) error {
	out, err := h.store.NextStage()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) back(c echo.Context) error {
	out, err := h.store.BackStage()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	out, err := h.store.PlaceOrder(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
