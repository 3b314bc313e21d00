package server

import "github.com/labstack/echo/v4"

func RegisterRoutes(e *echo.Echo, h Handlers) {
	h.Session.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
}
