package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"app/internal/config"
	"app/internal/handler"
)

// Handlers はルート登録に必要なハンドラ一式。
type Handlers struct {
	Session  *handler.SessionHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Catalog  *handler.CatalogHandler
	Order    *handler.OrderHandler
}

// New はecho本体を組み立てる（起動はしない。テストからも使う）。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	//フロント（SPA）からのアクセスだけ許す
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FEURL},
			AllowMethods:     []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(e, h)
	return e
}

// Start は組み立てて待ち受ける。
func Start(addr string, cfg config.Config, h Handlers) error {
	return New(cfg, h).Start(addr)
}
