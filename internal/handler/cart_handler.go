package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"app/internal/middleware"
	"app/internal/usecase"
)

// /cart のHTTP。
type CartHandler struct {
	store   *usecase.Store
	catalog *usecase.CatalogUsecase
}

// DI
func NewCartHandler(store *usecase.Store, catalog *usecase.CatalogUsecase) *CartHandler {
	return &CartHandler{store: store, catalog: catalog}
}

type addItemRequest struct {
	SareeID  int64  `json:"saree_id"`
	Quantity int64  `json:"quantity"`
	ReturnTo string `json:"return_to"`
}

type updateItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// 未ログイン追加は保留プロトコルの入口なので、POST /cart/items だけは
// ガードを通さない。それ以外の閲覧・編集は要ログイン。
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/cart/items", h.addItem)

	g := e.Group("/cart")
	g.Use(middleware.SessionGuard(h.store))
	g.GET("", h.getCart)
	g.PATCH("/items/:id", h.updateItem)
	g.DELETE("/items/:id", h.removeItem)
	g.DELETE("", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Cart())
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	//商品はサーバー側で引き直す（クライアントの価格は信用しない）
	saree, err := h.catalog.GetSareeDetail(c.Request().Context(), req.SareeID)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.store.AddToCart(c.Request().Context(), usecase.AddToCartInput{
		Saree:    saree,
		Quantity: req.Quantity,
		ReturnTo: req.ReturnTo,
	})
	if err != nil {
		return writeError(c, err)
	}

	if out.LoginRequired {
		//カートは触っていない。ログイン画面へ誘導する合図
		return c.JSON(http.StatusUnauthorized, out)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	sareeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.store.UpdateQuantity(c.Request().Context(), sareeID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	sareeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.store.RemoveFromCart(c.Request().Context(), sareeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	out, err := h.store.ClearCart(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
