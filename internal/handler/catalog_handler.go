package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"app/internal/usecase"
)

// /sarees の公開API。認証不要。
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/sarees", h.list)
	e.GET("/sarees/:id", h.detail)
}

func (h *CatalogHandler) list(c echo.Context) error {
	out, err := h.uc.ListSarees(c.Request().Context(), usecase.ListSareesInput{
		Search:     c.QueryParam("search"),
		Fabric:     c.QueryParam("fabric"),
		Color:      c.QueryParam("color"),
		PriceRange: c.QueryParam("price_range"),
		Sort:       c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetSareeDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
