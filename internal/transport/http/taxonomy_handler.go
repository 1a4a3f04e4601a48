package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/repository/ports"
	"github.com/qaztour/qaztour-api/internal/util"
)

// RegisterTaxonomy exposes the region and category lookups the SPA filter
// bar is built from. Read-only; rows appear as admins create attractions.
func RegisterTaxonomy(e *echo.Echo, regions ports.RegionRepository, categories ports.CategoryRepository) {
	e.GET("/api/regions/", func(c echo.Context) error {
		items, err := regions.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, util.Error("unable to list regions"))
		}
		if items == nil {
			items = []domain.Region{}
		}
		return c.JSON(http.StatusOK, items)
	})

	e.GET("/api/categories/", func(c echo.Context) error {
		items, err := categories.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, util.Error("unable to list categories"))
		}
		if items == nil {
			items = []domain.Category{}
		}
		return c.JSON(http.StatusOK, items)
	})
}
