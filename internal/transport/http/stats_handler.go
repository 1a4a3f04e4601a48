package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/service"
	"github.com/qaztour/qaztour-api/internal/util"
)

func RegisterStats(e *echo.Echo, auth *service.AuthService, stats *service.StatsService) {
	group := e.Group("/api/admin", RequireAuth(auth), RequireAdmin())
	group.GET("/stats/", func(c echo.Context) error {
		dashboard, err := stats.Dashboard(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load stats"))
		}
		return c.JSON(http.StatusOK, dashboard)
	})
}
