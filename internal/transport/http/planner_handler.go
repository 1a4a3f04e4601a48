package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/service"
	"github.com/qaztour/qaztour-api/internal/util"
)

func RegisterPlanner(e *echo.Echo, planner *service.PlannerService) {
	e.POST("/api/ai/ask/", func(c echo.Context) error {
		var req struct {
			Message string `json:"message"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}

		answer, err := planner.Ask(c.Request().Context(), req.Message)
		if err != nil {
			if errors.Is(err, service.ErrPlannerValidation) {
				return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
			}
			return c.JSON(http.StatusInternalServerError, util.Error("unable to answer"))
		}
		return c.JSON(http.StatusOK, answer)
	})
}
