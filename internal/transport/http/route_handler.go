package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/service"
	"github.com/qaztour/qaztour-api/internal/util"
)

type RouteHandler struct {
	routes *service.RouteService
}

func RegisterRoutes(e *echo.Echo, auth *service.AuthService, routes *service.RouteService) {
	handler := &RouteHandler{routes: routes}

	public := e.Group("/api/routes")
	public.GET("/", handler.list)
	public.GET("/:id/", handler.get)

	admin := e.Group("/api/routes", RequireAuth(auth), RequireAdmin())
	admin.POST("/", handler.create)
	admin.PUT("/:id/", handler.update)
	admin.PATCH("/:id/", handler.update)
	admin.DELETE("/:id/", handler.remove)
}

func (h *RouteHandler) list(c echo.Context) error {
	limit, offset := parsePagination(c, 50, 0)
	routes, err := h.routes.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list routes"))
	}
	if routes == nil {
		routes = []domain.Route{}
	}
	return c.JSON(http.StatusOK, routes)
}

func (h *RouteHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid route id"))
	}
	route, err := h.routes.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRouteNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("route not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load route"))
	}
	return c.JSON(http.StatusOK, route)
}

type routeRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days"`
	BudgetRange  string `json:"budget_range"`
	Difficulty   string `json:"difficulty"`
	DistanceKM   int    `json:"distance_km"`
	Image        string `json:"image"`
	Stops        []struct {
		DayNumber     int    `json:"day_number"`
		Title         string `json:"title"`
		Description   string `json:"description"`
		Image         string `json:"image"`
		DurationLabel string `json:"duration_label"`
	} `json:"stops"`
}

func (r routeRequest) toInput() service.RouteInput {
	input := service.RouteInput{
		Title:        r.Title,
		Description:  r.Description,
		DurationDays: r.DurationDays,
		BudgetRange:  r.BudgetRange,
		Difficulty:   r.Difficulty,
		DistanceKM:   r.DistanceKM,
		Image:        r.Image,
	}
	for _, stop := range r.Stops {
		input.Stops = append(input.Stops, service.RouteStopInput{
			DayNumber:     stop.DayNumber,
			Title:         stop.Title,
			Description:   stop.Description,
			Image:         stop.Image,
			DurationLabel: stop.DurationLabel,
		})
	}
	return input
}

func (h *RouteHandler) create(c echo.Context) error {
	var req routeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	route, err := h.routes.Create(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrRouteValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create route"))
	}
	return c.JSON(http.StatusCreated, route)
}

func (h *RouteHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid route id"))
	}
	var req routeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	route, err := h.routes.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRouteNotFound):
			return c.JSON(http.StatusNotFound, util.Error("route not found"))
		case errors.Is(err, service.ErrRouteValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update route"))
		}
	}
	return c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid route id"))
	}
	if err := h.routes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrRouteNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("route not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete route"))
	}
	return c.NoContent(http.StatusNoContent)
}
