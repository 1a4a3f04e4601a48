package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/service"
	"github.com/qaztour/qaztour-api/internal/util"
)

type AttractionHandler struct {
	attractions *service.AttractionService
}

func RegisterAttractions(e *echo.Echo, auth *service.AuthService, attractions *service.AttractionService) {
	handler := &AttractionHandler{attractions: attractions}

	public := e.Group("/api/attractions", OptionalAuth(auth))
	public.GET("/", handler.list)
	public.GET("/:id/", handler.get)

	member := e.Group("/api/attractions", RequireAuth(auth))
	member.POST("/:id/toggle_favorite/", handler.toggleFavorite)

	admin := e.Group("/api/attractions", RequireAuth(auth), RequireAdmin())
	admin.POST("/", handler.create)
	admin.PUT("/:id/", handler.update)
	admin.PATCH("/:id/", handler.update)
	admin.DELETE("/:id/", handler.remove)
}

func (h *AttractionHandler) list(c echo.Context) error {
	filter, err := parseAttractionFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	user, _ := CurrentUser(c)
	isStaff := user != nil && user.IsStaff

	attractions, err := h.attractions.List(c.Request().Context(), filter, isStaff)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list attractions"))
	}
	if attractions == nil {
		attractions = []domain.Attraction{}
	}
	return c.JSON(http.StatusOK, attractions)
}

func (h *AttractionHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid attraction id"))
	}

	user, _ := CurrentUser(c)
	isStaff := user != nil && user.IsStaff

	attraction, err := h.attractions.Get(c.Request().Context(), id, isStaff)
	if err != nil {
		if errors.Is(err, service.ErrAttractionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load attraction"))
	}
	return c.JSON(http.StatusOK, attraction)
}

func (h *AttractionHandler) toggleFavorite(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid attraction id"))
	}

	status, err := h.attractions.ToggleFavorite(c.Request().Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrAttractionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to update favorites"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"status": status})
}

type attractionRequest struct {
	Name        string   `json:"name"`
	Region      string   `json:"region"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Status      string   `json:"status"`
	EntranceFee string   `json:"entrance_fee"`
	BestTime    string   `json:"best_time"`
}

func (r attractionRequest) toInput() service.AttractionInput {
	return service.AttractionInput{
		Name:        r.Name,
		Region:      r.Region,
		Category:    r.Category,
		Description: r.Description,
		Image:       r.Image,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Status:      domain.AttractionStatus(strings.ToLower(strings.TrimSpace(r.Status))),
		EntranceFee: r.EntranceFee,
		BestTime:    r.BestTime,
	}
}

func (h *AttractionHandler) create(c echo.Context) error {
	var req attractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	attraction, err := h.attractions.Create(c.Request().Context(), req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrAttractionValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create attraction"))
	}
	return c.JSON(http.StatusCreated, attraction)
}

func (h *AttractionHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid attraction id"))
	}
	var req attractionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	attraction, err := h.attractions.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttractionNotFound):
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		case errors.Is(err, service.ErrAttractionValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update attraction"))
		}
	}
	return c.JSON(http.StatusOK, attraction)
}

func (h *AttractionHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid attraction id"))
	}
	if err := h.attractions.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrAttractionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("attraction not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to delete attraction"))
	}
	return c.NoContent(http.StatusNoContent)
}

func parseAttractionFilter(c echo.Context) (domain.AttractionListFilter, error) {
	filter := domain.AttractionListFilter{
		Region:   strings.TrimSpace(c.QueryParam("region")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Sort:     domain.AttractionSortNewest,
	}

	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status := domain.AttractionStatus(strings.ToLower(raw))
		if !status.Valid() {
			return domain.AttractionListFilter{}, errors.New("invalid status filter")
		}
		filter.Status = &status
	}

	if raw := strings.TrimSpace(c.QueryParam("ordering")); raw != "" {
		switch domain.AttractionSort(raw) {
		case domain.AttractionSortName, domain.AttractionSortNameDesc,
			domain.AttractionSortVisitors, domain.AttractionSortVisitorsDesc,
			domain.AttractionSortNewest:
			filter.Sort = domain.AttractionSort(raw)
		default:
			return domain.AttractionListFilter{}, errors.New("invalid ordering value")
		}
	}

	filter.Limit, filter.Offset = parsePagination(c, 50, 0)
	return filter, nil
}

func parsePagination(c echo.Context, defaultLimit, defaultOffset int) (int, int) {
	limit := defaultLimit
	offset := defaultOffset
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := strings.TrimSpace(c.QueryParam("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
