package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/domain"
	"github.com/qaztour/qaztour-api/internal/service"
	"github.com/qaztour/qaztour-api/internal/util"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

func RegisterReviews(e *echo.Echo, auth *service.AuthService, reviews *service.ReviewService) {
	handler := &ReviewHandler{reviews: reviews}

	public := e.Group("/api/reviews", OptionalAuth(auth))
	public.GET("/", handler.list)

	member := e.Group("/api/reviews", RequireAuth(auth))
	member.POST("/", handler.create)

	admin := e.Group("/api/reviews", RequireAuth(auth), RequireAdmin())
	admin.POST("/:id/moderate/", handler.moderate)
}

func (h *ReviewHandler) list(c echo.Context) error {
	filter := domain.ReviewListFilter{}
	filter.Limit, filter.Offset = parsePagination(c, 50, 0)

	if raw := strings.TrimSpace(c.QueryParam("attraction")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("attraction must be a valid UUID"))
		}
		filter.AttractionID = &id
	}
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status := domain.ReviewStatus(strings.ToLower(raw))
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, util.Error("invalid status filter"))
		}
		filter.Status = &status
	}

	var viewer *service.Viewer
	if user, ok := CurrentUser(c); ok && user != nil {
		viewer = &service.Viewer{UserID: user.ID, IsStaff: user.IsStaff}
	}

	reviews, err := h.reviews.List(c.Request().Context(), filter, viewer)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list reviews"))
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Attraction string `json:"attraction"`
		Rating     int    `json:"rating"`
		Text       string `json:"text"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	attractionID, err := uuid.Parse(strings.TrimSpace(req.Attraction))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("attraction must be a valid UUID"))
	}

	review, err := h.reviews.Create(c.Request().Context(), user.ID, attractionID, req.Rating, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrReviewValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create review"))
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) moderate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid review id"))
	}

	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	status := domain.ReviewStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	review, err := h.reviews.Moderate(c.Request().Context(), id, status, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			return c.JSON(http.StatusNotFound, util.Error("review not found"))
		case errors.Is(err, service.ErrReviewModeration):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to moderate review"))
		}
	}
	return c.JSON(http.StatusOK, review)
}
