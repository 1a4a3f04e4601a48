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

type BookingHandler struct {
	bookings *service.BookingService
}

func RegisterBookings(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService) {
	handler := &BookingHandler{bookings: bookings}

	group := e.Group("/api/bookings", RequireAuth(auth))
	group.GET("/", handler.list)
	group.POST("/", handler.create)
	group.POST("/:id/pay/", handler.pay)
}

func (h *BookingHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	bookings, err := h.bookings.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list bookings"))
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Route       string `json:"route"`
		Date        string `json:"date"`
		PeopleCount int    `json:"people_count"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	routeID, err := uuid.Parse(strings.TrimSpace(req.Route))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("route must be a valid UUID"))
	}

	booking, err := h.bookings.Create(c.Request().Context(), user.ID, routeID, req.Date, req.PeopleCount)
	if err != nil {
		if errors.Is(err, service.ErrBookingValidation) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to create booking"))
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) pay(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}

	booking, err := h.bookings.Pay(c.Request().Context(), user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return c.JSON(http.StatusNotFound, util.Error("booking not found"))
		case errors.Is(err, service.ErrBookingNotPayable):
			return c.JSON(http.StatusConflict, util.Error("booking cannot be paid"))
		case errors.Is(err, service.ErrPaymentFailed):
			return c.JSON(http.StatusBadGateway, util.Error("payment failed, please try again"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to process payment"))
		}
	}
	return c.JSON(http.StatusOK, booking)
}
