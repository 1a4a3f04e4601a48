package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/service"
	"github.com/qaztour/qaztour-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}
	group := e.Group("/api/auth")
	group.POST("/register/", handler.register)
	group.POST("/token/", handler.token)
	group.POST("/token/refresh/", handler.refresh)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	user, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			return c.JSON(http.StatusConflict, util.Error("username already taken"))
		case errors.Is(err, service.ErrRegisterValidation):
			return c.JSON(http.StatusBadRequest, util.Error("username and a password of at least 8 characters are required"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to register"))
		}
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *AuthHandler) token(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	pair, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error("invalid username or password"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sign in"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	access, err := h.auth.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, util.Error("invalid or expired refresh token"))
	}

	return c.JSON(http.StatusOK, util.Envelope{"access": access})
}
