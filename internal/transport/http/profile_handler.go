package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/qaztour/qaztour-api/internal/media"
	"github.com/qaztour/qaztour-api/internal/service"
	"github.com/qaztour/qaztour-api/internal/util"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func RegisterProfiles(e *echo.Echo, auth *service.AuthService, profiles *service.ProfileService) {
	handler := &ProfileHandler{profiles: profiles}

	group := e.Group("/api/profiles", RequireAuth(auth))
	group.GET("/me/", handler.me)
	group.PATCH("/me/", handler.update)
}

func (h *ProfileHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	view, err := h.profiles.Me(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load profile"))
	}
	return c.JSON(http.StatusOK, view)
}

// update accepts either a JSON body with bio/country or a multipart form
// that may also carry an avatar file.
func (h *ProfileHandler) update(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var update service.ProfileUpdate

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(strings.ToLower(contentType), "multipart/form-data") {
		if bio := c.FormValue("bio"); bio != "" || formHasField(c, "bio") {
			update.Bio = &bio
		}
		if country := c.FormValue("country"); country != "" || formHasField(c, "country") {
			update.Country = &country
		}
		if fileHeader, err := c.FormFile("avatar"); err == nil {
			src, err := fileHeader.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, util.Error("unable to read upload"))
			}
			defer src.Close()
			update.Avatar = &media.Upload{
				Reader:      src,
				Size:        fileHeader.Size,
				FileName:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
			}
		}
	} else {
		var req struct {
			Bio     *string `json:"bio"`
			Country *string `json:"country"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}
		update.Bio = req.Bio
		update.Country = req.Country
	}

	view, err := h.profiles.Update(c.Request().Context(), user, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAvatarTooLarge):
			return c.JSON(http.StatusRequestEntityTooLarge, util.Error("avatar exceeds size limit"))
		case errors.Is(err, service.ErrAvatarInvalid):
			return c.JSON(http.StatusBadRequest, util.Error("avatar is not a valid image"))
		case errors.Is(err, service.ErrProfileValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to update profile"))
		}
	}
	return c.JSON(http.StatusOK, view)
}

func formHasField(c echo.Context, name string) bool {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return false
	}
	_, ok := form.Value[name]
	return ok
}
