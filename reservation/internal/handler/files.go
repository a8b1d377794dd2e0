package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Astemirdum/venue-reservation/pkg/upload"
)

// Upload stores the multipart field "file" and returns where it is served.
func (h *Handler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file field is required")
	}
	f, err := h.uploads.Save(fh)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, upload.ErrUnsupportedType), errors.Is(err, upload.ErrEmpty):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, f)
}
