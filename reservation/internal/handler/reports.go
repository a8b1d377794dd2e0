package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ReportPDF(c echo.Context) error {
	doc, err := h.svc.ReportPDF(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return attachment(c, "application/pdf", "pdf", doc)
}

func (h *Handler) ReportCSV(c echo.Context) error {
	doc, err := h.svc.ReportCSV(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return attachment(c, "text/csv; charset=utf-8", "csv", doc)
}

func attachment(c echo.Context, contentType, ext string, body []byte) error {
	name := fmt.Sprintf("reporte-reservas-%s.%s", time.Now().Format("20060102"), ext)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, contentType, body)
}
