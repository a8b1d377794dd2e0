package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

func (h *Handler) ListReservations(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	list, err := h.svc.ListReservations(c.Request().Context(), who)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) GetReservation(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	who, err := caller(c)
	if err != nil {
		return err
	}
	rsv, err := h.svc.GetReservation(c.Request().Context(), id, who)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rsv)
}

// Availability answers whether a venue is free on a date and slot. The
// optional reserva_id excludes that reservation from the check.
func (h *Handler) Availability(c echo.Context) error {
	var (
		rawDate                   string
		venueID, slotID, excluded int
	)
	if err := echo.QueryParamsBinder(c).
		MustString("fecha_reserva", &rawDate).
		MustInt("salon_id", &venueID).
		MustInt("turno_id", &slotID).
		Int("reserva_id", &excluded).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := model.ParseDate(rawDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ok, err := h.svc.IsAvailable(c.Request().Context(), date, venueID, slotID, excluded)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, model.Availability{
		Date:      date,
		VenueID:   venueID,
		SlotID:    slotID,
		Available: ok,
	})
}

func (h *Handler) Quote(c echo.Context) error {
	var req model.QuoteRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	q, err := h.svc.ComputeTotal(c.Request().Context(), req.VenueID, req.Services)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *Handler) CreateReservation(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	var req model.CreateReservationRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	req.UserID = who.UserID

	resp, err := h.svc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateReservation(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.UpdateReservationRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.svc.UpdateReservation(c.Request().Context(), id, req); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteReservation(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	deleted, err := h.svc.DeleteReservation(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "reserva not found")
	}
	return c.NoContent(http.StatusNoContent)
}
