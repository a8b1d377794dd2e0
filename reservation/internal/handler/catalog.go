package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

func (h *Handler) ListVenues(c echo.Context) error {
	venues, err := h.svc.ListVenues(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, venues)
}

func (h *Handler) GetVenue(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	venue, err := h.svc.GetVenue(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, venue)
}

func (h *Handler) CreateVenue(c echo.Context) error {
	var req model.VenueRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	venue, err := h.svc.CreateVenue(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, venue)
}

func (h *Handler) UpdateVenue(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.VenueRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	venue, err := h.svc.UpdateVenue(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, venue)
}

func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteVenue(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListAddons(c echo.Context) error {
	addons, err := h.svc.ListAddons(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, addons)
}

func (h *Handler) GetAddon(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	addon, err := h.svc.GetAddon(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, addon)
}

func (h *Handler) CreateAddon(c echo.Context) error {
	var req model.AddonRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	addon, err := h.svc.CreateAddon(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, addon)
}

func (h *Handler) UpdateAddon(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.AddonRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	addon, err := h.svc.UpdateAddon(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, addon)
}

func (h *Handler) DeleteAddon(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAddon(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListSlots(c echo.Context) error {
	slots, err := h.svc.ListSlots(c.Request().Context())
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) GetSlot(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	slot, err := h.svc.GetSlot(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, slot)
}

func (h *Handler) CreateSlot(c echo.Context) error {
	var req model.SlotRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	slot, err := h.svc.CreateSlot(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, slot)
}

func (h *Handler) UpdateSlot(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req model.SlotRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	slot, err := h.svc.UpdateSlot(c.Request().Context(), id, req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, slot)
}

func (h *Handler) DeleteSlot(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteSlot(c.Request().Context(), id); err != nil {
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
