package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

type VenueRepository interface {
	ListVenues(ctx context.Context) ([]model.Venue, error)
	GetVenue(ctx context.Context, id int) (model.Venue, error)
	CreateVenue(ctx context.Context, req model.VenueRequest) (int, error)
	UpdateVenue(ctx context.Context, id int, req model.VenueRequest) error
	DeleteVenue(ctx context.Context, id int) (bool, error)
}

type AddonRepository interface {
	ListAddons(ctx context.Context) ([]model.Addon, error)
	GetAddon(ctx context.Context, id int) (model.Addon, error)
	CreateAddon(ctx context.Context, req model.AddonRequest) (int, error)
	UpdateAddon(ctx context.Context, id int, req model.AddonRequest) error
	DeleteAddon(ctx context.Context, id int) (bool, error)
}

type SlotRepository interface {
	ListSlots(ctx context.Context) ([]model.Slot, error)
	GetSlot(ctx context.Context, id int) (model.Slot, error)
	CreateSlot(ctx context.Context, req model.SlotRequest) (int, error)
	UpdateSlot(ctx context.Context, id int, req model.SlotRequest) error
	DeleteSlot(ctx context.Context, id int) (bool, error)
}

var (
	venueColumns = []string{
		"salon_id", "titulo", "direccion", "latitud", "longitud",
		"capacidad", "importe", "activo", "creado", "modificado",
	}
	addonColumns = []string{
		"servicio_id", "descripcion", "importe", "activo", "creado", "modificado",
	}
	slotColumns = []string{
		"turno_id", "orden",
		"to_char(hora_desde, 'HH24:MI') as hora_desde",
		"to_char(hora_hasta, 'HH24:MI') as hora_hasta",
		"activo", "creado", "modificado",
	}
)

func (r *repository) ListVenues(ctx context.Context) ([]model.Venue, error) {
	items, err := selectAll[model.Venue](ctx, r.db, qb.Select(venueColumns...).
		From(venueTableName).
		Where(sq.Eq{"activo": true}).
		OrderBy("titulo"))
	return items, errors.Wrap(err, "list venues")
}

func (r *repository) GetVenue(ctx context.Context, id int) (model.Venue, error) {
	v, err := selectOne[model.Venue](ctx, r.db, qb.Select(venueColumns...).
		From(venueTableName).
		Where(sq.Eq{"salon_id": id, "activo": true}))
	if errors.Is(err, errs.ErrNotFound) {
		return model.Venue{}, errs.ErrVenueNotFound
	}
	return v, err
}

func (r *repository) CreateVenue(ctx context.Context, req model.VenueRequest) (int, error) {
	id, err := insertReturningID(ctx, r.db, qb.Insert(venueTableName).
		Columns("titulo", "direccion", "latitud", "longitud", "capacidad", "importe").
		Values(req.Title, req.Address, req.Latitude, req.Longitude, req.Capacity, req.Price),
		"salon_id")
	return id, errors.Wrap(err, "create venue")
}

func (r *repository) UpdateVenue(ctx context.Context, id int, req model.VenueRequest) error {
	ok, err := exec(ctx, r.db, qb.Update(venueTableName).
		SetMap(map[string]any{
			"titulo":     req.Title,
			"direccion":  req.Address,
			"latitud":    req.Latitude,
			"longitud":   req.Longitude,
			"capacidad":  req.Capacity,
			"importe":    req.Price,
			"modificado": sq.Expr("now()"),
		}).
		Where(sq.Eq{"salon_id": id, "activo": true}))
	if err != nil {
		return errors.Wrap(err, "update venue")
	}
	if !ok {
		return errs.ErrVenueNotFound
	}
	return nil
}

func (r *repository) DeleteVenue(ctx context.Context, id int) (bool, error) {
	return r.softDelete(ctx, venueTableName, "salon_id", id)
}

func (r *repository) ListAddons(ctx context.Context) ([]model.Addon, error) {
	items, err := selectAll[model.Addon](ctx, r.db, qb.Select(addonColumns...).
		From(addonTableName).
		Where(sq.Eq{"activo": true}).
		OrderBy("descripcion"))
	return items, errors.Wrap(err, "list services")
}

func (r *repository) GetAddon(ctx context.Context, id int) (model.Addon, error) {
	a, err := selectOne[model.Addon](ctx, r.db, qb.Select(addonColumns...).
		From(addonTableName).
		Where(sq.Eq{"servicio_id": id, "activo": true}))
	if errors.Is(err, errs.ErrNotFound) {
		return model.Addon{}, errs.ErrServiceNotFound
	}
	return a, err
}

func (r *repository) CreateAddon(ctx context.Context, req model.AddonRequest) (int, error) {
	id, err := insertReturningID(ctx, r.db, qb.Insert(addonTableName).
		Columns("descripcion", "importe").
		Values(req.Description, req.Price),
		"servicio_id")
	return id, errors.Wrap(err, "create service")
}

func (r *repository) UpdateAddon(ctx context.Context, id int, req model.AddonRequest) error {
	ok, err := exec(ctx, r.db, qb.Update(addonTableName).
		Set("descripcion", req.Description).
		Set("importe", req.Price).
		Set("modificado", sq.Expr("now()")).
		Where(sq.Eq{"servicio_id": id, "activo": true}))
	if err != nil {
		return errors.Wrap(err, "update service")
	}
	if !ok {
		return errs.ErrServiceNotFound
	}
	return nil
}

func (r *repository) DeleteAddon(ctx context.Context, id int) (bool, error) {
	return r.softDelete(ctx, addonTableName, "servicio_id", id)
}

func (r *repository) ListSlots(ctx context.Context) ([]model.Slot, error) {
	items, err := selectAll[model.Slot](ctx, r.db, qb.Select(slotColumns...).
		From(slotTableName).
		Where(sq.Eq{"activo": true}).
		OrderBy("orden"))
	return items, errors.Wrap(err, "list slots")
}

func (r *repository) GetSlot(ctx context.Context, id int) (model.Slot, error) {
	s, err := selectOne[model.Slot](ctx, r.db, qb.Select(slotColumns...).
		From(slotTableName).
		Where(sq.Eq{"turno_id": id, "activo": true}))
	if errors.Is(err, errs.ErrNotFound) {
		return model.Slot{}, errs.ErrSlotNotFound
	}
	return s, err
}

func (r *repository) CreateSlot(ctx context.Context, req model.SlotRequest) (int, error) {
	id, err := insertReturningID(ctx, r.db, qb.Insert(slotTableName).
		Columns("orden", "hora_desde", "hora_hasta").
		Values(req.Order, req.StartsAt, req.EndsAt),
		"turno_id")
	return id, errors.Wrap(err, "create slot")
}

func (r *repository) UpdateSlot(ctx context.Context, id int, req model.SlotRequest) error {
	ok, err := exec(ctx, r.db, qb.Update(slotTableName).
		Set("orden", req.Order).
		Set("hora_desde", req.StartsAt).
		Set("hora_hasta", req.EndsAt).
		Set("modificado", sq.Expr("now()")).
		Where(sq.Eq{"turno_id": id, "activo": true}))
	if err != nil {
		return errors.Wrap(err, "update slot")
	}
	if !ok {
		return errs.ErrSlotNotFound
	}
	return nil
}

func (r *repository) DeleteSlot(ctx context.Context, id int) (bool, error) {
	return r.softDelete(ctx, slotTableName, "turno_id", id)
}

func (r *repository) softDelete(ctx context.Context, table, idColumn string, id int) (bool, error) {
	ok, err := exec(ctx, r.db, qb.Update(table).
		Set("activo", false).
		Set("modificado", sq.Expr("now()")).
		Where(sq.Eq{idColumn: id, "activo": true}))
	return ok, errors.Wrapf(err, "soft delete %s", table)
}
