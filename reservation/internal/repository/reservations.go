package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

type ReservationRepository interface {
	// ListReservations returns active reservations, ownerID 0 means every owner.
	ListReservations(ctx context.Context, ownerID int) ([]model.ReservationDetail, error)
	GetReservation(ctx context.Context, id, ownerID int) (model.ReservationDetail, error)
	IsAvailable(ctx context.Context, date model.Date, venueID, slotID, excludeID int) (bool, error)
	CreateReservation(ctx context.Context, rsv model.Reservation) (int, error)
	UpdateReservation(ctx context.Context, rsv model.Reservation) error
	UpdateReservationPrices(ctx context.Context, id int, venuePrice, total float64) error
	DeleteReservation(ctx context.Context, id int) (bool, error)

	ListReservationServices(ctx context.Context, reservationIDs ...int) ([]model.ReservationService, error)
	AddReservationService(ctx context.Context, reservationID, serviceID int, price float64) error
	DeleteReservationServices(ctx context.Context, reservationID int) error

	ListReservationSummaries(ctx context.Context) ([]model.ReservationSummary, error)
	GetReservationSummary(ctx context.Context, id int) (model.ReservationSummary, error)
}

var reservationDetailColumns = []string{
	"r.reserva_id", "r.fecha_reserva", "r.salon_id", "r.usuario_id", "r.turno_id",
	"r.tematica", "r.foto_cumpleaniero", "r.importe_salon", "r.importe_total",
	"r.activo", "r.creado", "r.modificado",
	"s.titulo as salon_titulo", "u.nombre", "u.apellido",
	"to_char(t.hora_desde, 'HH24:MI') as hora_desde",
	"to_char(t.hora_hasta, 'HH24:MI') as hora_hasta",
}

var reservationSummaryColumns = []string{
	"r.reserva_id", "r.fecha_reserva", "r.usuario_id",
	"u.nombre || ' ' || u.apellido as cliente", "u.nombre_usuario", "u.celular",
	"s.titulo as salon_titulo", "s.direccion", "s.capacidad",
	"to_char(t.hora_desde, 'HH24:MI') as hora_desde",
	"to_char(t.hora_hasta, 'HH24:MI') as hora_hasta",
	"r.tematica", "r.importe_salon", "r.importe_total", "r.creado",
}

func joinedReservations(columns []string) sq.SelectBuilder {
	return qb.Select(columns...).
		From(reservationTableName + " r").
		Join(venueTableName + " s on s.salon_id = r.salon_id").
		Join(userTableName + " u on u.usuario_id = r.usuario_id").
		Join(slotTableName + " t on t.turno_id = r.turno_id").
		Where(sq.Eq{"r.activo": true})
}

func (r *repository) ListReservations(ctx context.Context, ownerID int) ([]model.ReservationDetail, error) {
	b := joinedReservations(reservationDetailColumns).
		OrderBy("r.fecha_reserva desc", "r.reserva_id desc")
	if ownerID != 0 {
		b = b.Where(sq.Eq{"r.usuario_id": ownerID})
	}
	items, err := selectAll[model.ReservationDetail](ctx, r.db, b)
	return items, errors.Wrap(err, "list reservations")
}

func (r *repository) GetReservation(ctx context.Context, id, ownerID int) (model.ReservationDetail, error) {
	b := joinedReservations(reservationDetailColumns).
		Where(sq.Eq{"r.reserva_id": id})
	if ownerID != 0 {
		b = b.Where(sq.Eq{"r.usuario_id": ownerID})
	}
	item, err := selectOne[model.ReservationDetail](ctx, r.db, b)
	if errors.Is(err, errs.ErrNotFound) {
		return model.ReservationDetail{}, errs.ErrReservationNotFound
	}
	return item, err
}

func (r *repository) IsAvailable(ctx context.Context, date model.Date, venueID, slotID, excludeID int) (bool, error) {
	b := qb.Select("count(*)").
		From(reservationTableName).
		Where(sq.Eq{
			"fecha_reserva": date,
			"salon_id":      venueID,
			"turno_id":      slotID,
			"activo":        true,
		})
	if excludeID != 0 {
		b = b.Where(sq.NotEq{"reserva_id": excludeID})
	}
	q, args, err := b.ToSql()
	if err != nil {
		return false, err
	}
	var taken int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&taken); err != nil {
		return false, errors.Wrap(err, "availability")
	}
	return taken == 0, nil
}

func (r *repository) CreateReservation(ctx context.Context, rsv model.Reservation) (int, error) {
	id, err := insertReturningID(ctx, r.db, qb.Insert(reservationTableName).
		Columns("fecha_reserva", "salon_id", "usuario_id", "turno_id",
			"tematica", "foto_cumpleaniero", "importe_salon", "importe_total").
		Values(rsv.Date, rsv.VenueID, rsv.UserID, rsv.SlotID,
			rsv.Theme, rsv.Photo, rsv.VenuePrice, rsv.TotalPrice),
		"reserva_id")
	if err != nil {
		if isUniqueViolation(err, uniqueSlotIndex) {
			return 0, errs.ErrSlotTaken
		}
		return 0, errors.Wrap(err, "create reservation")
	}
	return id, nil
}

// UpdateReservation writes the booking columns; prices are left alone.
func (r *repository) UpdateReservation(ctx context.Context, rsv model.Reservation) error {
	ok, err := exec(ctx, r.db, qb.Update(reservationTableName).
		SetMap(map[string]any{
			"fecha_reserva":     rsv.Date,
			"salon_id":          rsv.VenueID,
			"turno_id":          rsv.SlotID,
			"tematica":          rsv.Theme,
			"foto_cumpleaniero": rsv.Photo,
			"modificado":        sq.Expr("now()"),
		}).
		Where(sq.Eq{"reserva_id": rsv.ID, "activo": true}))
	if err != nil {
		if isUniqueViolation(err, uniqueSlotIndex) {
			return errs.ErrSlotTaken
		}
		return errors.Wrap(err, "update reservation")
	}
	if !ok {
		return errs.ErrReservationNotFound
	}
	return nil
}

func (r *repository) UpdateReservationPrices(ctx context.Context, id int, venuePrice, total float64) error {
	ok, err := exec(ctx, r.db, qb.Update(reservationTableName).
		Set("importe_salon", venuePrice).
		Set("importe_total", total).
		Set("modificado", sq.Expr("now()")).
		Where(sq.Eq{"reserva_id": id, "activo": true}))
	if err != nil {
		return errors.Wrap(err, "update reservation prices")
	}
	if !ok {
		return errs.ErrReservationNotFound
	}
	return nil
}

func (r *repository) DeleteReservation(ctx context.Context, id int) (bool, error) {
	return r.softDelete(ctx, reservationTableName, "reserva_id", id)
}

func (r *repository) ListReservationServices(ctx context.Context, reservationIDs ...int) ([]model.ReservationService, error) {
	items, err := selectAll[model.ReservationService](ctx, r.db, qb.
		Select("rs.reserva_servicio_id", "rs.reserva_id", "rs.servicio_id", "sv.descripcion", "rs.importe").
		From(reservationServiceTableName + " rs").
		Join(addonTableName + " sv on sv.servicio_id = rs.servicio_id").
		Where(sq.Eq{"rs.reserva_id": reservationIDs}).
		OrderBy("rs.reserva_id", "rs.reserva_servicio_id"))
	return items, errors.Wrap(err, "list reservation services")
}

func (r *repository) AddReservationService(ctx context.Context, reservationID, serviceID int, price float64) error {
	_, err := exec(ctx, r.db, qb.Insert(reservationServiceTableName).
		Columns("reserva_id", "servicio_id", "importe").
		Values(reservationID, serviceID, price))
	return errors.Wrap(err, "add reservation service")
}

func (r *repository) DeleteReservationServices(ctx context.Context, reservationID int) error {
	_, err := exec(ctx, r.db, qb.Delete(reservationServiceTableName).
		Where(sq.Eq{"reserva_id": reservationID}))
	return errors.Wrap(err, "delete reservation services")
}

func (r *repository) ListReservationSummaries(ctx context.Context) ([]model.ReservationSummary, error) {
	items, err := selectAll[model.ReservationSummary](ctx, r.db, joinedReservations(reservationSummaryColumns).
		OrderBy("r.fecha_reserva", "t.hora_desde", "r.reserva_id"))
	return items, errors.Wrap(err, "list reservation summaries")
}

func (r *repository) GetReservationSummary(ctx context.Context, id int) (model.ReservationSummary, error) {
	item, err := selectOne[model.ReservationSummary](ctx, r.db, joinedReservations(reservationSummaryColumns).
		Where(sq.Eq{"r.reserva_id": id}))
	if errors.Is(err, errs.ErrNotFound) {
		return model.ReservationSummary{}, errs.ErrReservationNotFound
	}
	return item, err
}
