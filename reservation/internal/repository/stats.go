package repository

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

type StatsRepository interface {
	TotalReservations(ctx context.Context) (int, error)
	ReservationsPerMonth(ctx context.Context) ([]model.MonthCount, error)
	PopularVenues(ctx context.Context) ([]model.VenuePopularity, error)
	Revenue(ctx context.Context) (float64, error)
}

func (r *repository) TotalReservations(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `select fn_total_reservas()`).Scan(&total)
	return total, errors.Wrap(err, "fn_total_reservas")
}

func (r *repository) ReservationsPerMonth(ctx context.Context) ([]model.MonthCount, error) {
	items, err := selectAll[model.MonthCount](ctx, r.db,
		qb.Select("periodo as mes", "cantidad").From("fn_reservas_por_mes()"))
	return items, errors.Wrap(err, "fn_reservas_por_mes")
}

func (r *repository) PopularVenues(ctx context.Context) ([]model.VenuePopularity, error) {
	items, err := selectAll[model.VenuePopularity](ctx, r.db,
		qb.Select("salon as salon_id", "nombre as titulo", "cantidad as reservas").From("fn_salones_populares()"))
	return items, errors.Wrap(err, "fn_salones_populares")
}

func (r *repository) Revenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.QueryRow(ctx, `select fn_ingresos_totales()`).Scan(&revenue)
	return revenue, errors.Wrap(err, "fn_ingresos_totales")
}
