package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
)

type Repository interface {
	UserRepository
	VenueRepository
	AddonRepository
	SlotRepository
	ReservationRepository
	StatsRepository

	// WithTx runs fn inside one transaction. Nested calls reuse it.
	WithTx(ctx context.Context, fn func(repo Repository) error) error
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type repository struct {
	db   querier
	pool *pgxpool.Pool
	inTx bool
	log  *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:   db,
		pool: db,
		log:  log.Named("repo"),
	}, nil
}

const (
	userTableName               = "usuarios"
	venueTableName              = "salones"
	addonTableName              = "servicios"
	slotTableName               = "turnos"
	reservationTableName        = "reservas"
	reservationServiceTableName = "reservas_servicios"

	uniqueSlotIndex  = "uq_reservas_slot_activo"
	uniqueLoginIndex = "uq_usuarios_nombre_usuario"
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) WithTx(ctx context.Context, fn func(repo Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(&repository{db: tx, pool: r.pool, inTx: true, log: r.log})
	})
}

func selectAll[T any](ctx context.Context, db querier, b sq.Sqlizer) ([]T, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build query")
	}
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, errors.Wrap(err, "collect rows")
	}
	return items, nil
}

func selectOne[T any](ctx context.Context, db querier, b sq.Sqlizer) (T, error) {
	var zero T
	q, args, err := b.ToSql()
	if err != nil {
		return zero, errors.Wrap(err, "build query")
	}
	rows, err := db.Query(ctx, q, args...)
	if err != nil {
		return zero, errors.Wrap(err, "query")
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, errs.ErrNotFound
		}
		return zero, errors.Wrap(err, "collect row")
	}
	return item, nil
}

func insertReturningID(ctx context.Context, db querier, b sq.InsertBuilder, idColumn string) (int, error) {
	q, args, err := b.Suffix("returning " + idColumn).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "build insert")
	}
	var id int
	if err := db.QueryRow(ctx, q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// exec returns whether any row was affected.
func exec(ctx context.Context, db querier, b sq.Sqlizer) (bool, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return false, errors.Wrap(err, "build statement")
	}
	tag, err := db.Exec(ctx, q, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}
