package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

type UserRepository interface {
	ListUsers(ctx context.Context, role auth.Role) ([]model.User, error)
	GetUser(ctx context.Context, id int) (model.User, error)
	// GetUserByUserName also loads the password hash.
	GetUserByUserName(ctx context.Context, userName string) (model.User, error)
	CreateUser(ctx context.Context, u model.User) (int, error)
	UpdateUser(ctx context.Context, u model.User) error
	DeleteUser(ctx context.Context, id int) (bool, error)
	ListAdminEmails(ctx context.Context) ([]string, error)
}

var userColumns = []string{
	"usuario_id", "nombre", "apellido", "nombre_usuario", "tipo_usuario",
	"celular", "foto", "activo", "creado", "modificado",
}

// ListUsers returns active users, role 0 means any role.
func (r *repository) ListUsers(ctx context.Context, role auth.Role) ([]model.User, error) {
	b := qb.Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"activo": true}).
		OrderBy("apellido", "nombre")
	if role != 0 {
		b = b.Where(sq.Eq{"tipo_usuario": role})
	}
	users, err := selectAll[model.User](ctx, r.db, b)
	return users, errors.Wrap(err, "list users")
}

func (r *repository) GetUser(ctx context.Context, id int) (model.User, error) {
	u, err := selectOne[model.User](ctx, r.db, qb.Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"usuario_id": id, "activo": true}))
	if errors.Is(err, errs.ErrNotFound) {
		return model.User{}, errs.ErrUserNotFound
	}
	return u, err
}

func (r *repository) GetUserByUserName(ctx context.Context, userName string) (model.User, error) {
	u, err := selectOne[model.User](ctx, r.db, qb.Select(append(userColumns, "contrasenia")...).
		From(userTableName).
		Where(sq.Eq{"nombre_usuario": userName, "activo": true}))
	if errors.Is(err, errs.ErrNotFound) {
		return model.User{}, errs.ErrUserNotFound
	}
	return u, err
}

func (r *repository) CreateUser(ctx context.Context, u model.User) (int, error) {
	id, err := insertReturningID(ctx, r.db, qb.Insert(userTableName).
		Columns("nombre", "apellido", "nombre_usuario", "contrasenia", "tipo_usuario", "celular", "foto").
		Values(u.FirstName, u.LastName, u.UserName, u.Password, u.Role, u.Phone, u.Photo),
		"usuario_id")
	if err != nil {
		if isUniqueViolation(err, uniqueLoginIndex) {
			return 0, errs.ErrLoginTaken
		}
		return 0, errors.Wrap(err, "create user")
	}
	return id, nil
}

// UpdateUser writes every profile column of u; the password only when set.
func (r *repository) UpdateUser(ctx context.Context, u model.User) error {
	b := qb.Update(userTableName).
		SetMap(map[string]any{
			"nombre":         u.FirstName,
			"apellido":       u.LastName,
			"nombre_usuario": u.UserName,
			"tipo_usuario":   u.Role,
			"celular":        u.Phone,
			"foto":           u.Photo,
			"activo":         u.Active,
			"modificado":     sq.Expr("now()"),
		}).
		Where(sq.Eq{"usuario_id": u.ID})
	if u.Password != "" {
		b = b.Set("contrasenia", u.Password)
	}
	ok, err := exec(ctx, r.db, b)
	if err != nil {
		if isUniqueViolation(err, uniqueLoginIndex) {
			return errs.ErrLoginTaken
		}
		return errors.Wrap(err, "update user")
	}
	if !ok {
		return errs.ErrUserNotFound
	}
	return nil
}

func (r *repository) DeleteUser(ctx context.Context, id int) (bool, error) {
	ok, err := exec(ctx, r.db, qb.Update(userTableName).
		Set("activo", false).
		Set("modificado", sq.Expr("now()")).
		Where(sq.Eq{"usuario_id": id, "activo": true}))
	return ok, errors.Wrap(err, "delete user")
}

func (r *repository) ListAdminEmails(ctx context.Context) ([]string, error) {
	q, args, err := qb.Select("nombre_usuario").
		From(userTableName).
		Where(sq.Eq{"tipo_usuario": auth.RoleAdmin, "activo": true}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list admin emails")
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
