package model

import (
	"time"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
)

type User struct {
	ID        int       `json:"usuario_id" db:"usuario_id"`
	FirstName string    `json:"nombre" db:"nombre"`
	LastName  string    `json:"apellido" db:"apellido"`
	UserName  string    `json:"nombre_usuario" db:"nombre_usuario"`
	Password  string    `json:"-" db:"contrasenia"`
	Role      auth.Role `json:"tipo_usuario" db:"tipo_usuario"`
	Phone     *string   `json:"celular" db:"celular"`
	Photo     *string   `json:"foto" db:"foto"`
	Active    bool      `json:"activo" db:"activo"`
	CreatedAt time.Time `json:"creado" db:"creado"`
	UpdatedAt time.Time `json:"modificado" db:"modificado"`
}

func (u User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, UserName: u.UserName, Role: u.Role}
}

type LoginRequest struct {
	UserName string `json:"nombre_usuario" validate:"required,min=3"`
	Password string `json:"contrasenia" validate:"required,min=6"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expira"`
	User      User      `json:"usuario"`
}

type RegisterRequest struct {
	FirstName string  `json:"nombre" validate:"required,min=2,max=50"`
	LastName  string  `json:"apellido" validate:"required,min=2,max=50"`
	UserName  string  `json:"nombre_usuario" validate:"required,min=3,max=50"`
	Password  string  `json:"contrasenia" validate:"required,min=6"`
	Phone     *string `json:"celular" validate:"omitempty,min=10,max=20"`
}

type CreateUserRequest struct {
	RegisterRequest
	Role  auth.Role `json:"tipo_usuario" validate:"required,min=1,max=3"`
	Photo *string   `json:"foto" validate:"omitempty,max=255"`
}

// UpdateUserRequest is a partial update, nil fields are left untouched.
type UpdateUserRequest struct {
	FirstName *string    `json:"nombre" validate:"omitempty,min=2,max=50"`
	LastName  *string    `json:"apellido" validate:"omitempty,min=2,max=50"`
	UserName  *string    `json:"nombre_usuario" validate:"omitempty,min=3,max=50"`
	Password  *string    `json:"contrasenia" validate:"omitempty,min=6"`
	Role      *auth.Role `json:"tipo_usuario" validate:"omitempty,min=1,max=3"`
	Phone     *string    `json:"celular" validate:"omitempty,min=10,max=20"`
	Photo     *string    `json:"foto" validate:"omitempty,max=255"`
	Active    *bool      `json:"activo"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"nombre" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"apellido" validate:"omitempty,min=2,max=50"`
	Phone     *string `json:"celular" validate:"omitempty,min=10,max=20"`
	Photo     *string `json:"foto" validate:"omitempty,max=255"`
}
