package model

import "time"

type Venue struct {
	ID        int       `json:"salon_id" db:"salon_id"`
	Title     string    `json:"titulo" db:"titulo"`
	Address   string    `json:"direccion" db:"direccion"`
	Latitude  *float64  `json:"latitud" db:"latitud"`
	Longitude *float64  `json:"longitud" db:"longitud"`
	Capacity  int       `json:"capacidad" db:"capacidad"`
	Price     float64   `json:"importe" db:"importe"`
	Active    bool      `json:"activo" db:"activo"`
	CreatedAt time.Time `json:"creado" db:"creado"`
	UpdatedAt time.Time `json:"modificado" db:"modificado"`
}

type VenueRequest struct {
	Title     string   `json:"titulo" validate:"required,min=3,max=255"`
	Address   string   `json:"direccion" validate:"required,min=5,max=255"`
	Latitude  *float64 `json:"latitud" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitud" validate:"omitempty,min=-180,max=180"`
	Capacity  int      `json:"capacidad" validate:"required,min=1"`
	Price     float64  `json:"importe" validate:"gte=0"`
}

// Addon is an optional service (catering, DJ, ...) sold with a reservation.
type Addon struct {
	ID          int       `json:"servicio_id" db:"servicio_id"`
	Description string    `json:"descripcion" db:"descripcion"`
	Price       float64   `json:"importe" db:"importe"`
	Active      bool      `json:"activo" db:"activo"`
	CreatedAt   time.Time `json:"creado" db:"creado"`
	UpdatedAt   time.Time `json:"modificado" db:"modificado"`
}

type AddonRequest struct {
	Description string  `json:"descripcion" validate:"required,min=3,max=255"`
	Price       float64 `json:"importe" validate:"gte=0"`
}

// Slot is a time band of the day, hours are "HH:MM".
type Slot struct {
	ID        int       `json:"turno_id" db:"turno_id"`
	Order     int       `json:"orden" db:"orden"`
	StartsAt  string    `json:"hora_desde" db:"hora_desde"`
	EndsAt    string    `json:"hora_hasta" db:"hora_hasta"`
	Active    bool      `json:"activo" db:"activo"`
	CreatedAt time.Time `json:"creado" db:"creado"`
	UpdatedAt time.Time `json:"modificado" db:"modificado"`
}

type SlotRequest struct {
	Order    int    `json:"orden" validate:"required,min=1"`
	StartsAt string `json:"hora_desde" validate:"required,datetime=15:04"`
	EndsAt   string `json:"hora_hasta" validate:"required,datetime=15:04"`
}
