package model

import "time"

type Reservation struct {
	ID         int       `json:"reserva_id" db:"reserva_id"`
	Date       Date      `json:"fecha_reserva" db:"fecha_reserva"`
	VenueID    int       `json:"salon_id" db:"salon_id"`
	UserID     int       `json:"usuario_id" db:"usuario_id"`
	SlotID     int       `json:"turno_id" db:"turno_id"`
	Theme      *string   `json:"tematica" db:"tematica"`
	Photo      *string   `json:"foto_cumpleaniero" db:"foto_cumpleaniero"`
	VenuePrice float64   `json:"importe_salon" db:"importe_salon"`
	TotalPrice float64   `json:"importe_total" db:"importe_total"`
	Active     bool      `json:"activo" db:"activo"`
	CreatedAt  time.Time `json:"creado" db:"creado"`
	UpdatedAt  time.Time `json:"modificado" db:"modificado"`
}

// ReservationDetail is a reservation joined with the display fields of its
// venue, owner and slot.
type ReservationDetail struct {
	Reservation
	VenueTitle string `json:"salon_titulo" db:"salon_titulo"`
	FirstName  string `json:"nombre" db:"nombre"`
	LastName   string `json:"apellido" db:"apellido"`
	StartsAt   string `json:"hora_desde" db:"hora_desde"`
	EndsAt     string `json:"hora_hasta" db:"hora_hasta"`

	Services []ReservationService `json:"servicios,omitempty" db:"-"`
}

// ReservationService is a service line with the price charged at booking.
type ReservationService struct {
	ID            int     `json:"reserva_servicio_id" db:"reserva_servicio_id"`
	ReservationID int     `json:"reserva_id" db:"reserva_id"`
	ServiceID     int     `json:"servicio_id" db:"servicio_id"`
	Description   string  `json:"descripcion" db:"descripcion"`
	Price         float64 `json:"importe" db:"importe"`
}

type ServiceSelection struct {
	ServiceID int `json:"servicio_id" validate:"required,min=1"`
	// Price overrides the current catalog price when set.
	Price *float64 `json:"importe,omitempty" validate:"omitempty,gte=0"`
}

type CreateReservationRequest struct {
	Date     Date               `json:"fecha_reserva"`
	VenueID  int                `json:"salon_id" validate:"required,min=1"`
	SlotID   int                `json:"turno_id" validate:"required,min=1"`
	Theme    *string            `json:"tematica" validate:"omitempty,max=255"`
	Photo    *string            `json:"foto_cumpleaniero" validate:"omitempty,max=255"`
	Services []ServiceSelection `json:"servicios" validate:"omitempty,dive"`

	UserID int `json:"-"`
}

type CreateReservationResponse struct {
	ID         int     `json:"reserva_id"`
	TotalPrice float64 `json:"importe_total"`
}

// UpdateReservationRequest is a patch. A nil Services keeps the current lines
// and total, a non-nil one (even empty) replaces them.
type UpdateReservationRequest struct {
	Date     *Date               `json:"fecha_reserva"`
	VenueID  *int                `json:"salon_id" validate:"omitempty,min=1"`
	SlotID   *int                `json:"turno_id" validate:"omitempty,min=1"`
	Theme    *string             `json:"tematica" validate:"omitempty,max=255"`
	Photo    *string             `json:"foto_cumpleaniero" validate:"omitempty,max=255"`
	Services *[]ServiceSelection `json:"servicios"`
}

func (r UpdateReservationRequest) MovesSlot() bool {
	return r.Date != nil || r.VenueID != nil || r.SlotID != nil
}

type QuoteRequest struct {
	VenueID  int                `json:"salon_id" validate:"required,min=1"`
	Services []ServiceSelection `json:"servicios" validate:"omitempty,dive"`
}

type Availability struct {
	Date      Date `json:"fecha_reserva"`
	VenueID   int  `json:"salon_id"`
	SlotID    int  `json:"turno_id"`
	Available bool `json:"disponible"`
}

// Quote is the price breakdown of a venue plus the services that resolved.
type Quote struct {
	VenuePrice float64     `json:"importe_salon"`
	TotalPrice float64     `json:"importe_total"`
	Lines      []QuoteLine `json:"servicios"`
}

type QuoteLine struct {
	ServiceID   int     `json:"servicio_id"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"importe"`
}

// ReservationSummary is the flattened row used by reports and notifications.
type ReservationSummary struct {
	ID            int       `db:"reserva_id"`
	Date          Date      `db:"fecha_reserva"`
	ClientID      int       `db:"usuario_id"`
	ClientName    string    `db:"cliente"`
	ClientEmail   string    `db:"nombre_usuario"`
	ClientPhone   *string   `db:"celular"`
	VenueTitle    string    `db:"salon_titulo"`
	VenueAddress  string    `db:"direccion"`
	VenueCapacity int       `db:"capacidad"`
	StartsAt      string    `db:"hora_desde"`
	EndsAt        string    `db:"hora_hasta"`
	Theme         *string   `db:"tematica"`
	VenuePrice    float64   `db:"importe_salon"`
	TotalPrice    float64   `db:"importe_total"`
	CreatedAt     time.Time `db:"creado"`

	Services []ReservationService `db:"-"`
}
