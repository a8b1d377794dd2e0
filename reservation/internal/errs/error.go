package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrForbidden          = errors.New("forbidden")

	ErrNotFound            = errors.New("not found")
	ErrVenueNotFound       = fmt.Errorf("salon %w", ErrNotFound)
	ErrSlotNotFound        = fmt.Errorf("turno %w", ErrNotFound)
	ErrServiceNotFound     = fmt.Errorf("servicio %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reserva %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("usuario %w", ErrNotFound)
	ErrNoReservations      = fmt.Errorf("no hay reservas para el reporte: %w", ErrNotFound)

	ErrConflict   = errors.New("conflict")
	ErrSlotTaken  = fmt.Errorf("el salón ya está reservado para esa fecha y turno: %w", ErrConflict)
	ErrLoginTaken = fmt.Errorf("el nombre de usuario ya está en uso: %w", ErrConflict)

	ErrSelfDelete = errors.New("no puedes eliminar tu propio usuario")
)

// Validation wraps ErrValidation with a human readable reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
