package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/venue-reservation/pkg/auth"
	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
	"github.com/Astemirdum/venue-reservation/reservation/internal/repository"
)

// ownerScope is the owner filter applied to reservation reads: staff see
// everything, everyone else only their own bookings.
func ownerScope(caller auth.Identity) int {
	if caller.Role.IsStaff() {
		return 0
	}
	return caller.UserID
}

func (s *Service) ListReservations(ctx context.Context, caller auth.Identity) ([]model.ReservationDetail, error) {
	return s.repo.ListReservations(ctx, ownerScope(caller))
}

// GetReservation answers not found for reservations outside the caller scope.
func (s *Service) GetReservation(ctx context.Context, id int, caller auth.Identity) (model.ReservationDetail, error) {
	rsv, err := s.repo.GetReservation(ctx, id, ownerScope(caller))
	if err != nil {
		return model.ReservationDetail{}, err
	}
	rsv.Services, err = s.repo.ListReservationServices(ctx, id)
	if err != nil {
		return model.ReservationDetail{}, err
	}
	return rsv, nil
}

func (s *Service) IsAvailable(ctx context.Context, date model.Date, venueID, slotID, excludeID int) (bool, error) {
	if date.IsZero() || venueID <= 0 || slotID <= 0 {
		return false, errs.Validation("fecha_reserva, salon_id y turno_id son obligatorios")
	}
	return s.repo.IsAvailable(ctx, date, venueID, slotID, excludeID)
}

func (s *Service) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.CreateReservationResponse, error) {
	if req.Date.IsZero() || req.VenueID <= 0 || req.SlotID <= 0 {
		return model.CreateReservationResponse{}, errs.Validation("fecha_reserva, salon_id y turno_id son obligatorios")
	}

	var resp model.CreateReservationResponse
	err := s.repo.WithTx(ctx, func(repo repository.Repository) error {
		venue, err := repo.GetVenue(ctx, req.VenueID)
		if err != nil {
			return err
		}
		if _, err = repo.GetSlot(ctx, req.SlotID); err != nil {
			return err
		}
		available, err := repo.IsAvailable(ctx, req.Date, req.VenueID, req.SlotID, 0)
		if err != nil {
			return err
		}
		if !available {
			return errs.ErrSlotTaken
		}

		q, err := quote(ctx, repo, venue, req.Services)
		if err != nil {
			return err
		}
		id, err := repo.CreateReservation(ctx, model.Reservation{
			Date:       req.Date,
			VenueID:    req.VenueID,
			UserID:     req.UserID,
			SlotID:     req.SlotID,
			Theme:      req.Theme,
			Photo:      req.Photo,
			VenuePrice: q.VenuePrice,
			TotalPrice: q.TotalPrice,
			Active:     true,
		})
		if err != nil {
			return err
		}
		if err = addLines(ctx, repo, id, q.Lines); err != nil {
			return err
		}
		resp = model.CreateReservationResponse{ID: id, TotalPrice: q.TotalPrice}
		return nil
	})
	if err != nil {
		return model.CreateReservationResponse{}, err
	}

	s.log.Info("reservation created",
		zap.Int("reserva_id", resp.ID),
		zap.Int("usuario_id", req.UserID),
		zap.Float64("importe_total", resp.TotalPrice))
	s.notifier.ReservationCreated(ctx, resp.ID)
	return resp, nil
}

func (s *Service) UpdateReservation(ctx context.Context, id int, req model.UpdateReservationRequest) error {
	err := s.repo.WithTx(ctx, func(repo repository.Repository) error {
		current, err := repo.GetReservation(ctx, id, 0)
		if err != nil {
			return err
		}
		next := current.Reservation
		if req.Date != nil {
			if req.Date.IsZero() {
				return errs.Validation("fecha_reserva invalida")
			}
			next.Date = *req.Date
		}
		if req.VenueID != nil {
			if _, err = repo.GetVenue(ctx, *req.VenueID); err != nil {
				return err
			}
			next.VenueID = *req.VenueID
		}
		if req.SlotID != nil {
			if _, err = repo.GetSlot(ctx, *req.SlotID); err != nil {
				return err
			}
			next.SlotID = *req.SlotID
		}
		if req.MovesSlot() {
			available, err := repo.IsAvailable(ctx, next.Date, next.VenueID, next.SlotID, id)
			if err != nil {
				return err
			}
			if !available {
				return errs.ErrSlotTaken
			}
		}
		if req.Theme != nil {
			next.Theme = req.Theme
		}
		if req.Photo != nil {
			next.Photo = req.Photo
		}
		if err = repo.UpdateReservation(ctx, next); err != nil {
			return err
		}

		if req.Services == nil {
			return nil
		}
		return replaceServices(ctx, repo, next, *req.Services)
	})
	if err != nil {
		return err
	}

	s.log.Info("reservation updated", zap.Int("reserva_id", id))
	s.notifier.ReservationConfirmed(ctx, id)
	return nil
}

// replaceServices swaps the whole service set and reprices the reservation
// from the current base price of its venue.
func replaceServices(ctx context.Context, repo repository.Repository, rsv model.Reservation, selections []model.ServiceSelection) error {
	if err := repo.DeleteReservationServices(ctx, rsv.ID); err != nil {
		return err
	}
	venue, err := repo.GetVenue(ctx, rsv.VenueID)
	if err != nil {
		return err
	}
	q, err := quote(ctx, repo, venue, selections)
	if err != nil {
		return err
	}
	if err = addLines(ctx, repo, rsv.ID, q.Lines); err != nil {
		return err
	}
	return repo.UpdateReservationPrices(ctx, rsv.ID, q.VenuePrice, q.TotalPrice)
}

func addLines(ctx context.Context, repo repository.ReservationRepository, reservationID int, lines []model.QuoteLine) error {
	for _, line := range lines {
		if err := repo.AddReservationService(ctx, reservationID, line.ServiceID, line.Price); err != nil {
			return err
		}
	}
	return nil
}

// DeleteReservation reports false when there was nothing active to delete.
func (s *Service) DeleteReservation(ctx context.Context, id int) (bool, error) {
	var deleted bool
	err := s.repo.WithTx(ctx, func(repo repository.Repository) error {
		if _, err := repo.GetReservation(ctx, id, 0); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := repo.DeleteReservationServices(ctx, id); err != nil {
			return err
		}
		ok, err := repo.DeleteReservation(ctx, id)
		if err != nil {
			return err
		}
		deleted = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("reservation deleted", zap.Int("reserva_id", id))
	}
	return deleted, nil
}
