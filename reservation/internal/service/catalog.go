package service

import (
	"context"

	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

func (s *Service) ListVenues(ctx context.Context) ([]model.Venue, error) {
	return s.repo.ListVenues(ctx)
}

func (s *Service) GetVenue(ctx context.Context, id int) (model.Venue, error) {
	return s.repo.GetVenue(ctx, id)
}

func (s *Service) CreateVenue(ctx context.Context, req model.VenueRequest) (model.Venue, error) {
	id, err := s.repo.CreateVenue(ctx, req)
	if err != nil {
		return model.Venue{}, err
	}
	return s.repo.GetVenue(ctx, id)
}

func (s *Service) UpdateVenue(ctx context.Context, id int, req model.VenueRequest) (model.Venue, error) {
	if err := s.repo.UpdateVenue(ctx, id, req); err != nil {
		return model.Venue{}, err
	}
	return s.repo.GetVenue(ctx, id)
}

func (s *Service) DeleteVenue(ctx context.Context, id int) error {
	return softDeleted(s.repo.DeleteVenue(ctx, id))(errs.ErrVenueNotFound)
}

func (s *Service) ListAddons(ctx context.Context) ([]model.Addon, error) {
	return s.repo.ListAddons(ctx)
}

func (s *Service) GetAddon(ctx context.Context, id int) (model.Addon, error) {
	return s.repo.GetAddon(ctx, id)
}

func (s *Service) CreateAddon(ctx context.Context, req model.AddonRequest) (model.Addon, error) {
	id, err := s.repo.CreateAddon(ctx, req)
	if err != nil {
		return model.Addon{}, err
	}
	return s.repo.GetAddon(ctx, id)
}

func (s *Service) UpdateAddon(ctx context.Context, id int, req model.AddonRequest) (model.Addon, error) {
	if err := s.repo.UpdateAddon(ctx, id, req); err != nil {
		return model.Addon{}, err
	}
	return s.repo.GetAddon(ctx, id)
}

func (s *Service) DeleteAddon(ctx context.Context, id int) error {
	return softDeleted(s.repo.DeleteAddon(ctx, id))(errs.ErrServiceNotFound)
}

func (s *Service) ListSlots(ctx context.Context) ([]model.Slot, error) {
	return s.repo.ListSlots(ctx)
}

func (s *Service) GetSlot(ctx context.Context, id int) (model.Slot, error) {
	return s.repo.GetSlot(ctx, id)
}

func (s *Service) CreateSlot(ctx context.Context, req model.SlotRequest) (model.Slot, error) {
	if req.EndsAt <= req.StartsAt {
		return model.Slot{}, errs.Validation("hora_hasta debe ser posterior a hora_desde")
	}
	id, err := s.repo.CreateSlot(ctx, req)
	if err != nil {
		return model.Slot{}, err
	}
	return s.repo.GetSlot(ctx, id)
}

func (s *Service) UpdateSlot(ctx context.Context, id int, req model.SlotRequest) (model.Slot, error) {
	if req.EndsAt <= req.StartsAt {
		return model.Slot{}, errs.Validation("hora_hasta debe ser posterior a hora_desde")
	}
	if err := s.repo.UpdateSlot(ctx, id, req); err != nil {
		return model.Slot{}, err
	}
	return s.repo.GetSlot(ctx, id)
}

func (s *Service) DeleteSlot(ctx context.Context, id int) error {
	return softDeleted(s.repo.DeleteSlot(ctx, id))(errs.ErrSlotNotFound)
}

func softDeleted(ok bool, err error) func(notFound error) error {
	return func(notFound error) error {
		if err != nil {
			return err
		}
		if !ok {
			return notFound
		}
		return nil
	}
}
