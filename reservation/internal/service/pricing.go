package service

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
	"github.com/Astemirdum/venue-reservation/reservation/internal/repository"
)

// ComputeTotal prices a venue with the given service selections.
func (s *Service) ComputeTotal(ctx context.Context, venueID int, selections []model.ServiceSelection) (model.Quote, error) {
	venue, err := s.repo.GetVenue(ctx, venueID)
	if err != nil {
		return model.Quote{}, err
	}
	return quote(ctx, s.repo, venue, selections)
}

// quote adds every selection that resolves to an active service. Selections
// that do not resolve are skipped, they are neither charged nor stored.
func quote(ctx context.Context, repo repository.AddonRepository, venue model.Venue, selections []model.ServiceSelection) (model.Quote, error) {
	q := model.Quote{
		VenuePrice: venue.Price,
		TotalPrice: venue.Price,
		Lines:      make([]model.QuoteLine, 0, len(selections)),
	}
	for _, sel := range selections {
		addon, err := repo.GetAddon(ctx, sel.ServiceID)
		if errors.Is(err, errs.ErrNotFound) {
			continue
		}
		if err != nil {
			return model.Quote{}, err
		}
		price := addon.Price
		if sel.Price != nil {
			price = *sel.Price
		}
		q.TotalPrice += price
		q.Lines = append(q.Lines, model.QuoteLine{
			ServiceID:   addon.ID,
			Description: addon.Description,
			Price:       price,
		})
	}
	q.TotalPrice = roundCents(q.TotalPrice)
	return q, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
