package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

// Stats runs the four statistic functions concurrently.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalReservations, err = s.repo.TotalReservations(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.PerMonth, err = s.repo.ReservationsPerMonth(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.PopularVenues, err = s.repo.PopularVenues(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.Revenue, err = s.repo.Revenue(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Stats{}, err
	}
	return st, nil
}
