package service

import (
	"context"
	"time"

	"github.com/Astemirdum/venue-reservation/reservation/internal/errs"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
	"github.com/Astemirdum/venue-reservation/reservation/internal/report"
)

func (s *Service) ReportCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.reportRows(ctx)
	if err != nil {
		return nil, err
	}
	return report.CSV(rows)
}

func (s *Service) ReportPDF(ctx context.Context) ([]byte, error) {
	rows, err := s.reportRows(ctx)
	if err != nil {
		return nil, err
	}
	return report.PDF(rows, time.Now())
}

func (s *Service) reportRows(ctx context.Context) ([]model.ReservationSummary, error) {
	rows, err := s.repo.ListReservationSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.ErrNoReservations
	}

	ids := make([]int, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	lines, err := s.repo.ListReservationServices(ctx, ids...)
	if err != nil {
		return nil, err
	}
	byReservation := make(map[int][]model.ReservationService, len(rows))
	for _, l := range lines {
		byReservation[l.ReservationID] = append(byReservation[l.ReservationID], l)
	}
	for i := range rows {
		rows[i].Services = byReservation[rows[i].ID]
	}
	return rows, nil
}
