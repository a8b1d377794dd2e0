package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

var csvHeader = []string{
	"ID Reserva", "Fecha Reserva", "Cliente", "Email Cliente", "Celular Cliente",
	"Salón", "Dirección Salón", "Capacidad Salón", "Turno", "Temática",
	"Servicios", "Importe Salón", "Importe Total", "Fecha Creación",
}

func CSV(rows []model.ReservationSummary) ([]byte, error) {
	var buf bytes.Buffer
	// BOM so spreadsheet apps pick utf-8
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.ID),
			r.Date.String(),
			r.ClientName,
			r.ClientEmail,
			orDefault(r.ClientPhone, "N/A"),
			r.VenueTitle,
			r.VenueAddress,
			strconv.Itoa(r.VenueCapacity),
			slot(r),
			orDefault(r.Theme, "No especificada"),
			servicesText(r.Services),
			money(r.VenuePrice),
			money(r.TotalPrice),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func servicesText(lines []model.ReservationService) string {
	if len(lines) == 0 {
		return "Ninguno"
	}
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprintf("%s ($%s)", l.Description, money(l.Price))
	}
	return strings.Join(parts, "; ")
}

func slot(r model.ReservationSummary) string {
	return r.StartsAt + " - " + r.EndsAt
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func orDefault(s *string, def string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return def
	}
	return *s
}
