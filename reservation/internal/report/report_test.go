package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

func rows() []model.ReservationSummary {
	theme := "Piratas"
	phone := "1155554444"
	return []model.ReservationSummary{
		{
			ID:            1,
			Date:          model.NewDate(2025, time.January, 10),
			ClientName:    "Ana Gómez",
			ClientEmail:   "ana@mail.com",
			ClientPhone:   &phone,
			VenueTitle:    "Salón Arcoíris",
			VenueAddress:  "Av. Siempre Viva 742",
			VenueCapacity: 80,
			StartsAt:      "12:00",
			EndsAt:        "14:00",
			Theme:         &theme,
			VenuePrice:    100000,
			TotalPrice:    123000,
			CreatedAt:     time.Date(2024, time.December, 1, 10, 0, 0, 0, time.UTC),
			Services: []model.ReservationService{
				{ReservationID: 1, ServiceID: 1, Description: "Catering", Price: 15000},
				{ReservationID: 1, ServiceID: 2, Description: "DJ", Price: 8000},
			},
		},
		{
			ID:          2,
			Date:        model.NewDate(2025, time.February, 3),
			ClientName:  "Luis Pérez",
			ClientEmail: "luis@mail.com",
			VenueTitle:  "Castillo",
			StartsAt:    "18:00",
			EndsAt:      "20:00",
			VenuePrice:  50000,
			TotalPrice:  50000,
		},
	}
}

func TestCSV(t *testing.T) {
	t.Parallel()
	out, err := CSV(rows())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("\ufeff")))

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, []byte("\ufeff")))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, csvHeader, records[0])

	first := records[1]
	require.Equal(t, "1", first[0])
	require.Equal(t, "2025-01-10", first[1])
	require.Equal(t, "12:00 - 14:00", first[8])
	require.Equal(t, "Catering ($15000.00); DJ ($8000.00)", first[10])
	require.Equal(t, "123000.00", first[12])

	second := records[2]
	require.Equal(t, "N/A", second[4])
	require.Equal(t, "No especificada", second[9])
	require.Equal(t, "Ninguno", second[10])
}

func TestPDF(t *testing.T) {
	t.Parallel()
	out, err := PDF(rows(), time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	require.Greater(t, len(out), 1000)
}
