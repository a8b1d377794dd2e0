package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/venue-reservation/pkg/circuit_breaker"
)

type line struct {
	Description string
	Price       float64
}

type reservationData struct {
	ReservationID int
	ClientName    string
	ClientEmail   string
	Date          string
	Venue         string
	Address       string
	Slot          string
	Theme         string
	Services      []line
	VenuePrice    float64
	Total         float64
}

func sampleData() reservationData {
	return reservationData{
		ReservationID: 12,
		ClientName:    "Ana Gómez",
		ClientEmail:   "ana@mail.com",
		Date:          "2025-01-10",
		Venue:         "Salón Arcoíris",
		Address:       "Av. Siempre Viva 742",
		Slot:          "12:00 - 14:00",
		Theme:         "<Piratas>",
		Services:      []line{{Description: "Catering", Price: 15000}, {Description: "DJ", Price: 8000}},
		VenuePrice:    100000,
		Total:         123000,
	}
}

func TestRenderer(t *testing.T) {
	t.Parallel()
	r, err := newRenderer()
	require.NoError(t, err)

	for _, name := range []string{TemplateNewReservationAdmin, TemplateReservationConfirmClient} {
		out, err := r.render(name, sampleData())
		require.NoError(t, err, name)
		require.Contains(t, out, "#12")
		require.Contains(t, out, "Catering: $15000.00")
		require.Contains(t, out, "$123000.00")
		require.Contains(t, out, "&lt;Piratas&gt;")
	}

	_, err = r.render("missing", sampleData())
	require.Error(t, err)
}

func TestSMTPMailer_Send(t *testing.T) {
	t.Parallel()
	r, err := newRenderer()
	require.NoError(t, err)

	m := newSMTP(Config{SMTPHost: "localhost", SMTPPort: 1025, From: "no-reply@salones.local", FromName: "Reservas"}, r)
	var sentTo []string
	var body string
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		require.Equal(t, "localhost:1025", addr)
		require.Nil(t, a)
		sentTo = to
		body = string(msg)
		return nil
	}

	err = m.Send(context.Background(), Message{
		To:       "ana@mail.com",
		Subject:  "Reserva confirmada",
		Template: TemplateReservationConfirmClient,
		Data:     sampleData(),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ana@mail.com"}, sentTo)
	require.True(t, strings.HasPrefix(body, "From: Reservas <no-reply@salones.local>\r\n"))
	require.Contains(t, body, "Content-Type: text/html; charset=utf-8")
	require.Contains(t, body, "Ana Gómez")

	require.Error(t, m.Send(context.Background(), Message{Template: TemplateReservationConfirmClient}))
}

type failingMailer struct{ calls int }

func (f *failingMailer) Send(context.Context, Message) error {
	f.calls++
	return errors.New("down")
}

func TestGuarded_OpensAfterFailures(t *testing.T) {
	t.Parallel()
	next := &failingMailer{}
	g := newGuarded(next, circuit_breaker.Config{Window: 2, FailureRatio: 1, Cooldown: 1 << 40, Probes: 1})

	require.Error(t, g.Send(context.Background(), Message{To: "x@y.z"}))
	require.Error(t, g.Send(context.Background(), Message{To: "x@y.z"}))
	err := g.Send(context.Background(), Message{To: "x@y.z"})
	require.ErrorIs(t, err, circuit_breaker.ErrOpen)
	require.Equal(t, 2, next.calls)
}

func TestNew_Nop(t *testing.T) {
	t.Parallel()
	m, err := New(Config{}, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &nopMailer{}, m)
	require.NoError(t, m.Send(context.Background(), Message{
		To:       "admin@mail.com",
		Template: TemplateNewReservationAdmin,
		Data:     sampleData(),
	}))
}
