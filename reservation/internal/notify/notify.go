package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/venue-reservation/pkg/mailer"
	"github.com/Astemirdum/venue-reservation/reservation/internal/model"
)

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationConfirmed EventType = "reservation.confirmed"
)

type Event struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	ReservationID int       `json:"reserva_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newEvent(t EventType, reservationID int) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          t,
		ReservationID: reservationID,
		OccurredAt:    time.Now().UTC(),
	}
}

// Source loads what a notification needs to render.
type Source interface {
	GetReservationSummary(ctx context.Context, id int) (model.ReservationSummary, error)
	ListReservationServices(ctx context.Context, reservationIDs ...int) ([]model.ReservationService, error)
	ListAdminEmails(ctx context.Context) ([]string, error)
}

// Dispatcher turns events into emails.
type Dispatcher struct {
	src    Source
	mailer mailer.Mailer
	log    *zap.Logger
}

func NewDispatcher(src Source, m mailer.Mailer, log *zap.Logger) *Dispatcher {
	return &Dispatcher{src: src, mailer: m, log: log.Named("dispatcher")}
}

type MailLine struct {
	Description string
	Price       float64
}

type MailData struct {
	ReservationID int
	ClientName    string
	ClientEmail   string
	Date          string
	Venue         string
	Address       string
	Slot          string
	Theme         string
	Services      []MailLine
	VenuePrice    float64
	Total         float64
}

// Handle sends every mail the event calls for. A failed recipient is logged
// and does not stop the others.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) error {
	data, err := d.mailData(ctx, ev.ReservationID)
	if err != nil {
		return err
	}

	var msgs []mailer.Message
	switch ev.Type {
	case EventReservationCreated:
		admins, err := d.src.ListAdminEmails(ctx)
		if err != nil {
			return err
		}
		for _, to := range admins {
			msgs = append(msgs, mailer.Message{
				To:       to,
				Subject:  fmt.Sprintf("Nueva reserva #%d - Sistema de Reservas", data.ReservationID),
				Template: mailer.TemplateNewReservationAdmin,
				Data:     data,
			})
		}
	case EventReservationConfirmed:
		msgs = append(msgs, mailer.Message{
			To:       data.ClientEmail,
			Subject:  fmt.Sprintf("Reserva #%d confirmada", data.ReservationID),
			Template: mailer.TemplateReservationConfirmClient,
			Data:     data,
		})
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}

	for _, msg := range msgs {
		if err := d.mailer.Send(ctx, msg); err != nil {
			d.log.Warn("send mail",
				zap.String("event_id", ev.ID),
				zap.String("to", msg.To),
				zap.Error(err))
			continue
		}
		d.log.Debug("mail sent", zap.String("event_id", ev.ID), zap.String("to", msg.To))
	}
	return nil
}

func (d *Dispatcher) mailData(ctx context.Context, reservationID int) (MailData, error) {
	sum, err := d.src.GetReservationSummary(ctx, reservationID)
	if err != nil {
		return MailData{}, err
	}
	lines, err := d.src.ListReservationServices(ctx, reservationID)
	if err != nil {
		return MailData{}, err
	}
	data := MailData{
		ReservationID: sum.ID,
		ClientName:    sum.ClientName,
		ClientEmail:   sum.ClientEmail,
		Date:          sum.Date.Format("02/01/2006"),
		Venue:         sum.VenueTitle,
		Address:       sum.VenueAddress,
		Slot:          sum.StartsAt + " - " + sum.EndsAt,
		VenuePrice:    sum.VenuePrice,
		Total:         sum.TotalPrice,
		Services:      make([]MailLine, 0, len(lines)),
	}
	if sum.Theme != nil {
		data.Theme = *sum.Theme
	}
	for _, l := range lines {
		data.Services = append(data.Services, MailLine{Description: l.Description, Price: l.Price})
	}
	return data, nil
}
