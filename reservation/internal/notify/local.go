package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// LocalNotifier dispatches events on background goroutines of this process.
type LocalNotifier struct {
	d       *Dispatcher
	timeout time.Duration
	log     *zap.Logger
	wg      sync.WaitGroup
}

func NewLocalNotifier(d *Dispatcher, log *zap.Logger) *LocalNotifier {
	return &LocalNotifier{d: d, timeout: 30 * time.Second, log: log.Named("notifier")}
}

func (n *LocalNotifier) ReservationCreated(_ context.Context, reservationID int) {
	n.dispatch(newEvent(EventReservationCreated, reservationID))
}

func (n *LocalNotifier) ReservationConfirmed(_ context.Context, reservationID int) {
	n.dispatch(newEvent(EventReservationConfirmed, reservationID))
}

// the request context is gone by the time the mail goes out
func (n *LocalNotifier) dispatch(ev Event) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.d.Handle(ctx, ev); err != nil {
			n.log.Error("notification dropped",
				zap.String("event_id", ev.ID),
				zap.String("type", string(ev.Type)),
				zap.Int("reserva_id", ev.ReservationID),
				zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (n *LocalNotifier) Wait() {
	n.wg.Wait()
}
