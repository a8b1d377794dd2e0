package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type eventHandler func(ctx context.Context, ev Event) error

// Consumer is the consumer group handler that mails published events.
type Consumer struct {
	handle  eventHandler
	timeout time.Duration
	log     *zap.Logger
	ready   chan bool
	once    sync.Once
}

func NewConsumer(handle eventHandler, log *zap.Logger) *Consumer {
	return &Consumer{
		handle:  handle,
		timeout: 30 * time.Second,
		log:     log.Named("consumer"),
		ready:   make(chan bool),
	}
}

// Ready is closed once the first session is set up.
func (c *Consumer) Ready() <-chan bool {
	return c.ready
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	c.once.Do(func() { close(c.ready) })
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				c.log.Warn("message channel was closed")
				return nil
			}
			c.process(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// process never retries, a bad or failed event is logged and committed.
func (c *Consumer) process(ctx context.Context, message *sarama.ConsumerMessage) {
	var ev Event
	if err := json.Unmarshal(message.Value, &ev); err != nil {
		c.log.Error("decode event", zap.Error(err), zap.Int64("offset", message.Offset))
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.handle(ctx, ev); err != nil {
		c.log.Error("handle event",
			zap.String("event_id", ev.ID),
			zap.Int("reserva_id", ev.ReservationID),
			zap.Error(err))
		return
	}
	c.log.Debug("event handled",
		zap.String("event_id", ev.ID),
		zap.String("topic", message.Topic),
		zap.Time("timestamp", message.Timestamp))
}
