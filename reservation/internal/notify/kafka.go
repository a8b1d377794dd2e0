package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// KafkaNotifier publishes events so any replica's consumer can mail them.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
	wg       sync.WaitGroup
}

func NewKafkaNotifier(producer sarama.SyncProducer, topic string, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic, log: log.Named("kafka-notifier")}
}

func (n *KafkaNotifier) ReservationCreated(_ context.Context, reservationID int) {
	n.publish(newEvent(EventReservationCreated, reservationID))
}

func (n *KafkaNotifier) ReservationConfirmed(_ context.Context, reservationID int) {
	n.publish(newEvent(EventReservationConfirmed, reservationID))
}

func (n *KafkaNotifier) publish(ev Event) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		value, err := json.Marshal(ev)
		if err != nil {
			n.log.Error("marshal event", zap.Error(err))
			return
		}
		partition, offset, err := n.producer.SendMessage(&sarama.ProducerMessage{
			Topic: n.topic,
			Key:   sarama.StringEncoder(strconv.Itoa(ev.ReservationID)),
			Value: sarama.ByteEncoder(value),
		})
		if err != nil {
			n.log.Error("publish event",
				zap.String("event_id", ev.ID),
				zap.Int("reserva_id", ev.ReservationID),
				zap.Error(err))
			return
		}
		n.log.Debug("event published",
			zap.String("event_id", ev.ID),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
	}()
}

func (n *KafkaNotifier) Wait() {
	n.wg.Wait()
}

func (n *KafkaNotifier) Close() error {
	n.wg.Wait()
	return n.producer.Close()
}
