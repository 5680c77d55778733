// Package notification carries order lifecycle events over Kafka to the
// mailer worker.
package notification

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"github.com/storewise/storefront-backend/internal/order"
)

// Event is the wire payload for an order lifecycle message.
type Event struct {
	Kind       string `json:"kind"`
	OrderID    int    `json:"orderId"`
	PublicID   string `json:"publicId"`
	CustomerID int    `json:"customerId"`
	TotalCents int64  `json:"totalCents"`
	CreatedAt  string `json:"createdAt"`
}

// Producer writes order events to a single topic, keyed by order id so
// events for one order stay in partition order.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, kind string, o order.Order) error {
	value, err := json.Marshal(Event{
		Kind:       kind,
		OrderID:    o.ID,
		PublicID:   o.PublicID,
		CustomerID: o.CustomerID,
		TotalCents: o.TotalCents,
		CreatedAt:  o.CreatedAt,
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(o.ID)),
		Value: value,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
