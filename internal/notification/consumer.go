package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/storewise/storefront-backend/internal/customer"
)

// CustomerStore is the slice of the customer repository the mailer needs.
type CustomerStore interface {
	GetByID(id int) (customer.Customer, error)
}

// Sender delivers a single email. See SMTPSender.
type Sender interface {
	Send(to, subject, body string) error
}

// Consumer reads order events and emails the affected customer. Messages
// are committed even when delivery fails: a broken address must not wedge
// the partition.
type Consumer struct {
	log       *slog.Logger
	reader    *kafka.Reader
	customers CustomerStore
	sender    Sender
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, customers CustomerStore, sender Sender) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{log: log, reader: r, customers: customers, sender: sender}
}

// Run blocks until ctx is cancelled or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.log.Error("unmarshal failed", "err", err)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.handle(event); err != nil {
			c.log.Error("order email failed", "kind", event.Kind, "order_id", event.OrderID, "err", err)
		} else {
			c.log.Info("order email sent", "kind", event.Kind, "order_id", event.OrderID)
		}
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

func (c *Consumer) handle(event Event) error {
	cust, err := c.customers.GetByID(event.CustomerID)
	if err != nil {
		return fmt.Errorf("customer lookup failed: %w", err)
	}

	subject, body := composeEmail(event, cust)
	return c.sender.Send(cust.Email, subject, body)
}

func composeEmail(event Event, cust customer.Customer) (subject, body string) {
	total := fmt.Sprintf("%d.%02d", event.TotalCents/100, event.TotalCents%100)
	switch event.Kind {
	case "order.created":
		subject = fmt.Sprintf("Order %s confirmed", event.PublicID)
		body = fmt.Sprintf("Hi %s,\r\n\r\nWe received your order %s for a total of %s.\r\n", cust.FirstName, event.PublicID, total)
	case "order.cancelled":
		subject = fmt.Sprintf("Order %s cancelled", event.PublicID)
		body = fmt.Sprintf("Hi %s,\r\n\r\nYour order %s has been cancelled and the items returned to stock.\r\n", cust.FirstName, event.PublicID)
	case "order.completed":
		subject = fmt.Sprintf("Order %s completed", event.PublicID)
		body = fmt.Sprintf("Hi %s,\r\n\r\nYour order %s is complete. Thank you for shopping with us.\r\n", cust.FirstName, event.PublicID)
	default:
		subject = fmt.Sprintf("Update on order %s", event.PublicID)
		body = fmt.Sprintf("Hi %s,\r\n\r\nThere is an update on your order %s.\r\n", cust.FirstName, event.PublicID)
	}
	return subject, body
}
