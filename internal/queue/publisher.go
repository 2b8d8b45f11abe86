package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ListingsQueue is the durable queue listing events are routed to.
const ListingsQueue = "directory.listings"

// Publisher delivers listing events.
type Publisher interface {
	Publish(ctx context.Context, ev ListingEvent) error
}

// AMQPPublisher publishes each event on its own short-lived connection.
// Mutations are infrequent form submissions, so nothing is pooled.
type AMQPPublisher struct {
	url    string
	queue  string
	logger *slog.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &AMQPPublisher{url: url, queue: ListingsQueue, logger: logger}
}

// Publish sends ev to the listings queue as a persistent JSON message with
// a fresh message id.  Errors are logged and returned so the caller can
// choose to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, ev ListingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("rabbitmq dial failed", "err", err)
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("rabbitmq channel open failed", "err", err)
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.logger.Warn("rabbitmq queue declare failed", "queue", p.queue, "err", err)
		return fmt.Errorf("declare queue: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         ev.Kind,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		p.logger.Warn("rabbitmq publish failed", "kind", ev.Kind, "err", err)
		return fmt.Errorf("publish: %w", err)
	}
	p.logger.Debug("listing event published", "kind", ev.Kind, "id", ev.ID, "message_id", msg.MessageId)
	return nil
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, ListingEvent) error { return nil }
