package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPEmitter publishes events to a RabbitMQ queue. It dials per publish and
// never panics; any error is logged and returned so the caller can choose to
// ignore it. Messages are marked persistent.
type AMQPEmitter struct {
	URL   string
	Queue string
}

// NewAMQPEmitter creates an emitter for the given broker URL and queue.
func NewAMQPEmitter(url, queue string) *AMQPEmitter {
	return &AMQPEmitter{URL: url, Queue: queue}
}

// Emit implements Emitter.
func (e *AMQPEmitter) Emit(ctx context.Context, ev Event) error {
	conn, err := amqp.Dial(e.URL)
	if err != nil {
		slog.Warn("amqp: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		slog.Warn("amqp: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(e.Queue, true, false, false, false, nil); err != nil {
		slog.Warn("amqp: queue declare failed", "queue", e.Queue, "err", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("amqp: marshal event failed", "err", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", e.Queue, false, false, pub); err != nil {
		slog.Warn("amqp: publish failed", "queue", e.Queue, "err", err)
		return err
	}
	return nil
}
