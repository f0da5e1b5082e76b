package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	mu    sync.Mutex
	ch    Channel
	queue string
}

// NewAMQPPublisher declares the queue up front so publishing never has to.
func NewAMQPPublisher(ch Channel, queue string) (*AMQPPublisher, error) {
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return nil, errs.Wrapf(err, "failed to declare queue %s", queue)
	}
	return &AMQPPublisher{ch: ch, queue: queue}, nil
}

// Dial opens a connection and channel for the publisher. The returned cleanup
// closes both.
func Dial(url, queue string) (*AMQPPublisher, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, errs.Wrap(err, "failed to open rabbitmq channel")
	}

	pub, err := NewAMQPPublisher(ch, queue)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if err := ch.Close(); err != nil {
			slog.Warn("failed to close rabbitmq channel", "error", err)
		}
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close rabbitmq connection", "error", err)
		}
	}
	return pub, cleanup, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event shared.SeatEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal seat event")
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return errs.Wrapf(err, "failed to publish %s", event.Type)
	}
	return nil
}
