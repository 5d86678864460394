package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/dining-sim/internal/queue"
)

// Publisher publishes domain events to RabbitMQ. Each publish dials its
// own connection; runs are infrequent enough that pooling is not needed.
type Publisher struct {
	URL string
	Log *log.Logger
}

// NewPublisher returns nil when url is empty, which disables publishing.
func NewPublisher(url string, logger *log.Logger) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{URL: url, Log: logger}
}

// PublishSimulationCompleted publishes event to the simulation.completed
// queue as a persistent JSON message. Errors are logged and returned so the
// caller can choose to ignore them.
func (p *Publisher) PublishSimulationCompleted(ctx context.Context, event q.SimulationCompletedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.SimulationCompletedQueue, // name
		true,                       // durable
		false,                      // autoDelete
		false,                      // exclusive
		false,                      // noWait
		nil,                        // args
	); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", "err", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                         // default exchange
		q.SimulationCompletedQueue, // routing key = queue name
		false,                      // mandatory
		false,                      // immediate
		pub,
	); err != nil {
		p.Log.Warn("rabbitmq: publish failed", "err", err)
		return err
	}
	return nil
}
