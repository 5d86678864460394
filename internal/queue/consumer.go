package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer listens on the simulation.completed queue and appends one line
// per finished run to <LogDir>/simulation.log.
type Consumer struct {
	URL    string
	LogDir string
	Log    *log.Logger
}

// Start runs a reconnect loop until ctx is cancelled. Processing errors are
// logged and the offending message is rejected so the loop keeps going.
func (c *Consumer) Start(ctx context.Context) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("simulation-consumer: dial failed", "err", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.Warn("simulation-consumer: consume loop ended, reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errors.Wrap(err, "channel open")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn("simulation-consumer: set QoS failed", "err", err)
	}
	if _, err := ch.QueueDeclare(SimulationCompletedQueue, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "queue declare")
	}
	msgs, err := ch.Consume(SimulationCompletedQueue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "queue consume")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.Log.Error("simulation-consumer: handle message failed", "err", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and appends its line to the log file.
func (c *Consumer) HandleMessage(body []byte) error {
	var ev SimulationCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return errors.Wrap(err, "unmarshal")
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return errors.Wrap(err, "mkdir logs")
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, "simulation.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return errors.Wrap(err, "write log")
	}
	return nil
}

// FormatLine renders ev as a single human readable line.
func FormatLine(ev SimulationCompletedEvent) string {
	return fmt.Sprintf("[%s] Simulation completed | run_id=%s | seed=%d | tables=%d | seats=%d | time=%.1f | arrived=%d | served=%d | waiting=%d | mean_wait=%.2f | max_wait=%.2f\n",
		ev.CompletedAt, ev.RunID, ev.Seed, ev.Tables, ev.Seats, ev.SimulatedTime,
		ev.ArrivedPatrons, ev.ServedPatrons, ev.WaitingPatrons, ev.MeanWait, ev.MaxWait)
}
