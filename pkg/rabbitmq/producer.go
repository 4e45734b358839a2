// Package rabbitmq publishes domain events to a durable topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher sends one JSON event under routingKey.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
	Close() error
}

// EventProducer publishes over a single AMQP channel, reopening it once when
// a publish fails.
type EventProducer struct {
	exchange string
	log      *slog.Logger

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewEventProducer dials amqpURL and declares exchange.
func NewEventProducer(amqpURL, exchange string, log *slog.Logger) (*EventProducer, error) {
	clean, err := SanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}
	if exchange == "" {
		return nil, errors.New("rabbitmq: exchange is required")
	}

	conn, err := amqp091.DialConfig(clean, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	p := &EventProducer{exchange: exchange, log: log.With("component", "rabbitmq_producer"), conn: conn}
	if err := p.reopen(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

// reopen replaces the channel and declares the exchange. Callers hold mu or
// own p exclusively.
func (p *EventProducer) reopen() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("rabbitmq: declare exchange %s: %w", p.exchange, err)
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	p.channel = ch
	return nil
}

func (p *EventProducer) Publish(ctx context.Context, routingKey string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal %s: %w", routingKey, err)
	}

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err == nil {
		return nil
	}

	p.log.Warn("publish failed, reopening channel", slog.String("routing_key", routingKey), slog.Any("error", err))
	if rerr := p.reopen(); rerr != nil {
		return errors.Join(err, rerr)
	}
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

func (p *EventProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

// Nop drops every event. It stands in when RABBITMQ_URL is empty or the
// broker is unreachable at startup.
type Nop struct {
	Log *slog.Logger
}

func (n Nop) Publish(_ context.Context, routingKey string, _ any) error {
	if n.Log != nil {
		n.Log.Debug("event publish skipped", slog.String("routing_key", routingKey))
	}
	return nil
}

func (Nop) Close() error { return nil }

// SanitizeURL trims quotes and whitespace and checks the amqp scheme.
func SanitizeURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), `"'`)
	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("rabbitmq: parse url: %w", err)
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("rabbitmq: scheme must be amqp:// or amqps://")
	}
	return clean, nil
}
