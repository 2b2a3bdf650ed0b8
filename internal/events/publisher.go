// Package events publishes booking events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"padelfinder/internal/models"
)

// Routing keys on the booking exchange.
const (
	RKBookingCreated = "booking.created"
)

// BookingCreated is the payload of RKBookingCreated.
type BookingCreated struct {
	BookingID  string    `json:"booking_id"`
	CourtID    string    `json:"court_id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	TimeSlot   string    `json:"time_slot"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingCreated builds the event for a stored booking.
func NewBookingCreated(b models.Booking, at time.Time) BookingCreated {
	return BookingCreated{
		BookingID:  b.ID,
		CourtID:    b.CourtID,
		UserID:     b.UserID,
		Date:       b.Date,
		TimeSlot:   b.TimeSlot,
		Status:     string(b.Status),
		OccurredAt: at.UTC(),
	}
}

// Publisher writes JSON messages to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher dials url and declares exchange as a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishJSON marshals v and publishes it under key.
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

// BookingCreated announces a new booking.
func (p *Publisher) BookingCreated(ctx context.Context, b models.Booking) error {
	return p.PublishJSON(ctx, RKBookingCreated, NewBookingCreated(b, time.Now()))
}

// Close shuts the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Nop discards events. It is used when no broker is configured.
type Nop struct{}

func (Nop) BookingCreated(context.Context, models.Booking) error { return nil }
func (Nop) Close() error                                         { return nil }
