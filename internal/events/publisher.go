// Package events publishes booking lifecycle notifications on Redis
// pub/sub. Clients poll the API for data; the channel only carries a
// refresh hint, so publishing is strictly best effort.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dbertella/bbs/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Channel is the pub/sub channel booking events are published on.
const Channel = "booking-events"

// Event represents a domain event
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Publisher handles publishing events. A nil Publisher is valid and
// publishes nothing, for deployments without Redis.
type Publisher struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewPublisher connects to Redis and returns an event publisher.
func NewPublisher(url string, log zerolog.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Publisher{client: client, log: log}, nil
}

// Close closes the underlying Redis connection.
func (p *Publisher) Close() error {
	if p == nil || p.client == nil {
		return nil
	}
	return p.client.Close()
}

func (p *Publisher) publish(ctx context.Context, eventType string, payload interface{}) {
	if p == nil || p.client == nil {
		return
	}

	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("type", eventType).Msg("Failed to marshal event")
		return
	}

	if err := p.client.Publish(ctx, Channel, data).Err(); err != nil {
		p.log.Error().Err(err).Str("type", eventType).Msg("Failed to publish event")
	}
}

// BookingCreated publishes a booking created event
func (p *Publisher) BookingCreated(ctx context.Context, booking *models.Booking) {
	p.publish(ctx, "booking_created", map[string]interface{}{
		"booking_id": booking.ID,
		"house":      booking.House,
		"user_id":    booking.UserID,
	})
}

// BookingUpdated publishes a booking updated event
func (p *Publisher) BookingUpdated(ctx context.Context, booking *models.Booking) {
	p.publish(ctx, "booking_updated", map[string]interface{}{
		"booking_id": booking.ID,
		"house":      booking.House,
		"user_id":    booking.UserID,
	})
}

// BookingDeleted publishes a booking deleted event
func (p *Publisher) BookingDeleted(ctx context.Context, bookingID, userID string) {
	p.publish(ctx, "booking_deleted", map[string]interface{}{
		"booking_id": bookingID,
		"user_id":    userID,
	})
}
