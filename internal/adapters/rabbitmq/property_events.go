package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
)

const (
	exchangeName = "listing.events"
	routingKey   = "property.created"
)

// propertyCreatedEventDTO is the wire shape of the property.created event.
type propertyCreatedEventDTO struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"ownerId"`
	Title        string   `json:"title"`
	District     string   `json:"district"`
	DistrictSlug string   `json:"districtSlug"`
	City         string   `json:"city"`
	Price        int64    `json:"price"`
	Area         float64  `json:"area"`
	PropertyType string   `json:"propertyType"`
	VipTier      string   `json:"vipTier,omitempty"`
	PostedAt     string   `json:"postedAt"`
	Images       []string `json:"images,omitempty"`
}

// RabbitMQListingEventsAdapter publishes listing lifecycle events to a
// topic exchange. It implements ListingEventsPort.
type RabbitMQListingEventsAdapter struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewRabbitMQListingEventsAdapter(amqpURL string) (*RabbitMQListingEventsAdapter, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchangeName, err)
	}

	return &RabbitMQListingEventsAdapter{conn: conn, channel: channel}, nil
}

func (a *RabbitMQListingEventsAdapter) PublishPropertyCreated(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "RabbitMQListingEventsAdapter",
		"routing_key": routingKey,
		"property_id": p.ID,
	})

	dto := propertyCreatedEventDTO{
		ID:           p.ID.String(),
		OwnerID:      p.OwnerID.String(),
		Title:        p.Title,
		District:     p.District,
		DistrictSlug: p.DistrictSlug,
		City:         p.City,
		Price:        p.PriceValue,
		Area:         p.AreaValue,
		PropertyType: p.PropertyType,
		VipTier:      string(p.VipTier),
		PostedAt:     p.PostedAt.UTC().Format(time.RFC3339),
		Images:       p.Images,
	}

	body, err := json.Marshal(dto)
	if err != nil {
		logger.Error("Failed to marshal event to JSON", err, nil)
		return fmt.Errorf("failed to marshal property.created event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    "PropertyCreatedEvent",
			"event-version": "1.0.0",
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.channel.PublishWithContext(publishCtx, exchangeName, routingKey, false, false, msg); err != nil {
		logger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("failed to publish property.created event: %w", err)
	}

	logger.Info("Published property.created event", nil)
	return nil
}

func (a *RabbitMQListingEventsAdapter) Close() error {
	if err := a.channel.Close(); err != nil {
		a.conn.Close()
		return err
	}
	return a.conn.Close()
}
