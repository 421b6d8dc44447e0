package rabbitmq

import (
	"context"

	"nhadat-service/internal/core/domain"
)

// NoopListingEventsAdapter is used when event publishing is disabled.
type NoopListingEventsAdapter struct{}

func NewNoopListingEventsAdapter() *NoopListingEventsAdapter {
	return &NoopListingEventsAdapter{}
}

func (a *NoopListingEventsAdapter) PublishPropertyCreated(context.Context, *domain.Property) error {
	return nil
}

func (a *NoopListingEventsAdapter) Close() error { return nil }
