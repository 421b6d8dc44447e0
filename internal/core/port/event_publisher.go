package port

import (
	"context"

	"nhadat-service/internal/core/domain"
)

// ListingEventsPort announces listing lifecycle changes to downstream
// consumers (search indexing, notifications). Publishing is best-effort;
// a failed publish must not fail the originating request.
type ListingEventsPort interface {
	PublishPropertyCreated(ctx context.Context, p *domain.Property) error
	Close() error
}
