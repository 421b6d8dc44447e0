package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
	"nhadat-service/internal/vntext"
)

// SubmitPropertyUseCase publishes a new listing. The district slug is
// normalized here, at ingestion; filters later match on the slug alone, so
// a record that skips this step would silently drop out of district
// filters.
type SubmitPropertyUseCase struct {
	storage port.PropertyStoragePort
	events  port.ListingEventsPort
}

func NewSubmitPropertyUseCase(storage port.PropertyStoragePort, events port.ListingEventsPort) *SubmitPropertyUseCase {
	return &SubmitPropertyUseCase{storage: storage, events: events}
}

func (uc *SubmitPropertyUseCase) Execute(ctx context.Context, draft *domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SubmitProperty",
		"owner_id": draft.OwnerID,
	})

	p := *draft
	p.ID = uuid.New()
	p.DistrictSlug = vntext.Slugify(p.District)
	p.PostedAt = time.Now().UTC()

	if err := uc.storage.Insert(ctx, &p); err != nil {
		logger.Error("Failed to insert property", err, nil)
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}

	// Event delivery is best-effort; the listing is already persisted.
	if err := uc.events.PublishPropertyCreated(ctx, &p); err != nil {
		logger.Warn("Failed to publish property.created event", port.Fields{"error": err.Error()})
	}

	logger.Info("Property submitted", port.Fields{"property_id": p.ID, "district_slug": p.DistrictSlug})
	return &p, nil
}
