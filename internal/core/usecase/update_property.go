package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
	"nhadat-service/internal/vntext"
)

type UpdatePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewUpdatePropertyUseCase(storage port.PropertyStoragePort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage}
}

// Execute applies an edit to an existing listing. Only the owner may edit;
// identity, posting time and VIP tier are never taken from the request.
func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, userID uuid.UUID, edit *domain.Property) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": edit.ID,
		"user_id":     userID,
	})

	current, err := uc.storage.GetByID(ctx, edit.ID)
	if err != nil {
		logger.Error("Failed to load property for update", err, nil)
		return nil, err
	}
	if current.OwnerID != userID {
		logger.Warn("Rejected edit by non-owner", port.Fields{"owner_id": current.OwnerID})
		return nil, domain.ErrNotOwner
	}

	updated := *edit
	updated.OwnerID = current.OwnerID
	updated.PostedAt = current.PostedAt
	updated.VipTier = current.VipTier
	updated.Images = current.Images
	updated.DistrictSlug = vntext.Slugify(updated.District)

	if err := uc.storage.Update(ctx, &updated); err != nil {
		logger.Error("Failed to update property", err, nil)
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	logger.Info("Property updated", nil)
	return &updated, nil
}
