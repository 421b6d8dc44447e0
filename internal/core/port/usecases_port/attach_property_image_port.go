package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/core/domain"
)

// AttachPropertyImageUseCasePort runs the content gate over an already
// authenticated upload and, when it passes, stores the object and records
// its public URL on the listing.
type AttachPropertyImageUseCasePort interface {
	Execute(ctx context.Context, userID, propertyID uuid.UUID, upload domain.ImageUpload) (string, *domain.ImageValidationResult, error)
}
