package usecases_port

import (
	"context"

	"nhadat-service/internal/core/domain"
)

// ValidateImageUseCasePort gates one image-upload attempt. Every outcome,
// including failures, is returned as data; implementations never panic
// across this boundary.
type ValidateImageUseCasePort interface {
	Execute(ctx context.Context, upload domain.ImageUpload) *domain.ImageValidationResult
}
