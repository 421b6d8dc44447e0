package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/core/domain"
)

type GetPropertyDetailsUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}
