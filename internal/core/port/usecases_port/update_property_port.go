package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/core/domain"
)

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, p *domain.Property) (*domain.Property, error)
}
