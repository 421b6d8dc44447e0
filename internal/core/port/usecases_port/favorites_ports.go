package usecases_port

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/core/domain"
)

type AddToFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID, propertyID uuid.UUID) error
}

type RemoveFromFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID, propertyID uuid.UUID) error
}

type GetUserFavoriteIdsUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type GetUserFavoritesUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedProperties, error)
}
