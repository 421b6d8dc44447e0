package port

import (
	"context"

	"github.com/google/uuid"
)

// FavoritesRepositoryPort persists the per-user saved-listings set.
type FavoritesRepositoryPort interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	FindIdsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
