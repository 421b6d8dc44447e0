package port

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/core/domain"
)

// PropertyStoragePort is the outbound port for the listings datastore.
type PropertyStoragePort interface {
	// ListActive returns all published listings; the filter engine derives
	// the visible subset in memory.
	ListActive(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error)
	Insert(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, p *domain.Property) error
	AddImage(ctx context.Context, propertyID uuid.UUID, url string) error
}
