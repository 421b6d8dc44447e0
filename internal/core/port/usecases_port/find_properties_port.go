package usecases_port

import (
	"context"

	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/filter"
)

type FindPropertiesUseCasePort interface {
	Execute(ctx context.Context, state filter.State, limit, offset int) (*domain.PaginatedProperties, error)
}
