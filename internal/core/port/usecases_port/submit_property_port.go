package usecases_port

import (
	"context"

	"nhadat-service/internal/core/domain"
)

// SubmitPropertyUseCasePort publishes a new listing. The district slug and
// posting timestamp are assigned by the use case, not the caller.
type SubmitPropertyUseCasePort interface {
	Execute(ctx context.Context, draft *domain.Property) (*domain.Property, error)
}
