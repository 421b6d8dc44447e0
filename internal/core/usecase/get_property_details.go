package usecase

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
)

type GetPropertyDetailsUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertyDetailsUseCase(storage port.PropertyStoragePort) *GetPropertyDetailsUseCase {
	return &GetPropertyDetailsUseCase{storage: storage}
}

func (uc *GetPropertyDetailsUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "GetPropertyDetails",
		"property_id": id,
	})

	p, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		logger.Error("Failed to load property", err, nil)
		return nil, err
	}

	logger.Debug("Property loaded", nil)
	return p, nil
}
