package usecase

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/port"
)

type AddToFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewAddToFavoritesUseCase(repo port.FavoritesRepositoryPort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{repo: repo}
}

func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "AddToFavorites",
		"user_id":     userID,
		"property_id": propertyID,
	})

	if err := uc.repo.Add(ctx, userID, propertyID); err != nil {
		logger.Error("Failed to add favorite", err, nil)
		return err
	}
	logger.Debug("Favorite added", nil)
	return nil
}
