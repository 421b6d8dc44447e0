package usecase

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/port"
)

type RemoveFromFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewRemoveFromFavoritesUseCase(repo port.FavoritesRepositoryPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{repo: repo}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "RemoveFromFavorites",
		"user_id":     userID,
		"property_id": propertyID,
	})

	if err := uc.repo.Remove(ctx, userID, propertyID); err != nil {
		logger.Error("Failed to remove favorite", err, nil)
		return err
	}
	logger.Debug("Favorite removed", nil)
	return nil
}
