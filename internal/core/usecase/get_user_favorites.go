package usecase

import (
	"context"

	"github.com/google/uuid"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
)

type GetUserFavoriteIdsUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewGetUserFavoriteIdsUseCase(repo port.FavoritesRepositoryPort) *GetUserFavoriteIdsUseCase {
	return &GetUserFavoriteIdsUseCase{repo: repo}
}

func (uc *GetUserFavoriteIdsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := uc.repo.FindIdsByUser(ctx, userID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load favorite ids", err, port.Fields{"user_id": userID})
		return nil, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

// GetUserFavoritesUseCase resolves the saved ids into full listing cards.
type GetUserFavoritesUseCase struct {
	repo    port.FavoritesRepositoryPort
	storage port.PropertyStoragePort
}

func NewGetUserFavoritesUseCase(repo port.FavoritesRepositoryPort, storage port.PropertyStoragePort) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{repo: repo, storage: storage}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetUserFavorites",
		"user_id":  userID,
		"limit":    limit,
		"offset":   offset,
	})

	ids, err := uc.repo.FindIdsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to load favorite ids", err, nil)
		return nil, err
	}
	if len(ids) == 0 {
		return &domain.PaginatedProperties{Objects: []domain.Property{}}, nil
	}

	objects, err := uc.storage.GetByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to load favorite properties", err, nil)
		return nil, err
	}

	page := paginate(objects, limit, offset)
	logger.Info("Favorites loaded", port.Fields{"total": len(objects), "items_on_page": len(page)})
	return &domain.PaginatedProperties{Objects: page, TotalCount: len(objects)}, nil
}
