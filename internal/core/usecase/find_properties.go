package usecase

import (
	"context"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/filter"
	"nhadat-service/internal/core/port"
)

// FindPropertiesUseCase loads the active listings and runs the pure filter
// engine over them; pagination slices the already-ordered result so pages
// stay consistent for a fixed filter state.
type FindPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewFindPropertiesUseCase(storage port.PropertyStoragePort) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{storage: storage}
}

func (uc *FindPropertiesUseCase) Execute(ctx context.Context, state filter.State, limit, offset int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "FindProperties",
		"active_filters": filter.ActiveCount(state),
		"sort":           state.SortBy,
		"limit":          limit,
		"offset":         offset,
	})

	all, err := uc.storage.ListActive(ctx)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	visible := filter.Apply(all, state)

	page := paginate(visible, limit, offset)
	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   len(visible),
		"items_on_page": len(page),
	})

	return &domain.PaginatedProperties{Objects: page, TotalCount: len(visible)}, nil
}

func paginate(props []domain.Property, limit, offset int) []domain.Property {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(props) {
		return []domain.Property{}
	}
	end := len(props)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return props[offset:end]
}
