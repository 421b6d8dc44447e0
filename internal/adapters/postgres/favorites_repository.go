package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/port"
)

// PostgresFavoritesRepository implements FavoritesRepositoryPort for PostgreSQL.
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

func (r *PostgresFavoritesRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Add",
		"user_id":     userID,
		"property_id": propertyID,
	})

	query := `INSERT INTO user_favorites (user_id, property_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		// A unique violation means the pair already exists; saving twice is
		// not an error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Favorite already exists, operation considered successful.", nil)
			return nil
		}
		logger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	logger.Debug("Successfully added to favorites.", nil)
	return nil
}

func (r *PostgresFavoritesRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Remove",
		"user_id":     userID,
		"property_id": propertyID,
	})

	query := `DELETE FROM user_favorites WHERE user_id = $1 AND property_id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		logger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Warn("Attempted to remove a favorite that did not exist.", nil)
	} else {
		logger.Debug("Successfully removed from favorites.", nil)
	}
	return nil
}

func (r *PostgresFavoritesRepository) FindIdsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    "FindIdsByUser",
		"user_id":   userID,
	})

	query := `SELECT property_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Failed to query favorite IDs", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			logger.Error("Failed to scan favorite ID row", err, nil)
			return nil, fmt.Errorf("failed to scan favorite ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error during favorite IDs iteration", err, nil)
		return nil, fmt.Errorf("error during favorite IDs iteration: %w", err)
	}

	return ids, nil
}
