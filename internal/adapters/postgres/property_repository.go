package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nhadat-service/internal/contextkeys"
	"nhadat-service/internal/core/domain"
	"nhadat-service/internal/core/port"
)

// PostgresPropertyRepository implements PropertyStoragePort for PostgreSQL.
type PostgresPropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPropertyRepository(pool *pgxpool.Pool) (*PostgresPropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPropertyRepository{pool: pool}, nil
}

const propertyColumns = `
	p.id, p.owner_id, p.title, p.description,
	p.street, p.ward, p.district, p.city, p.district_slug,
	p.price_value, p.area_value,
	p.bedrooms, p.bathrooms, p.floors,
	p.property_type, p.legal_status, p.interior, p.direction, p.balcony_direction,
	p.vip_tier, p.posted_at,
	COALESCE(array_agg(i.url ORDER BY i.position) FILTER (WHERE i.url IS NOT NULL), '{}') AS images`

const propertyGroupBy = ` GROUP BY p.id`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description,
		&p.Street, &p.Ward, &p.District, &p.City, &p.DistrictSlug,
		&p.PriceValue, &p.AreaValue,
		&p.Bedrooms, &p.Bathrooms, &p.Floors,
		&p.PropertyType, &p.LegalStatus, &p.Interior, &p.Direction, &p.BalconyDirection,
		&p.VipTier, &p.PostedAt,
		&p.Images,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProperties(rows pgx.Rows) ([]domain.Property, error) {
	defer rows.Close()

	var result []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}
	return result, nil
}

func (r *PostgresPropertyRepository) ListActive(ctx context.Context) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPropertyRepository",
		"method":    "ListActive",
	})

	query := `SELECT ` + propertyColumns + `
		FROM properties p
		LEFT JOIN property_images i ON i.property_id = p.id
		WHERE p.active` + propertyGroupBy

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Failed to query properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}

	result, err := collectProperties(rows)
	if err != nil {
		logger.Error("Failed to collect properties", err, nil)
		return nil, err
	}

	logger.Debug("Loaded active properties", port.Fields{"count": len(result)})
	return result, nil
}

func (r *PostgresPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresPropertyRepository",
		"method":      "GetByID",
		"property_id": id,
	})

	query := `SELECT ` + propertyColumns + `
		FROM properties p
		LEFT JOIN property_images i ON i.property_id = p.id
		WHERE p.id = $1` + propertyGroupBy

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn("Property not found", nil)
			return nil, domain.ErrPropertyNotFound
		}
		logger.Error("Failed to get property", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

func (r *PostgresPropertyRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
	if len(ids) == 0 {
		return []domain.Property{}, nil
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPropertyRepository",
		"method":    "GetByIDs",
		"ids_count": len(ids),
	})

	query := `SELECT ` + propertyColumns + `
		FROM properties p
		LEFT JOIN property_images i ON i.property_id = p.id
		WHERE p.id = ANY($1)` + propertyGroupBy + `
		ORDER BY p.posted_at DESC`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		logger.Error("Failed to query properties by ids", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query properties by ids: %w", err)
	}

	result, err := collectProperties(rows)
	if err != nil {
		logger.Error("Failed to collect properties", err, nil)
		return nil, err
	}
	return result, nil
}

func (r *PostgresPropertyRepository) Insert(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresPropertyRepository",
		"method":      "Insert",
		"property_id": p.ID,
	})

	query := `
		INSERT INTO properties (
			id, owner_id, title, description,
			street, ward, district, city, district_slug,
			price_value, area_value,
			bedrooms, bathrooms, floors,
			property_type, legal_status, interior, direction, balcony_direction,
			vip_tier, posted_at, active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, TRUE
		)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.OwnerID, p.Title, p.Description,
		p.Street, p.Ward, p.District, p.City, p.DistrictSlug,
		p.PriceValue, p.AreaValue,
		p.Bedrooms, p.Bathrooms, p.Floors,
		p.PropertyType, p.LegalStatus, p.Interior, p.Direction, p.BalconyDirection,
		p.VipTier, p.PostedAt,
	)
	if err != nil {
		logger.Error("Failed to insert property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert property: %w", err)
	}

	logger.Debug("Property inserted", nil)
	return nil
}

func (r *PostgresPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresPropertyRepository",
		"method":      "Update",
		"property_id": p.ID,
	})

	query := `
		UPDATE properties SET
			title = $2, description = $3,
			street = $4, ward = $5, district = $6, city = $7, district_slug = $8,
			price_value = $9, area_value = $10,
			bedrooms = $11, bathrooms = $12, floors = $13,
			property_type = $14, legal_status = $15, interior = $16,
			direction = $17, balcony_direction = $18
		WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description,
		p.Street, p.Ward, p.District, p.City, p.DistrictSlug,
		p.PriceValue, p.AreaValue,
		p.Bedrooms, p.Bathrooms, p.Floors,
		p.PropertyType, p.LegalStatus, p.Interior,
		p.Direction, p.BalconyDirection,
	)
	if err != nil {
		logger.Error("Failed to update property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		logger.Warn("Update matched no rows", nil)
		return domain.ErrPropertyNotFound
	}

	logger.Debug("Property updated", nil)
	return nil
}

func (r *PostgresPropertyRepository) AddImage(ctx context.Context, propertyID uuid.UUID, url string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresPropertyRepository",
		"method":      "AddImage",
		"property_id": propertyID,
	})

	// position continues after the current gallery tail.
	query := `
		INSERT INTO property_images (property_id, url, position)
		SELECT $1, $2, COALESCE(MAX(position), 0) + 1
		FROM property_images WHERE property_id = $1`

	_, err := r.pool.Exec(ctx, query, propertyID, url)
	if err != nil {
		logger.Error("Failed to add property image", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add property image: %w", err)
	}

	logger.Debug("Property image recorded", port.Fields{"url": url})
	return nil
}
