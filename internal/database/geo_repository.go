package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/varta-media/newsdesk/internal/models"
)

// GeoRepository provides lookups over the administrative hierarchy
// (state → district → mandal → village). Callers treat failures as
// degradable; the repository itself reports them normally.
type GeoRepository struct {
	db *sqlx.DB
}

// NewGeoRepository creates a new geo repository
func NewGeoRepository(db *sqlx.DB) *GeoRepository {
	return &GeoRepository{db: db}
}

// VillageByID retrieves a village by ID
func (r *GeoRepository) VillageByID(ctx context.Context, id uuid.UUID) (*models.Village, error) {
	village := &models.Village{}
	query := `SELECT id, mandal_id, name FROM villages WHERE id = $1`

	err := r.db.GetContext(ctx, village, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get village: %w", err)
	}

	return village, nil
}

// MandalByID retrieves a mandal by ID
func (r *GeoRepository) MandalByID(ctx context.Context, id uuid.UUID) (*models.Mandal, error) {
	mandal := &models.Mandal{}
	query := `SELECT id, district_id, name FROM mandals WHERE id = $1`

	err := r.db.GetContext(ctx, mandal, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get mandal: %w", err)
	}

	return mandal, nil
}

// DistrictByID retrieves a district by ID
func (r *GeoRepository) DistrictByID(ctx context.Context, id uuid.UUID) (*models.District, error) {
	district := &models.District{}
	query := `SELECT id, state_id, name FROM districts WHERE id = $1`

	err := r.db.GetContext(ctx, district, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get district: %w", err)
	}

	return district, nil
}

// StateByID retrieves a state by ID
func (r *GeoRepository) StateByID(ctx context.Context, id uuid.UUID) (*models.State, error) {
	state := &models.State{}
	query := `SELECT id, name, code FROM states WHERE id = $1`

	err := r.db.GetContext(ctx, state, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	return state, nil
}
