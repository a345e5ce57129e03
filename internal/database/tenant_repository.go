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

// TenantRepository provides lookups over tenants, their domains, their
// feature flags and their reporters.
type TenantRepository struct {
	db *sqlx.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *sqlx.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// FeatureFlags retrieves the feature flags for a tenant. ErrNotFound means
// no flag row exists; callers apply the default-enabled rule.
func (r *TenantRepository) FeatureFlags(ctx context.Context, tenantID uuid.UUID) (*models.TenantFeatureFlags, error) {
	flags := &models.TenantFeatureFlags{}
	query := `SELECT tenant_id, ai_article_rewrite_enabled FROM tenant_feature_flags WHERE tenant_id = $1`

	err := r.db.GetContext(ctx, flags, query, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant feature flags: %w", err)
	}

	return flags, nil
}

// DomainByID retrieves a domain by ID
func (r *TenantRepository) DomainByID(ctx context.Context, id uuid.UUID) (*models.Domain, error) {
	domain := &models.Domain{}
	query := `SELECT id, tenant_id, name, base_url FROM domains WHERE id = $1`

	err := r.db.GetContext(ctx, domain, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get domain: %w", err)
	}

	return domain, nil
}

// DomainByName retrieves a domain by hostname
func (r *TenantRepository) DomainByName(ctx context.Context, name string) (*models.Domain, error) {
	domain := &models.Domain{}
	query := `SELECT id, tenant_id, name, base_url FROM domains WHERE name = $1`

	err := r.db.GetContext(ctx, domain, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get domain: %w", err)
	}

	return domain, nil
}

// ReporterByUser retrieves the reporter profile linked to a user.
func (r *TenantRepository) ReporterByUser(ctx context.Context, userID uuid.UUID) (*models.Reporter, error) {
	reporter := &models.Reporter{}
	query := `SELECT id, user_id, tenant_id, name FROM reporters WHERE user_id = $1`

	err := r.db.GetContext(ctx, reporter, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reporter: %w", err)
	}

	return reporter, nil
}
