package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/varta-media/newsdesk/internal/models"
)

// CategoryRepository provides database operations for content categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT id, tenant_id, name, slug, created_at FROM categories WHERE id = $1`

	err := r.db.GetContext(ctx, category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

// ListByTenant retrieves all categories visible to a tenant: the tenant's
// own plus the global (tenant-less) ones. A nil tenantID lists only global
// categories.
func (r *CategoryRepository) ListByTenant(ctx context.Context, tenantID *uuid.UUID) ([]models.Category, error) {
	categories := []models.Category{}

	if tenantID != nil {
		query := `SELECT id, tenant_id, name, slug, created_at FROM categories WHERE tenant_id = $1 OR tenant_id IS NULL ORDER BY name ASC`
		if err := r.db.SelectContext(ctx, &categories, query, *tenantID); err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		return categories, nil
	}

	query := `SELECT id, tenant_id, name, slug, created_at FROM categories WHERE tenant_id IS NULL ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.ID = uuid.New()
	category.CreatedAt = time.Now()

	query := `
		INSERT INTO categories (id, tenant_id, name, slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.TenantID, category.Name, category.Slug, category.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}
