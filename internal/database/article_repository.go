package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/varta-media/newsdesk/internal/models"
)

const pqUniqueViolation = "23505"

// ArticleRepository provides database operations for base, print and web
// articles. Each create is its own commit; the orchestrator deliberately
// issues them as independent writes.
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Ping verifies database connectivity.
func (r *ArticleRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateBaseArticle inserts the canonical article record.
func (r *ArticleRepository) CreateBaseArticle(ctx context.Context, article *models.BaseArticle) error {
	now := time.Now()
	article.ID = uuid.New()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Images == nil {
		article.Images = pq.StringArray{}
	}
	if article.Tags == nil {
		article.Tags = pq.StringArray{}
	}

	query := `
		INSERT INTO base_articles (id, tenant_id, domain_id, category_id, title, content, status, images, tags, descriptor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		article.ID, article.TenantID, article.DomainID, article.CategoryID,
		article.Title, article.Content, article.Status,
		article.Images, article.Tags, article.Descriptor,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create base article: %w", err)
	}

	return nil
}

// GetBaseArticleByID retrieves a base article by ID
func (r *ArticleRepository) GetBaseArticleByID(ctx context.Context, id uuid.UUID) (*models.BaseArticle, error) {
	article := &models.BaseArticle{}
	query := `
		SELECT id, tenant_id, domain_id, category_id, title, content, status, images, tags, descriptor, created_at, updated_at
		FROM base_articles
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, article, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get base article: %w", err)
	}

	return article, nil
}

// CreatePrintArticle inserts the newspaper representation.
func (r *ArticleRepository) CreatePrintArticle(ctx context.Context, article *models.PrintArticle) error {
	now := time.Now()
	article.ID = uuid.New()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Points == nil {
		article.Points = pq.StringArray{}
	}

	query := `
		INSERT INTO print_articles (id, base_article_id, tenant_id, external_id, headline, subtitle, points, dateline, content, place_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		article.ID, article.BaseArticleID, article.TenantID, article.ExternalID,
		article.Headline, article.Subtitle, article.Points, article.Dateline,
		article.Content, article.PlaceName, article.Status,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create print article: %w", err)
	}

	return nil
}

// GetPrintArticleByID retrieves a print article by ID
func (r *ArticleRepository) GetPrintArticleByID(ctx context.Context, id uuid.UUID) (*models.PrintArticle, error) {
	article := &models.PrintArticle{}
	query := `
		SELECT id, base_article_id, tenant_id, external_id, headline, subtitle, points, dateline, content, place_name, status, created_at, updated_at
		FROM print_articles
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, article, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get print article: %w", err)
	}

	return article, nil
}

// ListPrintArticles retrieves print articles matching the filter, newest
// first.
func (r *ArticleRepository) ListPrintArticles(ctx context.Context, filter models.PrintArticleFilter) ([]models.PrintArticle, error) {
	articles := []models.PrintArticle{}

	query := `
		SELECT id, base_article_id, tenant_id, external_id, headline, subtitle, points, dateline, content, place_name, status, created_at, updated_at
		FROM print_articles
		WHERE 1=1
	`
	args := []any{}
	argn := 1

	if filter.TenantID != nil {
		query += fmt.Sprintf(" AND tenant_id = $%d", argn)
		args = append(args, *filter.TenantID)
		argn++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argn)
		args = append(args, *filter.Status)
		argn++
	}
	if filter.Date != nil {
		from, to := dayWindowUTC(*filter.Date)
		query += fmt.Sprintf(" AND created_at >= $%d AND created_at < $%d", argn, argn+1)
		args = append(args, from, to)
		argn += 2
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" LIMIT $%d", argn)
	args = append(args, limit)
	argn++

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argn)
		args = append(args, filter.Offset)
	}

	err := r.db.SelectContext(ctx, &articles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list print articles: %w", err)
	}

	return articles, nil
}

// UpdatePrintArticle applies a patch to a print article.
func (r *ArticleRepository) UpdatePrintArticle(ctx context.Context, id uuid.UUID, req *models.PrintArticleUpdateRequest) (*models.PrintArticle, error) {
	updates := make(map[string]any)

	if req.Headline != nil {
		updates["headline"] = *req.Headline
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Points != nil {
		updates["points"] = pq.StringArray(req.Points)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	query, args, err := buildUpdateQuery(
		"print_articles",
		id,
		updates,
		"id, base_article_id, tenant_id, external_id, headline, subtitle, points, dateline, content, place_name, status, created_at, updated_at",
	)
	if err != nil {
		return nil, err
	}

	article := &models.PrintArticle{}
	err = r.db.QueryRowxContext(ctx, query, args...).StructScan(article)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update print article: %w", err)
	}

	return article, nil
}

// CountPrintArticlesInWindow counts a tenant's print articles created within
// [from, to). A nil tenantID counts across all tenants (global scope).
func (r *ArticleRepository) CountPrintArticlesInWindow(ctx context.Context, tenantID *uuid.UUID, from, to time.Time) (int, error) {
	var count int
	if tenantID != nil {
		query := `SELECT COUNT(*) FROM print_articles WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3`
		if err := r.db.GetContext(ctx, &count, query, *tenantID, from, to); err != nil {
			return 0, fmt.Errorf("failed to count print articles: %w", err)
		}
		return count, nil
	}

	query := `SELECT COUNT(*) FROM print_articles WHERE created_at >= $1 AND created_at < $2`
	if err := r.db.GetContext(ctx, &count, query, from, to); err != nil {
		return 0, fmt.Errorf("failed to count print articles: %w", err)
	}
	return count, nil
}

// CreateWebArticle inserts the website representation.
func (r *ArticleRepository) CreateWebArticle(ctx context.Context, article *models.WebArticle) error {
	now := time.Now()
	article.ID = uuid.New()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Keywords == nil {
		article.Keywords = pq.StringArray{}
	}

	query := `
		INSERT INTO web_articles (id, base_article_id, tenant_id, domain_id, slug, title, content_html, plain_text, meta_title, meta_description, canonical_url, json_ld, cover_image, keywords, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		article.ID, article.BaseArticleID, article.TenantID, article.DomainID,
		article.Slug, article.Title, article.ContentHTML, article.PlainText,
		article.MetaTitle, article.MetaDesc, article.CanonicalURL,
		article.JSONLD, article.CoverImage, article.Keywords, article.Status,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return models.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create web article: %w", err)
	}

	return nil
}

// buildUpdateQuery builds a dynamic UPDATE statement from the non-nil patch
// fields, always bumping updated_at.
func buildUpdateQuery(table string, id uuid.UUID, updates map[string]any, returningFields string) (string, []any, error) {
	if len(updates) == 0 {
		return "", nil, models.ErrNoFieldsToUpdate
	}

	// Stable order keeps queries deterministic for tests
	columns := make([]string, 0, len(updates))
	for col := range updates {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	setClauses := ""
	args := make([]any, 0, len(updates)+1)
	argn := 1
	for _, col := range columns {
		if setClauses != "" {
			setClauses += ", "
		}
		setClauses += fmt.Sprintf("%s = $%d", col, argn)
		args = append(args, updates[col])
		argn++
	}
	setClauses += ", updated_at = NOW()"

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, setClauses, argn, returningFields,
	)
	args = append(args, id)

	return query, args, nil
}

// dayWindowUTC returns the UTC day boundaries [start, end) containing t.
func dayWindowUTC(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
