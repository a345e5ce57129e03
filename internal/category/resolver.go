// Package category implements fuzzy name-to-category resolution. A supplied
// name matches an existing category when its normalized similarity clears
// the configured threshold; otherwise a new category is created.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/textutil"
)

// Store is the persistence surface the resolver needs.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListByTenant(ctx context.Context, tenantID *uuid.UUID) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

// Resolver resolves-or-creates categories by fuzzy name match.
type Resolver struct {
	store     Store
	threshold float64
}

// NewResolver creates a resolver with the given similarity threshold (0..1).
func NewResolver(store Store, threshold float64) *Resolver {
	return &Resolver{store: store, threshold: threshold}
}

// ResolveOrCreate returns the closest existing category whose similarity to
// name is at least the threshold, or creates a new one.
func (r *Resolver) ResolveOrCreate(ctx context.Context, tenantID *uuid.UUID, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty category name")
	}

	existing, err := r.store.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	var best *models.Category
	bestScore := 0.0
	for i := range existing {
		score := Similarity(name, existing[i].Name)
		if score > bestScore {
			bestScore = score
			best = &existing[i]
		}
	}
	if best != nil && bestScore >= r.threshold {
		return best, nil
	}

	created := &models.Category{
		TenantID: tenantID,
		Name:     name,
		Slug:     textutil.Slugify(name),
	}
	if err := r.store.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Similarity is the normalized Levenshtein ratio of the lower-cased names:
// 1 for identical strings, 0 for fully dissimilar.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
