package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PrintArticleCounter counts print articles in a creation window.
type PrintArticleCounter interface {
	CountPrintArticlesInWindow(ctx context.Context, tenantID *uuid.UUID, from, to time.Time) (int, error)
}

// ExternalIDGenerator produces the human-facing identifier for a print
// article: ART + YYYYMMDD + a 4-digit per-tenant-per-day sequence.
//
// The count-then-increment is advisory: concurrent submissions for the same
// tenant and day can collide. Uniqueness is by convention, not enforced.
type ExternalIDGenerator struct {
	counter PrintArticleCounter
	now     func() time.Time
}

// NewExternalIDGenerator creates a generator. now may be nil, defaulting to
// time.Now.
func NewExternalIDGenerator(counter PrintArticleCounter, now func() time.Time) *ExternalIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &ExternalIDGenerator{counter: counter, now: now}
}

// Generate builds the next external id for the tenant's current UTC day.
func (g *ExternalIDGenerator) Generate(ctx context.Context, tenantID *uuid.UUID) (string, error) {
	day := g.now().UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	count, err := g.counter.CountPrintArticlesInWindow(ctx, tenantID, dayStart, dayEnd)
	if err != nil {
		return "", fmt.Errorf("count print articles for external id: %w", err)
	}

	return fmt.Sprintf("ART%s%04d", dayStart.Format("20060102"), count+1), nil
}
