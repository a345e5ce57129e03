package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/queue"
)

var errLookupDown = errors.New("lookup unavailable")

// fakeGeo serves the administrative hierarchy from maps. A nil map makes
// every lookup at that level fail.
type fakeGeo struct {
	villages  map[uuid.UUID]*models.Village
	mandals   map[uuid.UUID]*models.Mandal
	districts map[uuid.UUID]*models.District
	states    map[uuid.UUID]*models.State
}

func (f *fakeGeo) VillageByID(_ context.Context, id uuid.UUID) (*models.Village, error) {
	if v, ok := f.villages[id]; ok {
		return v, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeGeo) MandalByID(_ context.Context, id uuid.UUID) (*models.Mandal, error) {
	if m, ok := f.mandals[id]; ok {
		return m, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeGeo) DistrictByID(_ context.Context, id uuid.UUID) (*models.District, error) {
	if d, ok := f.districts[id]; ok {
		return d, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeGeo) StateByID(_ context.Context, id uuid.UUID) (*models.State, error) {
	if s, ok := f.states[id]; ok {
		return s, nil
	}
	return nil, models.ErrNotFound
}

// fakeReporters maps user ids to reporter profiles.
type fakeReporters struct {
	reporters map[uuid.UUID]*models.Reporter
	err       error
}

func (f *fakeReporters) ReporterByUser(_ context.Context, userID uuid.UUID) (*models.Reporter, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.reporters[userID]; ok {
		return r, nil
	}
	return nil, models.ErrNotFound
}

// fakeArticleStore records created artifacts and can fail selectively.
type fakeArticleStore struct {
	baseArticles  []*models.BaseArticle
	webArticles   []*models.WebArticle
	printArticles []*models.PrintArticle

	baseErr  error
	webErr   error
	printErr error

	printCount    int
	printCountErr error
}

func (f *fakeArticleStore) CreateBaseArticle(_ context.Context, a *models.BaseArticle) error {
	if f.baseErr != nil {
		return f.baseErr
	}
	a.ID = uuid.New()
	f.baseArticles = append(f.baseArticles, a)
	return nil
}

func (f *fakeArticleStore) CreateWebArticle(_ context.Context, a *models.WebArticle) error {
	if f.webErr != nil {
		return f.webErr
	}
	a.ID = uuid.New()
	f.webArticles = append(f.webArticles, a)
	return nil
}

func (f *fakeArticleStore) CreatePrintArticle(_ context.Context, a *models.PrintArticle) error {
	if f.printErr != nil {
		return f.printErr
	}
	a.ID = uuid.New()
	f.printArticles = append(f.printArticles, a)
	return nil
}

func (f *fakeArticleStore) CountPrintArticlesInWindow(_ context.Context, _ *uuid.UUID, _, _ time.Time) (int, error) {
	return f.printCount, f.printCountErr
}

// fakeTenants serves flags and domains from maps; failures degrade.
type fakeTenants struct {
	flags   map[uuid.UUID]*models.TenantFeatureFlags
	domains map[uuid.UUID]*models.Domain
	byName  map[string]*models.Domain

	flagsErr error
}

func (f *fakeTenants) FeatureFlags(_ context.Context, tenantID uuid.UUID) (*models.TenantFeatureFlags, error) {
	if f.flagsErr != nil {
		return nil, f.flagsErr
	}
	if fl, ok := f.flags[tenantID]; ok {
		return fl, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeTenants) DomainByID(_ context.Context, id uuid.UUID) (*models.Domain, error) {
	if d, ok := f.domains[id]; ok {
		return d, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeTenants) DomainByName(_ context.Context, name string) (*models.Domain, error) {
	if d, ok := f.byName[name]; ok {
		return d, nil
	}
	return nil, models.ErrNotFound
}

// fakeCategories resolves every name to one fixed category.
type fakeCategories struct {
	category *models.Category
	err      error
	calls    int
}

func (f *fakeCategories) ResolveOrCreate(_ context.Context, _ *uuid.UUID, _ string) (*models.Category, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

// fakeEnqueuer captures rewrite jobs.
type fakeEnqueuer struct {
	jobs []*queue.RewriteJob
	err  error
}

func (f *fakeEnqueuer) EnqueueRewrite(_ context.Context, job *queue.RewriteJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }
