package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varta-media/newsdesk/internal/logger"
	"github.com/varta-media/newsdesk/internal/metrics"
	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/seo"
	"github.com/varta-media/newsdesk/internal/textutil"
)

type orchestratorFixture struct {
	orchestrator *Orchestrator
	store        *fakeArticleStore
	tenants      *fakeTenants
	categories   *fakeCategories
	enqueuer     *fakeEnqueuer
	reporters    *fakeReporters

	tenantID uuid.UUID
	userID   uuid.UUID
}

func newOrchestratorFixture(t *testing.T) *orchestratorFixture {
	t.Helper()

	tenantID := uuid.New()
	userID := uuid.New()

	store := &fakeArticleStore{}
	tenants := &fakeTenants{flags: map[uuid.UUID]*models.TenantFeatureFlags{}}
	categories := &fakeCategories{category: &models.Category{ID: uuid.New(), Name: "General", Slug: "general"}}
	enqueuer := &fakeEnqueuer{}
	reporters := &fakeReporters{reporters: map[uuid.UUID]*models.Reporter{
		userID: {ID: uuid.New(), UserID: userID, TenantID: &tenantID},
	}}

	log := logger.NewNopLogger()
	now := func() time.Time { return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC) }

	orchestrator := NewOrchestrator(OrchestratorDeps{
		Articles:   store,
		Tenants:    tenants,
		Categories: categories,
		Scope:      NewTenantScopeResolver(reporters),
		Location:   NewLocationResolver(&fakeGeo{}, log),
		ExternalID: NewExternalIDGenerator(store, now),
		Normalizer: NewContentNormalizer(textutil.NewSanitizer(), seo.NewBuilder(), now),
		Enqueuer:   enqueuer,
		Metrics:    metrics.NewNop(),
		Logger:     log,
		BaseURL:    "https://api.example.com",
	})

	return &orchestratorFixture{
		orchestrator: orchestrator,
		store:        store,
		tenants:      tenants,
		categories:   categories,
		enqueuer:     enqueuer,
		reporters:    reporters,
		tenantID:     tenantID,
		userID:       userID,
	}
}

func (fx *orchestratorFixture) reporterPrincipal() *models.Principal {
	return &models.Principal{UserID: fx.userID, Role: models.RoleReporter}
}

func (fx *orchestratorFixture) setTenantFlag(enabled bool) {
	fx.tenants.flags[fx.tenantID] = &models.TenantFeatureFlags{
		TenantID:                fx.tenantID,
		AIArticleRewriteEnabled: &enabled,
	}
}

func validSubmission() models.Submission {
	return models.Submission{
		Title:    "Test",
		Heading:  "Test",
		Content:  "one two three four five six seven eight nine ten",
		Location: models.LocationInput{City: "Hyderabad"},
	}
}

func TestPublish_FullMode_EndToEnd(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)

	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: validSubmission(),
	})
	require.NoError(t, err)

	assert.Equal(t, FullyCreated, result.Status)
	assert.Equal(t, models.AIModeFull, result.AIMode)
	assert.Equal(t, models.QueueDescriptor{Web: true, Short: true, Newspaper: true}, result.Queued)
	assert.Equal(t, "ART202601020001", result.ExternalID)
	assert.Nil(t, result.WebArticleID)

	// Only base + print exist; web is deferred to the worker
	require.Len(t, fx.store.baseArticles, 1)
	require.Len(t, fx.store.printArticles, 1)
	assert.Empty(t, fx.store.webArticles)

	base := fx.store.baseArticles[0]
	printArticle := fx.store.printArticles[0]
	assert.Equal(t, base.ID, printArticle.BaseArticleID)
	assert.Equal(t, result.BaseArticleID, base.ID)
	assert.Equal(t, result.PrintArticleID, printArticle.ID)

	// Audit facts on the descriptor
	assert.Equal(t, models.AIStatusPending, base.Descriptor.AIStatus)
	assert.Equal(t, models.AIModeFull, base.Descriptor.AIDecision.Mode)
	assert.True(t, base.Descriptor.Queue.Newspaper)

	// Dateline carries the city fallback
	require.NotNil(t, printArticle.Dateline)
	assert.Equal(t, "Hyderabad, January 2, 2026", *printArticle.Dateline)
	require.NotNil(t, printArticle.PlaceName)
	assert.Equal(t, "Hyderabad", *printArticle.PlaceName)

	// One fire-and-forget job
	require.Len(t, fx.enqueuer.jobs, 1)
	assert.Equal(t, base.ID, fx.enqueuer.jobs[0].BaseArticleID)
	assert.Equal(t, models.AIModeFull, fx.enqueuer.jobs[0].Mode)

	assert.Equal(t, "https://api.example.com/api/v1/articles/newspaper/"+printArticle.ID.String(), result.StatusURL)
}

func TestPublish_LimitedMode_CreatesWebSynchronously(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(false)

	sub := validSubmission()
	sub.Publish = true
	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: sub,
	})
	require.NoError(t, err)

	assert.Equal(t, models.AIModeLimited, result.AIMode)
	require.NotNil(t, result.WebArticleID)
	require.Len(t, fx.store.webArticles, 1)

	web := fx.store.webArticles[0]
	assert.Equal(t, fx.store.baseArticles[0].ID, web.BaseArticleID)
	// Web status mirrors the publish intent
	assert.Equal(t, models.StatusPublished, web.Status)
	assert.Equal(t, "test", web.Slug)
	assert.False(t, result.Queued.Web)
}

func TestPublish_OverrideTrue_NonSuperAdmin_NoEntities(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)

	_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission:     validSubmission(),
		ForceAIRewrite: boolPtr(true),
	})
	require.Error(t, err)
	assert.Equal(t, models.KindForbidden, models.KindOf(err))

	assert.Empty(t, fx.store.baseArticles)
	assert.Empty(t, fx.store.printArticles)
	assert.Empty(t, fx.store.webArticles)
	assert.Empty(t, fx.enqueuer.jobs)
}

func TestPublish_OverrideFalse_AnyRole_Limited(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true) // flag on, override still wins

	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission:     validSubmission(),
		ForceAIRewrite: boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, models.AIModeLimited, result.AIMode)
	assert.Equal(t, models.AIDecisionSourceOverride, fx.store.baseArticles[0].Descriptor.AIDecision.Source)
}

func TestPublish_ValidationFailures_NoSideEffects(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(sub *models.Submission)
	}{
		{
			name:   "missing title",
			mutate: func(sub *models.Submission) { sub.Title = " " },
		},
		{
			name:   "51 character title",
			mutate: func(sub *models.Submission) { sub.Title = strings.Repeat("a", 51) },
		},
		{
			name:   "51 character subtitle",
			mutate: func(sub *models.Submission) { sub.Subtitle = strings.Repeat("b", 51) },
		},
		{
			name:   "six word bullet point",
			mutate: func(sub *models.Submission) { sub.Points = []string{"one two three four five six"} },
		},
		{
			name:   "six bullet points",
			mutate: func(sub *models.Submission) { sub.Points = []string{"a", "b", "c", "d", "e", "f"} },
		},
		{
			name: "body over 2000 words",
			mutate: func(sub *models.Submission) {
				sub.Content = strings.TrimSpace(strings.Repeat("word ", 2001))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newOrchestratorFixture(t)
			fx.setTenantFlag(true)

			sub := validSubmission()
			tc.mutate(&sub)

			_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{Submission: sub})
			require.Error(t, err)
			assert.Equal(t, models.KindValidation, models.KindOf(err))

			assert.Empty(t, fx.store.baseArticles)
			assert.Empty(t, fx.store.printArticles)
		})
	}
}

func TestPublish_HeadingDefaultsToTitle(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)

	sub := validSubmission()
	sub.Heading = ""
	_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{Submission: sub})
	require.NoError(t, err)

	assert.Equal(t, "Test", fx.store.printArticles[0].Headline)
}

func TestPublish_BadCallbackURLDropped(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)

	sub := validSubmission()
	sub.CallbackURL = "not a url"
	_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{Submission: sub})
	require.NoError(t, err)

	require.Len(t, fx.enqueuer.jobs, 1)
	assert.Empty(t, fx.enqueuer.jobs[0].CallbackURL)
}

func TestPublish_WebFailure_PartiallyCreated(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(false) // LIMITED → synchronous web write
	fx.store.webErr = errors.New("disk full")

	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: validSubmission(),
	})
	require.NoError(t, err)

	assert.Equal(t, PartiallyCreated, result.Status)
	assert.Nil(t, result.WebArticleID)
	// Base and print still exist and the job was enqueued
	require.Len(t, fx.store.baseArticles, 1)
	require.Len(t, fx.store.printArticles, 1)
	require.Len(t, fx.enqueuer.jobs, 1)
}

func TestPublish_FlagLookupFailure_DefaultsToEnabled(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.tenants.flagsErr = errLookupDown

	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: validSubmission(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.AIModeFull, result.AIMode)
}

func TestPublish_CategoryFailureSwallowed(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)
	fx.categories.err = errLookupDown

	sub := validSubmission()
	sub.CategoryName = "Politics"
	_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{Submission: sub})
	require.NoError(t, err)

	assert.Nil(t, fx.store.baseArticles[0].CategoryID)
	assert.Equal(t, 1, fx.categories.calls)
}

func TestPublish_ExplicitCategoryIDWins(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)
	categoryID := uuid.New()

	sub := validSubmission()
	sub.CategoryID = &categoryID
	sub.CategoryName = "Ignored"
	_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{Submission: sub})
	require.NoError(t, err)

	require.NotNil(t, fx.store.baseArticles[0].CategoryID)
	assert.Equal(t, categoryID, *fx.store.baseArticles[0].CategoryID)
	assert.Zero(t, fx.categories.calls)
}

func TestPublish_ExternalIDSequence(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)
	fx.store.printCount = 7

	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: validSubmission(),
	})
	require.NoError(t, err)

	assert.Equal(t, "ART202601020008", result.ExternalID)
}

func TestPublish_ExternalIDCountFailure_Degraded(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)
	fx.store.printCountErr = errLookupDown

	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: validSubmission(),
	})
	require.NoError(t, err)

	// Degrades to the first sequence of the day instead of failing
	assert.True(t, strings.HasSuffix(result.ExternalID, "0001"), "got %s", result.ExternalID)
}

func TestPublish_EnqueueFailureSwallowed(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)
	fx.enqueuer.err = errLookupDown

	result, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: validSubmission(),
	})
	require.NoError(t, err)
	assert.Equal(t, FullyCreated, result.Status)
}

func TestPublish_PrintFailure_Fails(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(true)
	fx.store.printErr = errLookupDown

	_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{
		Submission: validSubmission(),
	})
	require.Error(t, err)
	assert.Equal(t, models.KindInternal, models.KindOf(err))
}

func TestPublish_SuperAdminGlobalScope(t *testing.T) {
	fx := newOrchestratorFixture(t)
	principal := &models.Principal{UserID: uuid.New(), Role: models.RoleSuperAdmin}

	result, err := fx.orchestrator.Publish(context.Background(), principal, &PublishRequest{
		Submission: validSubmission(),
	})
	require.NoError(t, err)

	// No tenant, no flag row: defaults to FULL
	assert.Equal(t, models.AIModeFull, result.AIMode)
	assert.Nil(t, fx.store.baseArticles[0].TenantID)
}

func TestPublish_DomainHintResolved(t *testing.T) {
	fx := newOrchestratorFixture(t)
	fx.setTenantFlag(false)
	domainID := uuid.New()
	fx.tenants.byName = map[string]*models.Domain{
		"news.example.com": {ID: domainID, TenantID: fx.tenantID, Name: "news.example.com", BaseURL: "https://news.example.com"},
	}

	sub := validSubmission()
	sub.DomainName = "news.example.com"
	_, err := fx.orchestrator.Publish(context.Background(), fx.reporterPrincipal(), &PublishRequest{Submission: sub})
	require.NoError(t, err)

	// LIMITED web article uses the domain's base URL for canonical links
	require.Len(t, fx.store.webArticles, 1)
	assert.Equal(t, "https://news.example.com/test", fx.store.webArticles[0].CanonicalURL)
	require.NotNil(t, fx.store.baseArticles[0].DomainID)
	assert.Equal(t, domainID, *fx.store.baseArticles[0].DomainID)
}
