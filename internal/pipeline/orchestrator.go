package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/varta-media/newsdesk/internal/logger"
	"github.com/varta-media/newsdesk/internal/metrics"
	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/queue"
	"github.com/varta-media/newsdesk/internal/textutil"
)

// Validation limits, applied fail-closed before any write.
const (
	maxTitleChars    = 50
	maxSubtitleChars = 50
	maxBodyWords     = 2000
	maxPoints        = 5
	maxPointWords    = 5
)

// ArticleStore is the persistence surface for artifact creation. Each call
// is an independent commit; the orchestrator issues no cross-write
// transaction.
type ArticleStore interface {
	CreateBaseArticle(ctx context.Context, article *models.BaseArticle) error
	CreateWebArticle(ctx context.Context, article *models.WebArticle) error
	CreatePrintArticle(ctx context.Context, article *models.PrintArticle) error
}

// TenantDirectory resolves tenant flags and domains.
type TenantDirectory interface {
	FeatureFlags(ctx context.Context, tenantID uuid.UUID) (*models.TenantFeatureFlags, error)
	DomainByID(ctx context.Context, id uuid.UUID) (*models.Domain, error)
	DomainByName(ctx context.Context, name string) (*models.Domain, error)
}

// CategoryResolver resolves-or-creates a category by fuzzy name match.
type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, tenantID *uuid.UUID, name string) (*models.Category, error)
}

// Enqueuer hands the rewrite job to the out-of-process AI worker.
type Enqueuer interface {
	EnqueueRewrite(ctx context.Context, job *queue.RewriteJob) error
}

// CreateStatus distinguishes a fully materialized response from one where a
// secondary artifact write was swallowed.
type CreateStatus string

const (
	// FullyCreated means every synchronous artifact was written.
	FullyCreated CreateStatus = "FULLY_CREATED"
	// PartiallyCreated means the web article write failed and was
	// swallowed; base and print articles exist.
	PartiallyCreated CreateStatus = "PARTIALLY_CREATED"
)

// PublishRequest is one submission plus the request-level overrides.
type PublishRequest struct {
	Submission        models.Submission
	RequestedTenantID *uuid.UUID
	ForceAIRewrite    *bool
}

// Result is the orchestrator's output contract.
type Result struct {
	Status         CreateStatus           `json:"status"`
	BaseArticleID  uuid.UUID              `json:"base_article_id"`
	PrintArticleID uuid.UUID              `json:"print_article_id"`
	WebArticleID   *uuid.UUID             `json:"web_article_id,omitempty"`
	ExternalID     string                 `json:"external_id"`
	AIMode         models.AIMode          `json:"ai_mode"`
	Queued         models.QueueDescriptor `json:"queued"`
	StatusURL      string                 `json:"status_url"`
}

// Orchestrator composes the pipeline components. It exclusively owns the
// write sequence for a single submission.
type Orchestrator struct {
	articles   ArticleStore
	tenants    TenantDirectory
	categories CategoryResolver
	scope      *TenantScopeResolver
	location   *LocationResolver
	externalID *ExternalIDGenerator
	normalizer *ContentNormalizer
	enqueuer   Enqueuer
	metrics    *metrics.Metrics
	log        logger.Logger
	baseURL    string
}

// OrchestratorDeps bundles the collaborators for NewOrchestrator.
type OrchestratorDeps struct {
	Articles   ArticleStore
	Tenants    TenantDirectory
	Categories CategoryResolver
	Scope      *TenantScopeResolver
	Location   *LocationResolver
	ExternalID *ExternalIDGenerator
	Normalizer *ContentNormalizer
	Enqueuer   Enqueuer
	Metrics    *metrics.Metrics
	Logger     logger.Logger
	BaseURL    string
}

// NewOrchestrator creates the publication orchestrator.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	return &Orchestrator{
		articles:   deps.Articles,
		tenants:    deps.Tenants,
		categories: deps.Categories,
		scope:      deps.Scope,
		location:   deps.Location,
		externalID: deps.ExternalID,
		normalizer: deps.Normalizer,
		enqueuer:   deps.Enqueuer,
		metrics:    deps.Metrics,
		log:        deps.Logger,
		baseURL:    deps.BaseURL,
	}
}

// Publish runs one submission through the pipeline:
// validate → resolve tenant → resolve location → decide AI mode →
// create base article → [LIMITED] create web article → create print
// article → enqueue → respond.
//
// Failures before the base article write abort with no side effects. After
// it, only the print article write can still fail the request; a web
// article failure is logged, swallowed and reported as PARTIALLY_CREATED.
func (o *Orchestrator) Publish(ctx context.Context, principal *models.Principal, req *PublishRequest) (*Result, error) {
	sub := &req.Submission

	if err := validateSubmission(sub); err != nil {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	tenantCtx, err := o.scope.Resolve(ctx, principal, req.RequestedTenantID)
	if err != nil {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	domain := o.resolveDomain(ctx, tenantCtx, sub)

	loc := o.location.Resolve(ctx, sub.Location)
	if loc.Degraded {
		o.metrics.Degradations.WithLabelValues("location").Inc()
	}

	flags := o.lookupFlags(ctx, tenantCtx.TenantID)

	decision, err := DecideAIMode(flags, req.ForceAIRewrite, principal.Role)
	if err != nil {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}
	o.metrics.AIMode.WithLabelValues(string(decision.Mode)).Inc()

	categoryID := o.resolveCategory(ctx, tenantCtx.TenantID, sub)

	baseURL := o.baseURL
	if domain != nil && domain.BaseURL != "" {
		baseURL = domain.BaseURL
	}
	content, err := o.normalizer.Normalize(sub, baseURL)
	if err != nil {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, models.NewInternalError("normalize submission", err)
	}

	queued := queueDescriptorFor(decision.Mode)

	base := &models.BaseArticle{
		TenantID:   tenantCtx.TenantID,
		DomainID:   tenantCtx.DomainID,
		CategoryID: categoryID,
		Title:      sub.Title,
		Content:    content.PlainText,
		Status:     intendedStatus(sub.Publish),
		Images:     pq.StringArray(content.MediaURLs),
		Tags:       pq.StringArray(sub.Tags),
		Descriptor: models.Descriptor{
			Submission: sub,
			Location:   loc,
			AIDecision: decision,
			Queue:      queued,
			AIStatus:   models.AIStatusPending,
		},
	}
	if err := o.articles.CreateBaseArticle(ctx, base); err != nil {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, models.NewInternalError("create base article", err)
	}

	status := FullyCreated

	var webArticleID *uuid.UUID
	if decision.Mode == models.AIModeLimited {
		webArticleID = o.createWebArticle(ctx, base, tenantCtx, content, sub.Publish)
		if webArticleID == nil {
			status = PartiallyCreated
		}
	}

	externalID := o.generateExternalID(ctx, tenantCtx.TenantID)

	printArticle := &models.PrintArticle{
		BaseArticleID: base.ID,
		TenantID:      tenantCtx.TenantID,
		ExternalID:    externalID,
		Headline:      sub.Heading,
		Subtitle:      optional(sub.Subtitle),
		Points:        pq.StringArray(sub.Points),
		Dateline:      optional(dateline(loc.Place(), time.Now())),
		Content:       content.PlainText,
		PlaceName:     loc.DisplayName,
		Status:        intendedStatus(sub.Publish),
	}
	if err := o.articles.CreatePrintArticle(ctx, printArticle); err != nil {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, models.NewInternalError("create print article", err)
	}

	o.enqueue(ctx, base, tenantCtx, decision, queued, sub.CallbackURL)

	if status == PartiallyCreated {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomePartiallyCreated).Inc()
	} else {
		o.metrics.Submissions.WithLabelValues(metrics.OutcomeFullyCreated).Inc()
	}

	return &Result{
		Status:         status,
		BaseArticleID:  base.ID,
		PrintArticleID: printArticle.ID,
		WebArticleID:   webArticleID,
		ExternalID:     externalID,
		AIMode:         decision.Mode,
		Queued:         queued,
		StatusURL:      fmt.Sprintf("%s/api/v1/articles/newspaper/%s", strings.TrimRight(o.baseURL, "/"), printArticle.ID),
	}, nil
}

// resolveDomain binds the submission's domain hints to the tenant context.
// Lookups are best-effort: any failure leaves the context without a domain.
func (o *Orchestrator) resolveDomain(ctx context.Context, tenantCtx *models.TenantContext, sub *models.Submission) *models.Domain {
	var domain *models.Domain
	var err error

	switch {
	case sub.DomainID != nil:
		domain, err = o.tenants.DomainByID(ctx, *sub.DomainID)
	case sub.DomainName != "":
		domain, err = o.tenants.DomainByName(ctx, sub.DomainName)
	default:
		return nil
	}
	if err != nil {
		o.metrics.Degradations.WithLabelValues("domain").Inc()
		o.log.Warn("domain lookup degraded to null", logger.Error(err))
		return nil
	}

	tenantCtx.DomainID = &domain.ID
	tenantCtx.DomainName = &domain.Name
	return domain
}

// lookupFlags fetches tenant feature flags best-effort. A nil result (no
// tenant, missing row or lookup failure) means defaults apply.
func (o *Orchestrator) lookupFlags(ctx context.Context, tenantID *uuid.UUID) *models.TenantFeatureFlags {
	if tenantID == nil {
		return nil
	}
	flags, err := o.tenants.FeatureFlags(ctx, *tenantID)
	if err != nil {
		o.metrics.Degradations.WithLabelValues("tenant_flags").Inc()
		o.log.Warn("feature flag lookup degraded to defaults",
			logger.String("tenant_id", tenantID.String()),
			logger.Error(err),
		)
		return nil
	}
	return flags
}

// resolveCategory applies the rule: explicit id wins; otherwise a supplied
// name is fuzzy resolved-or-created. All failures are swallowed — no
// category is assigned.
func (o *Orchestrator) resolveCategory(ctx context.Context, tenantID *uuid.UUID, sub *models.Submission) *uuid.UUID {
	if sub.CategoryID != nil {
		return sub.CategoryID
	}
	if sub.CategoryName == "" {
		return nil
	}

	cat, err := o.categories.ResolveOrCreate(ctx, tenantID, sub.CategoryName)
	if err != nil {
		o.metrics.Degradations.WithLabelValues("category").Inc()
		o.log.Warn("category resolution degraded to null",
			logger.String("name", sub.CategoryName),
			logger.Error(err),
		)
		return nil
	}
	return &cat.ID
}

// createWebArticle writes the synchronous web artifact. Failure is logged
// and swallowed: the pipeline still creates the print article and succeeds.
func (o *Orchestrator) createWebArticle(ctx context.Context, base *models.BaseArticle, tenantCtx *models.TenantContext, content *WebContent, publish bool) *uuid.UUID {
	web := &models.WebArticle{
		BaseArticleID: base.ID,
		TenantID:      tenantCtx.TenantID,
		DomainID:      tenantCtx.DomainID,
		Slug:          content.Slug,
		Title:         content.Title,
		ContentHTML:   content.ContentHTML,
		PlainText:     content.PlainText,
		MetaTitle:     content.Meta.Title,
		MetaDesc:      content.Meta.Description,
		CanonicalURL:  content.Meta.CanonicalURL,
		JSONLD:        content.JSONLD,
		CoverImage:    content.CoverImage,
		Keywords:      pq.StringArray(content.Meta.Keywords),
		Status:        intendedStatus(publish),
	}
	if err := o.articles.CreateWebArticle(ctx, web); err != nil {
		o.log.Error("web article creation failed, continuing",
			logger.String("base_article_id", base.ID.String()),
			logger.Error(err),
		)
		return nil
	}
	return &web.ID
}

// generateExternalID is advisory: a counting failure degrades to the first
// sequence number of the day rather than failing the request.
func (o *Orchestrator) generateExternalID(ctx context.Context, tenantID *uuid.UUID) string {
	id, err := o.externalID.Generate(ctx, tenantID)
	if err != nil {
		o.metrics.Degradations.WithLabelValues("external_id").Inc()
		o.log.Warn("external id count degraded, using day sequence 1", logger.Error(err))
		return fmt.Sprintf("ART%s%04d", time.Now().UTC().Format("20060102"), 1)
	}
	return id
}

// enqueue hands off the rewrite job fire-and-forget. A failed push is
// logged and swallowed; the descriptor is already persisted on the base
// article and a sweeper can re-enqueue from it.
func (o *Orchestrator) enqueue(ctx context.Context, base *models.BaseArticle, tenantCtx *models.TenantContext, decision models.AIDecision, queued models.QueueDescriptor, callbackURL string) {
	job := &queue.RewriteJob{
		BaseArticleID: base.ID,
		TenantID:      tenantCtx.TenantID,
		Mode:          decision.Mode,
		PromptsToRun:  decision.PromptsToRun,
		Targets:       queued,
		CallbackURL:   callbackURL,
	}
	if err := o.enqueuer.EnqueueRewrite(ctx, job); err != nil {
		o.log.Error("rewrite job enqueue failed",
			logger.String("base_article_id", base.ID.String()),
			logger.Error(err),
		)
	}
}

// validateSubmission applies the fail-closed input rules and normalizes the
// defaulting fields in place.
func validateSubmission(sub *models.Submission) error {
	if strings.TrimSpace(sub.Title) == "" {
		return models.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(sub.Title) > maxTitleChars {
		return models.NewValidationError("title exceeds %d characters", maxTitleChars)
	}
	if sub.Subtitle != "" && utf8.RuneCountInString(sub.Subtitle) > maxSubtitleChars {
		return models.NewValidationError("subtitle exceeds %d characters", maxSubtitleChars)
	}
	if strings.TrimSpace(sub.Heading) == "" {
		sub.Heading = sub.Title
	}
	if bodyWordCount(sub) > maxBodyWords {
		return models.NewValidationError("body exceeds %d words", maxBodyWords)
	}
	if len(sub.Points) > maxPoints {
		return models.NewValidationError("at most %d bullet points allowed", maxPoints)
	}
	for _, p := range sub.Points {
		if textutil.WordCount(p) > maxPointWords {
			return models.NewValidationError("bullet point exceeds %d words", maxPointWords)
		}
	}
	// An unparsable callback URL is dropped, not rejected.
	if sub.CallbackURL != "" && !isAbsoluteHTTPURL(sub.CallbackURL) {
		sub.CallbackURL = ""
	}
	return nil
}

func bodyWordCount(sub *models.Submission) int {
	count := textutil.WordCount(sub.Content)
	for _, b := range sub.Blocks {
		if b.Type == models.BlockParagraph {
			count += textutil.WordCount(b.Text)
		}
	}
	return count
}

// queueDescriptorFor maps the AI mode onto worker targets. FULL defers all
// three formats to the worker. LIMITED creates the web article
// synchronously and leaves only the short item for the worker.
func queueDescriptorFor(mode models.AIMode) models.QueueDescriptor {
	if mode == models.AIModeFull {
		return models.QueueDescriptor{Web: true, Short: true, Newspaper: true}
	}
	return models.QueueDescriptor{Web: false, Short: true, Newspaper: false}
}

func intendedStatus(publish bool) models.ArticleStatus {
	if publish {
		return models.StatusPublished
	}
	return models.StatusDraft
}

// dateline renders the print byline prefix: "Place, Month Day, Year".
func dateline(place string, t time.Time) string {
	date := t.UTC().Format("January 2, 2006")
	if place == "" {
		return date
	}
	return place + ", " + date
}
