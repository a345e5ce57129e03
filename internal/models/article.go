package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ArticleStatus is the editorial state of an artifact.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "DRAFT"
	StatusPending   ArticleStatus = "PENDING"
	StatusPublished ArticleStatus = "PUBLISHED"
)

// AIMode is the rewrite entitlement decided once per request.
type AIMode string

const (
	// AIModeFull enables AI rewriting of all three formats.
	AIModeFull AIMode = "FULL"
	// AIModeLimited restricts AI use to SEO metadata and category inference.
	AIModeLimited AIMode = "LIMITED"
)

// AIDecision sources.
const (
	AIDecisionSourceTenantFlag = "tenant-flag"
	AIDecisionSourceOverride   = "override"
)

// AIStatus tracks the asynchronous rewrite. The orchestrator writes
// PENDING; everything after that is owned by the external worker.
type AIStatus string

const (
	AIStatusPending   AIStatus = "PENDING"
	AIStatusRunning   AIStatus = "RUNNING"
	AIStatusCompleted AIStatus = "COMPLETED"
	AIStatusFailed    AIStatus = "FAILED"
)

// AIDecision records how much AI rewriting this request is entitled to.
// It is decided once and persisted as an audit fact on the base article.
type AIDecision struct {
	Mode                   AIMode   `json:"mode"`
	TenantAIRewriteEnabled bool     `json:"tenant_ai_rewrite_enabled"`
	Source                 string   `json:"source"`
	PromptsToRun           []string `json:"prompts_to_run"`
}

// QueueDescriptor tells the worker which artifacts to produce.
type QueueDescriptor struct {
	Web       bool `json:"web"`
	Short     bool `json:"short"`
	Newspaper bool `json:"newspaper"`
}

// Descriptor is the opaque JSONB blob on the base article: the normalized
// submission, the AI decision, the queue descriptor and the worker-owned
// AI status.
type Descriptor struct {
	Submission *Submission     `json:"submission,omitempty"`
	Location   LocationRef     `json:"location"`
	AIDecision AIDecision      `json:"ai_decision"`
	Queue      QueueDescriptor `json:"queue"`
	AIStatus   AIStatus        `json:"ai_status"`
}

// Value implements driver.Valuer so Descriptor persists as JSONB.
func (d Descriptor) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading the JSONB column back.
func (d *Descriptor) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = Descriptor{}
		return nil
	default:
		return fmt.Errorf("unsupported descriptor source type %T", src)
	}
}

// BaseArticle is the canonical record created exactly once per submission.
// After creation it is mutated only by the external AI worker.
type BaseArticle struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	TenantID   *uuid.UUID     `json:"tenant_id" db:"tenant_id"`
	DomainID   *uuid.UUID     `json:"domain_id" db:"domain_id"`
	CategoryID *uuid.UUID     `json:"category_id" db:"category_id"`
	Title      string         `json:"title" db:"title"`
	Content    string         `json:"content" db:"content"`
	Status     ArticleStatus  `json:"status" db:"status"`
	Images     pq.StringArray `json:"images" db:"images"`
	Tags       pq.StringArray `json:"tags" db:"tags"`
	Descriptor Descriptor     `json:"descriptor" db:"descriptor"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// PrintArticle is the newspaper representation, 1:1 with a base article.
// One is always created per submission.
type PrintArticle struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	BaseArticleID uuid.UUID      `json:"base_article_id" db:"base_article_id"`
	TenantID      *uuid.UUID     `json:"tenant_id" db:"tenant_id"`
	ExternalID    string         `json:"external_id" db:"external_id"`
	Headline      string         `json:"headline" db:"headline"`
	Subtitle      *string        `json:"subtitle,omitempty" db:"subtitle"`
	Points        pq.StringArray `json:"points" db:"points"`
	Dateline      *string        `json:"dateline,omitempty" db:"dateline"`
	Content       string         `json:"content" db:"content"`
	PlaceName     *string        `json:"place_name,omitempty" db:"place_name"`
	Status        ArticleStatus  `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// WebArticle is the website CMS representation. It is created synchronously
// only in LIMITED mode; in FULL mode the worker creates it later.
type WebArticle struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	BaseArticleID uuid.UUID      `json:"base_article_id" db:"base_article_id"`
	TenantID      *uuid.UUID     `json:"tenant_id" db:"tenant_id"`
	DomainID      *uuid.UUID     `json:"domain_id" db:"domain_id"`
	Slug          string         `json:"slug" db:"slug"`
	Title         string         `json:"title" db:"title"`
	ContentHTML   string         `json:"content_html" db:"content_html"`
	PlainText     string         `json:"plain_text" db:"plain_text"`
	MetaTitle     string         `json:"meta_title" db:"meta_title"`
	MetaDesc      string         `json:"meta_description" db:"meta_description"`
	CanonicalURL  string         `json:"canonical_url" db:"canonical_url"`
	JSONLD        []byte         `json:"json_ld" db:"json_ld"`
	CoverImage    *string        `json:"cover_image,omitempty" db:"cover_image"`
	Keywords      pq.StringArray `json:"keywords" db:"keywords"`
	Status        ArticleStatus  `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// PrintArticleUpdateRequest is the PATCH payload for a newspaper article.
type PrintArticleUpdateRequest struct {
	Headline *string        `json:"headline,omitempty"`
	Subtitle *string        `json:"subtitle,omitempty"`
	Content  *string        `json:"content,omitempty"`
	Points   []string       `json:"points,omitempty"`
	Status   *ArticleStatus `json:"status,omitempty"`
}

// Validate checks that the patch is non-empty and the status, if present,
// is a known value.
func (r *PrintArticleUpdateRequest) Validate() error {
	if r.Headline == nil && r.Subtitle == nil && r.Content == nil &&
		r.Points == nil && r.Status == nil {
		return ErrNoFieldsToUpdate
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusDraft, StatusPending, StatusPublished:
		default:
			return NewValidationError("unknown status %q", *r.Status)
		}
	}
	return nil
}

// PrintArticleFilter narrows the newspaper article listing.
type PrintArticleFilter struct {
	TenantID *uuid.UUID
	Status   *ArticleStatus
	Date     *time.Time // UTC day window
	Limit    int
	Offset   int
}
