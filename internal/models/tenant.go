package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an isolated publisher account owning domains, reporters and
// content.
type Tenant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Enabled   bool      `json:"enabled" db:"enabled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Domain is a public hostname bound to a tenant; it selects the
// web-publishing context.
type Domain struct {
	ID       uuid.UUID `json:"id" db:"id"`
	TenantID uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name     string    `json:"name" db:"name"`
	BaseURL  string    `json:"base_url" db:"base_url"`
}

// TenantFeatureFlags holds per-tenant entitlements. AIArticleRewriteEnabled
// is nullable; absence means enabled.
type TenantFeatureFlags struct {
	TenantID                uuid.UUID `json:"tenant_id" db:"tenant_id"`
	AIArticleRewriteEnabled *bool     `json:"ai_article_rewrite_enabled" db:"ai_article_rewrite_enabled"`
}

// RewriteEnabled applies the default-true rule for an absent flag.
func (f *TenantFeatureFlags) RewriteEnabled() bool {
	if f == nil || f.AIArticleRewriteEnabled == nil {
		return true
	}
	return *f.AIArticleRewriteEnabled
}

// Reporter links an authenticated user to the tenant they write for.
type Reporter struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	UserID   uuid.UUID  `json:"user_id" db:"user_id"`
	TenantID *uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name     string     `json:"name" db:"name"`
}

// Category is a tenant-scoped content category. Categories may be created
// on the fly by the fuzzy resolver when no close match exists.
type Category struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TenantID  *uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name      string     `json:"name" db:"name"`
	Slug      string     `json:"slug" db:"slug"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
