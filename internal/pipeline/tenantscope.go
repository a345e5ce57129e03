// Package pipeline implements the unified publication orchestration
// pipeline: tenant scoping, location resolution, the AI rewrite decision,
// content normalization, external id generation and the orchestrator that
// ties them together.
package pipeline

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/varta-media/newsdesk/internal/models"
)

// ReporterDirectory resolves the reporter profile linked to a user.
type ReporterDirectory interface {
	ReporterByUser(ctx context.Context, userID uuid.UUID) (*models.Reporter, error)
}

// TenantScopeResolver determines which tenant a request may act on.
//
// SUPER_ADMIN may pass an explicit tenant id or act globally. Every other
// allowed role gets its tenant from its linked reporter profile; a
// client-supplied tenant id is never trusted for those roles.
type TenantScopeResolver struct {
	reporters ReporterDirectory
}

// NewTenantScopeResolver creates a resolver backed by the given directory.
func NewTenantScopeResolver(reporters ReporterDirectory) *TenantScopeResolver {
	return &TenantScopeResolver{reporters: reporters}
}

// Resolve derives the tenant context for a request, or an error that the
// orchestrator uses to short-circuit before any write.
func (r *TenantScopeResolver) Resolve(ctx context.Context, principal *models.Principal, requestedTenantID *uuid.UUID) (*models.TenantContext, error) {
	if principal == nil || principal.Role == "" {
		return nil, models.NewUnauthenticatedError("no authenticated principal")
	}

	if principal.IsSuperAdmin() {
		// Explicit tenant optional; omission means global scope.
		return &models.TenantContext{TenantID: requestedTenantID}, nil
	}

	if !models.IsTenantScoped(principal.Role) {
		return nil, models.NewForbiddenError("role not permitted to publish")
	}

	reporter, err := r.reporters.ReporterByUser(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewForbiddenError("profile not linked to tenant")
		}
		return nil, models.NewInternalError("resolve reporter profile", err)
	}
	if reporter.TenantID == nil {
		return nil, models.NewForbiddenError("profile not linked to tenant")
	}

	return &models.TenantContext{TenantID: reporter.TenantID}, nil
}
