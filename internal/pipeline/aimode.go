package pipeline

import (
	"github.com/varta-media/newsdesk/internal/models"
)

// Prompt sets per mode. FULL rewrites every artifact; LIMITED keeps AI to
// SEO metadata and category inference.
var (
	fullPrompts    = []string{"newspaper", "web", "shortnews"}
	limitedPrompts = []string{"seo", "category"}
)

// DecideAIMode turns the tenant flag and the optional per-request override
// into the rewrite policy.
//
// Rules, in order:
//  1. override = true is a SUPER_ADMIN testing switch; any other role is
//     rejected before any further processing.
//  2. override = false forces LIMITED for every role.
//  3. No override: the tenant flag (default enabled when absent) decides.
//
// The override is never written back to tenant configuration.
func DecideAIMode(flags *models.TenantFeatureFlags, override *bool, role string) (models.AIDecision, error) {
	enabled := flags.RewriteEnabled()

	if override != nil {
		if *override && role != models.RoleSuperAdmin {
			return models.AIDecision{}, models.NewForbiddenError("forceAiRewriteEnabled=true requires SUPER_ADMIN")
		}
		return decision(*override, enabled, models.AIDecisionSourceOverride), nil
	}

	return decision(enabled, enabled, models.AIDecisionSourceTenantFlag), nil
}

func decision(full, tenantEnabled bool, source string) models.AIDecision {
	mode := models.AIModeLimited
	prompts := limitedPrompts
	if full {
		mode = models.AIModeFull
		prompts = fullPrompts
	}
	return models.AIDecision{
		Mode:                   mode,
		TenantAIRewriteEnabled: tenantEnabled,
		Source:                 source,
		PromptsToRun:           prompts,
	}
}
