package models

import "github.com/google/uuid"

// Role names recognised by the tenant scope resolver.
const (
	RoleSuperAdmin    = "SUPER_ADMIN"
	RoleTenantAdmin   = "TENANT_ADMIN"
	RoleReporter      = "REPORTER"
	RoleAdminEditor   = "ADMIN_EDITOR"
	RoleNewsModerator = "NEWS_MODERATOR"
)

// Principal is the authenticated caller extracted from the JWT by the
// auth middleware. A nil Principal means the request carried no usable
// credentials.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// IsSuperAdmin reports whether the principal holds global scope.
func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == RoleSuperAdmin
}

// tenantScopedRoles are the roles whose tenant is taken from their linked
// reporter profile, never from request parameters.
var tenantScopedRoles = map[string]bool{
	RoleTenantAdmin:   true,
	RoleReporter:      true,
	RoleAdminEditor:   true,
	RoleNewsModerator: true,
}

// IsTenantScoped reports whether the role resolves its tenant through a
// reporter profile link.
func IsTenantScoped(role string) bool {
	return tenantScopedRoles[role]
}

// TenantContext is the resolved scope for one request. TenantID is nil only
// for SUPER_ADMIN acting globally. The context is derived once and never
// mutated afterwards.
type TenantContext struct {
	TenantID   *uuid.UUID `json:"tenant_id,omitempty"`
	DomainID   *uuid.UUID `json:"domain_id,omitempty"`
	DomainName *string    `json:"domain_name,omitempty"`
}
