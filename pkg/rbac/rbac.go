package rbac

import "strings"

// Role is a closed enumeration of the roles the storefront knows about.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// DefaultRole is assumed when an account has no role assignment.
const DefaultRole = RoleCustomer

// Capability names a coarse permission granted to a role.
type Capability string

const (
	CapPlaceOrder     Capability = "PLACE_ORDER"
	CapManageCatalog  Capability = "MANAGE_CATALOG"
	CapManageOrders   Capability = "MANAGE_ORDERS"
	CapManageUsers    Capability = "MANAGE_USERS"
	CapViewAuditTrail Capability = "VIEW_AUDIT_TRAIL"
)

var capabilities = map[Role]map[Capability]bool{
	RoleCustomer: {
		CapPlaceOrder: true,
	},
	RoleManager: {
		CapPlaceOrder:   true,
		CapManageOrders: true,
	},
	RoleAdmin: {
		CapPlaceOrder:     true,
		CapManageCatalog:  true,
		CapManageOrders:   true,
		CapManageUsers:    true,
		CapViewAuditTrail: true,
	},
}

// ParseRole resolves a free-form role tag to the closed enumeration.
// Matching is case-insensitive. Unknown tags report ok=false.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleCustomer):
		return RoleCustomer, true
	case string(RoleManager):
		return RoleManager, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Principal is the resolved actor behind a request. A nil *Principal is the
// anonymous principal.
type Principal struct {
	AccountID   int64  `json:"account_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// IsAnonymous reports whether p represents an unauthenticated caller.
func (p *Principal) IsAnonymous() bool {
	return p == nil || p.AccountID == 0
}

// HasRole compares the principal's role tag against r case-insensitively.
func (p *Principal) HasRole(r Role) bool {
	if p.IsAnonymous() {
		return false
	}
	return strings.EqualFold(p.Role, string(r))
}

// Can reports whether the principal's role grants the capability. An account
// with an unknown role tag falls back to the default role's capabilities.
func (p *Principal) Can(c Capability) bool {
	if p.IsAnonymous() {
		return false
	}
	role, ok := ParseRole(p.Role)
	if !ok {
		role = DefaultRole
	}
	return capabilities[role][c]
}

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota
	// DenyUnauthenticated means no valid session; callers redirect to login.
	DenyUnauthenticated
	// DenyForbidden means a valid session lacks the required role; callers
	// redirect to the access-denied page and record the attempt.
	DenyForbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "ALLOW"
	case DenyUnauthenticated:
		return "DENY_UNAUTHENTICATED"
	case DenyForbidden:
		return "DENY_FORBIDDEN"
	default:
		return "UNKNOWN"
	}
}

// Authorize evaluates the principal against a route's required role set.
// An empty required set allows any authenticated principal. Role comparison
// is case-insensitive exact match. The function is pure: route dispatch,
// redirects and audit writes live with the caller.
func Authorize(p *Principal, required ...Role) Decision {
	if p.IsAnonymous() {
		return DenyUnauthenticated
	}
	if len(required) == 0 {
		return Allow
	}
	for _, r := range required {
		if p.HasRole(r) {
			return Allow
		}
	}
	return DenyForbidden
}
