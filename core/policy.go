package core

import "strings"

// AccessRule gates a path pattern and method set behind a set of roles.
// A pattern ending in "/**" matches the prefix itself and any sub-path.
// An empty Methods set matches any method.
type AccessRule struct {
	Pattern string
	Methods []string
	Roles   []Role
}

// PolicyEngine evaluates an ordered rule table, first match wins. The table
// is fixed at construction and never mutated, so concurrent use needs no
// locking.
type PolicyEngine struct {
	rules []AccessRule
}

func NewPolicyEngine(rules []AccessRule) *PolicyEngine {
	return &PolicyEngine{rules: rules}
}

// DefaultAccessRules is the static rule table for the account API:
// docs and internal endpoints are admin-only, v2 reads are open to both
// roles, any other v2 method is admin-only, and everything else is open.
// Rule order matters; the v2 GET rule must precede the v2 catch-all.
func DefaultAccessRules() []AccessRule {
	return []AccessRule{
		{Pattern: "/docs/**", Roles: []Role{RoleAdmin}},
		{Pattern: "/openapi.json", Roles: []Role{RoleAdmin}},
		{Pattern: "/internal/**", Roles: []Role{RoleAdmin}},
		{Pattern: "/api/v2/accounts/**", Methods: []string{"GET"}, Roles: []Role{RoleAdmin, RoleViewer}},
		{Pattern: "/api/v2/accounts/**", Roles: []Role{RoleAdmin}},
	}
}

// RequiredRoles returns the role set of the first rule matching path and
// method. ok is false when no rule matches, meaning the request is open.
func (p *PolicyEngine) RequiredRoles(path, method string) (roles []Role, ok bool) {
	for _, rule := range p.rules {
		if !matchPattern(rule.Pattern, path) {
			continue
		}
		if !matchMethod(rule.Methods, method) {
			continue
		}
		return rule.Roles, true
	}
	return nil, false
}

// Authorize decides whether principal may perform method on path. A nil
// principal is an anonymous request. Denials carry the failure to surface:
// missing authentication is 401, an insufficient role is 403.
func (p *PolicyEngine) Authorize(path, method string, principal *Principal) error {
	required, gated := p.RequiredRoles(path, method)
	if !gated {
		return nil
	}
	if principal == nil {
		return AuthenticationError{Reason: AuthMissing}
	}
	for _, role := range required {
		if principal.Role == role {
			return nil
		}
	}
	return AuthorizationError{Username: principal.Username, Required: required}
}

// matchPattern implements exact match plus "/**" wildcard suffix semantics:
// "/x/**" matches "/x", "/x/" and any deeper path.
func matchPattern(pattern, path string) bool {
	if prefix, found := strings.CutSuffix(pattern, "/**"); found {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}

func matchMethod(methods []string, method string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
