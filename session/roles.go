package session

import (
	"slices"

	"github.com/jrsteele09/go-auth-client/authmodel"
)

// HasRole is false when the session has no roles.
func (m *Manager) HasRole(role string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasRole(role)
}

// HasAllRoles is false when the session has no roles, even for an empty
// roles argument; the absent-roles check takes precedence over vacuous truth.
// With roles present an empty argument is true.
func (m *Manager) HasAllRoles(roles ...string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.Roles == nil {
		return false
	}
	for _, r := range roles {
		if !m.hasRole(r) {
			return false
		}
	}
	return true
}

// HasAnyRole is false when the session has no roles or roles is empty.
func (m *Manager) HasAnyRole(roles ...string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.Roles == nil {
		return false
	}
	for _, r := range roles {
		if m.hasRole(r) {
			return true
		}
	}
	return false
}

func (m *Manager) hasRole(role string) bool {
	if m.state.Roles == nil {
		return false
	}
	return slices.Contains(m.state.Roles, role)
}

// CanAccess decides whether the session satisfies dest's requirement.
//
//	nil destination or nil Auth    -> true
//	RequireRoles{All: true}        -> HasAllRoles
//	RequireRoles{All: false}       -> HasAnyRole
//	RequireLogin(b)                -> b == LoggedIn
func (m *Manager) CanAccess(dest *authmodel.Destination) bool {
	if dest == nil || dest.Auth == nil {
		return true
	}
	switch req := dest.Auth.(type) {
	case authmodel.RequireRoles:
		return m.checkRoles(req)
	case *authmodel.RequireRoles:
		return req == nil || m.checkRoles(*req)
	case authmodel.RequireLogin:
		return bool(req) == m.LoggedIn()
	case *authmodel.RequireLogin:
		return req == nil || bool(*req) == m.LoggedIn()
	default:
		return false
	}
}

func (m *Manager) checkRoles(req authmodel.RequireRoles) bool {
	if req.All {
		return m.HasAllRoles(req.Roles...)
	}
	return m.HasAnyRole(req.Roles...)
}
