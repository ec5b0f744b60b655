// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

/*
Package rbac implements the role hierarchy and permission engine that governs
every user-management operation on the platform.

It is deliberately dependency-free and side-effect-free so the exact same
decision logic can be vendored into any runtime (API server, admin CLI, or the
storefront client for advisory UI gating) without drift.

Architecture:

  - Role: a closed, typed set of four roles with an explicit total order.
  - Engine: pure decision functions (CanManage, CanAssignRole, ...).
  - PolicyTable: a declarative export of the rules, shipped to clients so
    their advisory checks derive from a single source of truth.

Every function is total: unknown or corrupted role strings map to level 0 and
therefore can never be granted anything (fail-closed, never a panic).
*/
package rbac

// # Role Set

// Role represents the authorization level granted to an account.
type Role string

const (
	// Full control, including assignment of admin and manager roles
	RoleAdmin Role = "admin"

	// Can manage staff and regular users but never peers-and-above roles
	RoleManager Role = "manager"

	// Back-office operator with no user-management authority
	RoleStaff Role = "staff"

	// Default role for a registered storefront customer
	RoleUser Role = "user"

	// Zero value for missing or corrupted role data. Level 0, grants nothing.
	RoleUnknown Role = ""
)

// Roles lists every known role in descending order of privilege.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleStaff, RoleUser}
}

// IsValid reports whether the role belongs to the closed role set.
func (r Role) IsValid() bool {
	return LevelOf(r) > 0
}

// # Role Hierarchy

// Comparison results returned by [Compare].
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// LevelOf maps a role to its fixed numeric hierarchy level.
//
// Anything outside the closed set maps to 0, which can manage nothing and can
// be managed by every level >= 1. A corrupted role string degrades to full
// denial rather than an error or a crash.
func LevelOf(r Role) int {
	switch r {
	case RoleAdmin:
		return 4
	case RoleManager:
		return 3
	case RoleStaff:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// Compare orders two roles by hierarchy level.
//
// It returns [Less], [Equal], or [Greater] describing a relative to b.
// The order is total: unknown roles compare at level 0.
func Compare(a, b Role) int {
	levelA, levelB := LevelOf(a), LevelOf(b)

	switch {
	case levelA < levelB:
		return Less
	case levelA > levelB:
		return Greater
	default:
		return Equal
	}
}

// AtLeast reports whether r meets or exceeds the target role's level.
func (r Role) AtLeast(target Role) bool {
	return LevelOf(r) >= LevelOf(target)
}
