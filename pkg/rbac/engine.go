// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package rbac

import "fmt"

// # Identity & Operations

// Actor is the authenticated identity performing an operation.
//
// It is resolved once per request by the authenticator and is immutable for
// the lifetime of that request. It is never persisted.
type Actor struct {
	ID   string
	Role Role
}

// Operation identifies a user-management action for decisions and audit logs.
type Operation string

const (
	OpViewSelf  Operation = "view_self"
	OpViewOther Operation = "view_other"
	OpList      Operation = "list"
	OpSearch    Operation = "search"
	OpCreate    Operation = "create"
	OpUpdate    Operation = "update"
	OpDelete    Operation = "delete"
)

// # Decisions

// Decision is the outcome of a permission check.
//
// Denials always carry a reason that names the actor's role and the attempted
// action so every 403 is auditable. Reasons never contain target secrets.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny builds a negative decision with a formatted audit reason.
func Deny(format string, args ...any) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// # Permission Engine

// CanManage reports whether an actor role may manage accounts of the target
// role. Management authority extends to the actor's own level and below.
func CanManage(actor, target Role) bool {
	return LevelOf(actor) >= LevelOf(target)
}

// CanAssignRole reports whether an actor role may hand out the desired role.
//
// Admins assign any role. Managers assign only staff and user. Everyone else
// (including unknown roles) assigns nothing.
func CanAssignRole(actor, desired Role) bool {
	switch actor {
	case RoleAdmin:
		return true
	case RoleManager:
		return desired == RoleStaff || desired == RoleUser
	default:
		return false
	}
}

// CanElevateOwnRole reports whether an actor may change their OWN role to the
// desired role.
//
// Raising one's own privilege level is always denied, even for roles the actor
// could assign to others. Lateral or downward self-changes defer to
// [CanAssignRole].
func CanElevateOwnRole(actor, desired Role) bool {
	if LevelOf(desired) > LevelOf(actor) {
		return false
	}
	return CanAssignRole(actor, desired)
}

// CanEditUser reports whether an actor role may edit an account of the target
// role.
func CanEditUser(actor, target Role) bool {
	return CanManage(actor, target)
}

// CanDeleteUser reports whether the actor may delete the target account.
//
// Self-deletion is denied unconditionally; otherwise the check is
// [CanManage].
func CanDeleteUser(actor, target Role, actorID, targetID string) bool {
	if actorID == targetID {
		return false
	}
	return CanManage(actor, target)
}

// CanAccessRecord reports whether the actor may read the target's record.
//
// Self-access is always allowed regardless of role; access to other records
// requires admin or manager.
func CanAccessRecord(actor Role, actorID, targetID string) bool {
	if actorID == targetID {
		return true
	}
	return actor == RoleAdmin || actor == RoleManager
}

// CanListOrSearch reports whether the actor role may enumerate the directory.
func CanListOrSearch(actor Role) bool {
	return actor == RoleAdmin || actor == RoleManager
}

// IsElevated reports whether the role satisfies the elevated authentication
// tier required by list, search, create, and delete operations.
func IsElevated(actor Role) bool {
	return actor == RoleAdmin || actor == RoleManager
}

// AssignableRoles returns the roles an actor may hand out, in descending
// order of privilege. Empty for staff, user, and unknown roles.
func AssignableRoles(actor Role) []Role {
	switch actor {
	case RoleAdmin:
		return []Role{RoleAdmin, RoleManager, RoleStaff, RoleUser}
	case RoleManager:
		return []Role{RoleStaff, RoleUser}
	default:
		return nil
	}
}

// EditableRoles returns the roles an actor may select when editing the target
// account. For the actor's own account the list excludes anything above the
// actor's current level, so a form built from it can never offer a
// self-elevation.
func EditableRoles(actor Role, actorID, targetID string) []Role {
	assignable := AssignableRoles(actor)
	if actorID != targetID {
		return assignable
	}

	own := make([]Role, 0, len(assignable))
	for _, candidate := range assignable {
		if LevelOf(candidate) <= LevelOf(actor) {
			own = append(own, candidate)
		}
	}
	return own
}
