// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package rbac

// # Declarative Policy Table

// PolicySnapshot is a declarative, serializable view of the rules in this
// package.
//
// The admin SPA fetches it once at startup and derives every advisory UI
// check (hidden buttons, filtered role dropdowns) from it instead of carrying
// a hand-maintained copy of the hierarchy. The snapshot carries no authority:
// the server re-evaluates every decision on every request.
type PolicySnapshot struct {
	// Levels maps each known role to its hierarchy level.
	Levels map[Role]int `json:"levels"`

	// Assignable maps each role to the roles it may hand out.
	Assignable map[Role][]Role `json:"assignable"`

	// Elevated lists the roles that satisfy the elevated tier
	// (list, search, create, delete).
	Elevated []Role `json:"elevated"`
}

// PolicyTable builds the current [PolicySnapshot].
//
// The result is freshly allocated on every call; callers may mutate it freely.
func PolicyTable() PolicySnapshot {
	levels := make(map[Role]int, len(Roles()))
	assignable := make(map[Role][]Role, len(Roles()))

	for _, role := range Roles() {
		levels[role] = LevelOf(role)
		assignable[role] = AssignableRoles(role)
	}

	return PolicySnapshot{
		Levels:     levels,
		Assignable: assignable,
		Elevated:   []Role{RoleAdmin, RoleManager},
	}
}
