// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package identity

import (
	"context"
	"time"

	"github.com/maisonhq/maison/pkg/rbac"
)

// # Identity Data Access

// Provider defines the data access contract for identity records.
//
// Implementations must make each operation individually atomic. Callers that
// need identity and directory writes to agree run a compensation step on
// failure; see the directory service.
type Provider interface {

	/*
		CreateIdentity persists a brand-new credential record.

		Parameters:
		  - context: context.Context
		  - identity: *Identity

		Returns:
		  - error: Conflict on duplicate email, or persistence failures
	*/
	CreateIdentity(context context.Context, identity *Identity) error

	/*
		FindByID returns the identity with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Identity: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Identity, error)

	/*
		FindByEmail returns the identity with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Identity: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Identity, error)

	/*
		UpdateDisplayName synchronizes the display name mirrored on the
		credential record.

		Parameters:
		  - context: context.Context
		  - id: string
		  - displayName: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateDisplayName(context context.Context, id, displayName string) error

	/*
		SetDisabled toggles whether the identity may authenticate.

		Parameters:
		  - context: context.Context
		  - id: string
		  - disabled: bool

		Returns:
		  - error: Persistence failures
	*/
	SetDisabled(context context.Context, id string, disabled bool) error

	/*
		DeleteIdentity permanently removes the credential record.

		Description: Hard delete. Used both for account removal and as the
		compensation step when a directory write fails after the identity
		was already created.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteIdentity(context context.Context, id string) error
}

// # Role Claim Cache

// RoleClaimCache defines the contract for the volatile role-claim mirror.
//
// Entries expire on their own; invalidation on role change is an optimization
// that tightens the staleness window, not a correctness requirement.
type RoleClaimCache interface {

	/*
		GetRoleClaim retrieves the cached role for a user ID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - rbac.Role: Cached role
		  - error: apperr.NotFound on cache miss, or connectivity errors
	*/
	GetRoleClaim(context context.Context, userID string) (rbac.Role, error)

	/*
		SetRoleClaim stores the role for a user ID with a TTL.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: rbac.Role
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	SetRoleClaim(context context.Context, userID string, role rbac.Role, ttl time.Duration) error

	/*
		InvalidateRoleClaim drops the cached role for a user ID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Deletion failures
	*/
	InvalidateRoleClaim(context context.Context, userID string) error
}

// # Directory Bridge

// RoleSource resolves the authoritative role for a user ID.
//
// The directory store implements this. Declaring the contract here keeps the
// identity package free of a dependency on the directory package.
type RoleSource interface {

	/*
		RoleOf returns the directory role recorded for the user ID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - rbac.Role: Authoritative role
		  - error: apperr.NotFound if no directory record exists
	*/
	RoleOf(context context.Context, userID string) (rbac.Role, error)
}
