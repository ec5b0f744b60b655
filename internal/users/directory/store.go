// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package directory

import (
	"context"

	"github.com/maisonhq/maison/pkg/rbac"
)

// # Directory Data Access

// Store defines the data access contract for directory records.
//
// It also satisfies [identity.RoleSource] via RoleOf, making the directory
// the authoritative role backend behind the authenticator's cache.
type Store interface {

	/*
		Insert persists a brand-new directory record.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Insert(context context.Context, user *User) error

	/*
		FindByID returns the directory record with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		List returns every directory record, newest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []User: Full directory
		  - error: Retrieval failures
	*/
	List(context context.Context) ([]User, error)

	/*
		ListByRole returns every directory record holding the given role.

		Parameters:
		  - context: context.Context
		  - role: rbac.Role

		Returns:
		  - []User: Matching records
		  - error: Retrieval failures
	*/
	ListByRole(context context.Context, role rbac.Role) ([]User, error)

	/*
		Update persists changes to a directory record's mutable fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete permanently removes the directory record.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		RoleOf returns only the role column for the given user ID.

		Description: Hot path for the request authenticator; avoids hydrating
		the full record on every request.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - rbac.Role: Authoritative role
		  - error: apperr.NotFound or retrieval failures
	*/
	RoleOf(context context.Context, userID string) (rbac.Role, error)

	/*
		TouchLastLogin stamps the record's last-login time to now.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(context context.Context, userID string) error
}
