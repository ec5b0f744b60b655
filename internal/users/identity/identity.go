// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

/*
Package identity implements the credential side of the user-management system.

It owns the identity records (email + password hash), the volatile role-claim
cache, and the request authenticator that turns a bearer credential into a
verified actor.

# Architecture

Identity and directory are two separate stores with no shared transaction,
mirroring a hosted identity provider paired with a metadata database. The
directory service treats writes that span both as an explicit saga; this
package only promises that each of its own operations is atomic.

The actor's role is never trusted from the token. It lives in the directory
and is mirrored here only as a short-lived cache entry, so a demotion or
deactivation takes effect within one TTL window at worst.
*/
package identity

import (
	"time"
)

// # Domain Entities

// Identity represents a credential record held by the identity store.
//
// It deliberately carries no role or profile data. Everything the admin SPA
// renders about a person lives in the directory; the identity row exists only
// to authenticate.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string    `json:"display_name"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
)
