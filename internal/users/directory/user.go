// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

/*
Package directory implements the user-directory service of the Maison admin
API.

It owns the directory records (profile, role, status) and mediates every
create, read, update, delete, list, and search through the permission engine.
The directory is the only writer of user records and the authoritative source
for roles.

# Architecture

  - Service: orchestrates Authenticate → Authorize → Execute → MapResult.
  - Store: abstracted Postgres repository for directory records.
  - identity.Provider: the external credential store, written in lockstep
    with the directory via explicit sagas (no shared transaction).

Every policy denial is logged with the actor's id and role, the target, the
operation, and the decision reason before the 403 leaves the service.
*/
package directory

import (
	"time"

	"github.com/maisonhq/maison/pkg/rbac"
)

// # Domain Entities

// Status represents the lifecycle state of a directory record.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Statuses lists every known account status.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusSuspended}
}

// IsValid reports whether the status belongs to the closed status set.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	default:
		return false
	}
}

// User represents a directory record as rendered by the admin SPA.
//
// The record carries no credential material; passwords live only in the
// identity store.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	JobTitle    string     `json:"jobTitle,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        rbac.Role  `json:"role"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLogin   *time.Time `json:"lastLogin"`
}

// # Field Identifiers

// Global field names for validation and patch mapping.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "displayName"
	FieldJobTitle    = "jobTitle"
	FieldPhone       = "phone"
	FieldRole        = "role"
	FieldStatus      = "status"
	FieldUserID      = "userId"
)
