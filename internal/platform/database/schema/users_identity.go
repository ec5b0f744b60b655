// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

// Package schema is the single source of truth for table and column names.
//
// Repositories build their SQL from these definitions so that a rename
// touches exactly one file.
package schema

// UserIdentityTable represents the 'users.identity' table
type UserIdentityTable struct {
	Table       string
	ID          string
	Email       string
	Password    string
	DisplayName string
	Disabled    string
	CreatedAt   string
	UpdatedAt   string
}

// UserIdentity is the schema definition for users.identity
var UserIdentity = UserIdentityTable{
	Table:       "users.identity",
	ID:          "id",
	Email:       "email",
	Password:    "passwordhash",
	DisplayName: "displayname",
	Disabled:    "disabled",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserIdentityTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.DisplayName, t.Disabled,
		t.CreatedAt, t.UpdatedAt,
	}
}
