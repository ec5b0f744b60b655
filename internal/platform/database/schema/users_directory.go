// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package schema

// UserDirectoryTable represents the 'users.directory' table
type UserDirectoryTable struct {
	Table       string
	ID          string
	Email       string
	DisplayName string
	JobTitle    string
	Phone       string
	Role        string
	Status      string
	CreatedAt   string
	UpdatedAt   string
	LastLogin   string
}

// UserDirectory is the schema definition for users.directory
var UserDirectory = UserDirectoryTable{
	Table:       "users.directory",
	ID:          "id",
	Email:       "email",
	DisplayName: "displayname",
	JobTitle:    "jobtitle",
	Phone:       "phone",
	Role:        "role",
	Status:      "status",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	LastLogin:   "lastlogin",
}

// Columns returns all standard column names
func (t UserDirectoryTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.DisplayName, t.JobTitle, t.Phone, t.Role,
		t.Status, t.CreatedAt, t.UpdatedAt, t.LastLogin,
	}
}
