// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maisonhq/maison/internal/platform/apperr"
	"github.com/maisonhq/maison/internal/platform/database/schema"
	"github.com/maisonhq/maison/internal/platform/dberr"
	"github.com/maisonhq/maison/pkg/rbac"
)

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var userColumns = strings.Join(schema.UserDirectory.Columns(), ", ")

// scanUser hydrates a User from a row using the Columns() order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.JobTitle,
		&user.Phone,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Insert persists a new directory record into the users.directory table.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Constraint violations or connectivity errors
*/
func (store *PostgresStore) Insert(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.UserDirectory.Table, userColumns,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := store.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.DisplayName,
		user.JobTitle,
		user.Phone,
		user.Role,
		user.Status,
		user.CreatedAt,
		user.UpdatedAt,
		user.LastLogin,
	)

	if err != nil {
		return dberr.Wrap(err, "directory_insert")
	}

	return nil
}

/*
FindByID retrieves a directory record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated directory entity
  - error: apperr.NotFound or execution errors
*/
func (store *PostgresStore) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns, schema.UserDirectory.Table, schema.UserDirectory.ID)

	user, err := scanUser(store.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("directory_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
List returns every directory record, newest first.

Description: The admin SPA renders the full directory; the deployment scale
is a back-office staff list, not a customer table, so no pagination is
applied here.

Parameters:
  - context: context.Context

Returns:
  - []User: Full directory
  - error: Execution errors
*/
func (store *PostgresStore) List(context context.Context) ([]User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC",
		userColumns, schema.UserDirectory.Table, schema.UserDirectory.CreatedAt)

	rows, err := store.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("directory_list_failed: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

/*
ListByRole returns every directory record holding the given role.

Parameters:
  - context: context.Context
  - role: rbac.Role

Returns:
  - []User: Matching records, newest first
  - error: Execution errors
*/
func (store *PostgresStore) ListByRole(context context.Context, role rbac.Role) ([]User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC",
		userColumns, schema.UserDirectory.Table,
		schema.UserDirectory.Role, schema.UserDirectory.CreatedAt)

	rows, err := store.pool.Query(context, query, role)
	if err != nil {
		return nil, fmt.Errorf("directory_list_by_role_failed: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

/*
Update persists changes to a directory record's mutable fields.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Execution errors
*/
func (store *PostgresStore) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $1`,
		schema.UserDirectory.Table,
		schema.UserDirectory.DisplayName, schema.UserDirectory.JobTitle,
		schema.UserDirectory.Phone, schema.UserDirectory.Role,
		schema.UserDirectory.Status, schema.UserDirectory.UpdatedAt,
		schema.UserDirectory.ID,
	)

	user.UpdatedAt = time.Now()
	_, err := store.pool.Exec(context, query,
		user.ID,
		user.DisplayName,
		user.JobTitle,
		user.Phone,
		user.Role,
		user.Status,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "directory_update")
	}

	return nil
}

/*
Delete permanently removes the directory record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (store *PostgresStore) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.UserDirectory.Table, schema.UserDirectory.ID)

	_, err := store.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("directory_delete_failed: %w", err)
	}
	return nil
}

/*
RoleOf returns only the role column for the given user ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - rbac.Role: Authoritative role
  - error: apperr.NotFound or execution errors
*/
func (store *PostgresStore) RoleOf(context context.Context, userID string) (rbac.Role, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.UserDirectory.Role, schema.UserDirectory.Table, schema.UserDirectory.ID)

	var role rbac.Role
	err := store.pool.QueryRow(context, query, userID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rbac.RoleUnknown, apperr.NotFound("User")
		}
		return rbac.RoleUnknown, fmt.Errorf("directory_role_of_failed: %w", err)
	}

	return role, nil
}

/*
TouchLastLogin stamps the record's last-login time to now.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution errors
*/
func (store *PostgresStore) TouchLastLogin(context context.Context, userID string) error {
	query := fmt.Sprintf("UPDATE %s SET %s = $2 WHERE %s = $1",
		schema.UserDirectory.Table, schema.UserDirectory.LastLogin, schema.UserDirectory.ID)

	_, err := store.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("directory_touch_last_login_failed: %w", err)
	}
	return nil
}

// collectUsers drains a row set into a slice.
func collectUsers(rows pgx.Rows) ([]User, error) {
	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("directory_scan_failed: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory_rows_failed: %w", err)
	}

	return users, nil
}
