// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package identity

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
)

// PostgresProvider implements the Provider interface using pgx.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider creates a new PostgreSQL implementation of Provider.
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

var identityColumns = strings.Join(schema.UserIdentity.Columns(), ", ")

// scanIdentity hydrates an Identity from a row using the Columns() order.
func scanIdentity(row pgx.Row) (*Identity, error) {
	identity := &Identity{}
	err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.DisplayName,
		&identity.Disabled,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return identity, nil
}

/*
CreateIdentity persists a new credential record into the users.identity table.

Description: Initializes timestamps and relies on the unique index on email
to reject duplicates.

Parameters:
  - context: context.Context
  - identity: *Identity

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (provider *PostgresProvider) CreateIdentity(context context.Context, identity *Identity) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.UserIdentity.Table, identityColumns,
	)

	now := time.Now()
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = now
	}
	identity.UpdatedAt = now

	_, err := provider.pool.Exec(context, query,
		identity.ID,
		identity.Email,
		identity.PasswordHash,
		identity.DisplayName,
		identity.Disabled,
		identity.CreatedAt,
		identity.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "identity_create")
	}

	return nil
}

/*
FindByID retrieves an identity record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Identity: Hydrated credential entity
  - error: apperr.NotFound or execution errors
*/
func (provider *PostgresProvider) FindByID(context context.Context, id string) (*Identity, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		identityColumns, schema.UserIdentity.Table, schema.UserIdentity.ID,
	)

	identity, err := scanIdentity(provider.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Identity")
		}
		return nil, fmt.Errorf("identity_find_by_id_failed: %w", err)
	}

	return identity, nil
}

/*
FindByEmail retrieves an identity record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Identity: Hydrated credential entity
  - error: apperr.NotFound or execution errors
*/
func (provider *PostgresProvider) FindByEmail(context context.Context, email string) (*Identity, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		identityColumns, schema.UserIdentity.Table, schema.UserIdentity.Email,
	)

	identity, err := scanIdentity(provider.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Identity")
		}
		return nil, fmt.Errorf("identity_find_by_email_failed: %w", err)
	}

	return identity, nil
}

/*
UpdateDisplayName synchronizes the display name mirrored on the credential record.

Parameters:
  - context: context.Context
  - id: string
  - displayName: string

Returns:
  - error: Execution errors
*/
func (provider *PostgresProvider) UpdateDisplayName(context context.Context, id, displayName string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1`,
		schema.UserIdentity.Table,
		schema.UserIdentity.DisplayName, schema.UserIdentity.UpdatedAt,
		schema.UserIdentity.ID,
	)

	_, err := provider.pool.Exec(context, query, id, displayName, time.Now())
	if err != nil {
		return fmt.Errorf("identity_update_display_name_failed: %w", err)
	}

	return nil
}

/*
SetDisabled toggles whether the identity may authenticate.

Parameters:
  - context: context.Context
  - id: string
  - disabled: bool

Returns:
  - error: Execution errors
*/
func (provider *PostgresProvider) SetDisabled(context context.Context, id string, disabled bool) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1`,
		schema.UserIdentity.Table,
		schema.UserIdentity.Disabled, schema.UserIdentity.UpdatedAt,
		schema.UserIdentity.ID,
	)

	_, err := provider.pool.Exec(context, query, id, disabled, time.Now())
	if err != nil {
		return fmt.Errorf("identity_set_disabled_failed: %w", err)
	}

	return nil
}

/*
DeleteIdentity permanently removes the credential record.

Description: Hard delete. Also used as the compensation step of the
create saga, so it must succeed when the row exists and be a no-op
when it doesn't.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (provider *PostgresProvider) DeleteIdentity(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.UserIdentity.Table, schema.UserIdentity.ID)

	_, err := provider.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("identity_delete_failed: %w", err)
	}
	return nil
}
