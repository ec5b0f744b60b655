// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maisonhq/maison/internal/platform/apperr"
	"github.com/maisonhq/maison/internal/platform/constants"
	"github.com/maisonhq/maison/internal/platform/ctxutil"
	"github.com/maisonhq/maison/internal/platform/sec"
	"github.com/maisonhq/maison/internal/platform/validate"
	"github.com/maisonhq/maison/internal/users/identity"
	"github.com/maisonhq/maison/pkg/pointer"
	"github.com/maisonhq/maison/pkg/rbac"
	"github.com/maisonhq/maison/pkg/slice"
	"github.com/maisonhq/maison/pkg/uuid"
)

// # Service

// Service implements the user-directory use cases.
//
// # Review Process
//
// Every operation here is a privilege boundary. Changes to the order of
// policy checks, the self-service stripping rules, or the saga steps must be
// reviewed by the security team.
type Service struct {
	store    Store
	provider identity.Provider
	claims   identity.RoleClaimCache
}

// NewService constructs a directory [Service] with its dependencies.
func NewService(store Store, provider identity.Provider, claims identity.RoleClaimCache) *Service {
	return &Service{
		store:    store,
		provider: provider,
		claims:   claims,
	}
}

// # Inputs

// CreateInput holds the data required to provision a new account.
type CreateInput struct {
	Email       string
	Password    string
	DisplayName string
	JobTitle    string
	Phone       string
	Role        rbac.Role
	Status      Status
}

// UpdatePatch holds the fields an update may change. Nil means "leave as is",
// so an explicit empty string still clears a field.
type UpdatePatch struct {
	DisplayName *string
	JobTitle    *string
	Phone       *string
	Role        *rbac.Role
	Status      *Status
}

// # Create (saga)

/*
Create provisions a new account: identity first, directory record second.

Description: The two writes cross independent stores with no shared
transaction. On a directory failure the identity write is compensated by
deleting the identity; only when that compensation also fails does the caller
see PARTIAL_FAILURE, carrying the orphaned id and email for reconciliation.

Parameters:
  - context: context.Context
  - actor: rbac.Actor (verified caller)
  - input: CreateInput

Returns:
  - *User: Created directory record
  - error: PermissionDenied, ValidationError, Conflict, PartialFailure
*/
func (service *Service) Create(context context.Context, actor rbac.Actor, input CreateInput) (*User, error) {

	// ── 1. Defaults & Validation ──────────────────────────────────────────
	if input.Role == "" {
		input.Role = rbac.RoleUser
	}
	if input.Status == "" {
		input.Status = StatusActive
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldDisplayName, input.DisplayName).
		OneOf(FieldRole, string(input.Role), roleStrings()...).
		OneOf(FieldStatus, string(input.Status), statusStrings()...).
		Err()
	if err != nil {
		return nil, err
	}

	// ── 2. Authorization ──────────────────────────────────────────────────
	if !rbac.IsElevated(actor.Role) {
		return nil, service.deny(context, actor, "", rbac.OpCreate,
			fmt.Sprintf("Access denied. User management requires Admin or Manager permissions. Current role: %s", roleLabel(actor.Role)))
	}

	if !rbac.CanAssignRole(actor.Role, input.Role) {
		return nil, service.deny(context, actor, "", rbac.OpCreate,
			fmt.Sprintf("Access denied. %s users cannot assign %s role. You can only assign roles below your level.", actor.Role, input.Role))
	}

	// ── 3. Identity Provisioning ──────────────────────────────────────────
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("directory_create_hash_failed: %w", err))
	}

	record := &identity.Identity{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		DisplayName:  input.DisplayName,
	}
	if err := service.provider.CreateIdentity(context, record); err != nil {
		return nil, err
	}

	// ── 4. Role Claim (best effort) ───────────────────────────────────────
	if err := service.claims.SetRoleClaim(context, record.ID, input.Role, constants.RoleClaimTTL); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "role_claim_set_failed",
			slog.String("user_id", record.ID),
			slog.String("error", err.Error()),
		)
	}

	// ── 5. Directory Record (compensated on failure) ──────────────────────
	user := &User{
		ID:          record.ID,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		JobTitle:    input.JobTitle,
		Phone:       input.Phone,
		Role:        input.Role,
		Status:      input.Status,
	}

	if err := service.store.Insert(context, user); err != nil {
		if compensationErr := service.provider.DeleteIdentity(context, record.ID); compensationErr != nil {
			ctxutil.GetLogger(context).ErrorContext(context, "create_compensation_failed",
				slog.String("user_id", record.ID),
				slog.String("email", record.Email),
				slog.String("error", compensationErr.Error()),
			)
			return nil, apperr.PartialFailure(
				fmt.Sprintf("User partially created: identity %s (%s) exists without a directory record", record.ID, record.Email),
				err,
			)
		}
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_created",
		slog.String("actor_id", actor.ID),
		slog.String("actor_role", string(actor.Role)),
		slog.String("target_id", user.ID),
		slog.String("target_role", string(user.Role)),
	)

	return user, nil
}

// # Read Operations

/*
Get returns a single directory record.

Parameters:
  - context: context.Context
  - actor: rbac.Actor
  - targetID: string

Returns:
  - *User: Directory record
  - error: PermissionDenied or NotFound
*/
func (service *Service) Get(context context.Context, actor rbac.Actor, targetID string) (*User, error) {
	if !rbac.CanAccessRecord(actor.Role, actor.ID, targetID) {
		return nil, service.deny(context, actor, targetID, rbac.OpViewOther,
			fmt.Sprintf("Access denied. You can only access your own profile data unless you are an Admin or Manager. Current role: %s", roleLabel(actor.Role)))
	}

	return service.store.FindByID(context, targetID)
}

/*
List returns the full directory.

Parameters:
  - context: context.Context
  - actor: rbac.Actor

Returns:
  - []User: Every directory record
  - error: PermissionDenied or retrieval failures
*/
func (service *Service) List(context context.Context, actor rbac.Actor) ([]User, error) {
	if !rbac.CanListOrSearch(actor.Role) {
		return nil, service.deny(context, actor, "", rbac.OpList,
			fmt.Sprintf("Access denied. User management requires Admin or Manager permissions. Current role: %s", roleLabel(actor.Role)))
	}

	return service.store.List(context)
}

/*
Search returns directory records matching a case-insensitive substring of the
email or display name. An empty term returns the unfiltered set.

Parameters:
  - context: context.Context
  - actor: rbac.Actor
  - term: string

Returns:
  - []User: Matching records
  - error: PermissionDenied or retrieval failures
*/
func (service *Service) Search(context context.Context, actor rbac.Actor, term string) ([]User, error) {
	if !rbac.CanListOrSearch(actor.Role) {
		return nil, service.deny(context, actor, "", rbac.OpSearch,
			fmt.Sprintf("Access denied. User management requires Admin or Manager permissions. Current role: %s", roleLabel(actor.Role)))
	}

	users, err := service.store.List(context)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return users, nil
	}

	matched := slice.Filter(users, func(user User) bool {
		return strings.Contains(strings.ToLower(user.Email), needle) ||
			strings.Contains(strings.ToLower(user.DisplayName), needle)
	})
	if matched == nil {
		matched = []User{}
	}

	return matched, nil
}

/*
ListByRole returns every directory record holding the given role.

Parameters:
  - context: context.Context
  - actor: rbac.Actor
  - role: rbac.Role

Returns:
  - []User: Matching records
  - error: PermissionDenied, ValidationError, or retrieval failures
*/
func (service *Service) ListByRole(context context.Context, actor rbac.Actor, role rbac.Role) ([]User, error) {
	if !rbac.CanListOrSearch(actor.Role) {
		return nil, service.deny(context, actor, "", rbac.OpList,
			fmt.Sprintf("Access denied. User management requires Admin or Manager permissions. Current role: %s", roleLabel(actor.Role)))
	}

	validator := &validate.Validator{}
	if err := validator.Required(FieldRole, string(role)).OneOf(FieldRole, string(role), roleStrings()...).Err(); err != nil {
		return nil, err
	}

	return service.store.ListByRole(context, role)
}

// # Update

/*
Update applies a partial edit to a directory record.

Description: The access gate runs first, then self-service stripping, then
the management and role-assignment checks against the target's CURRENT role.
Self-service edits (a non-admin/manager editing their own record) silently
drop role and status changes; the allowed surface is display name, job
title, and phone. Concurrent updates are last-write-wins.

Parameters:
  - context: context.Context
  - actor: rbac.Actor
  - targetID: string
  - patch: UpdatePatch

Returns:
  - *User: Updated directory record
  - error: PermissionDenied, NotFound, ValidationError
*/
func (service *Service) Update(context context.Context, actor rbac.Actor, targetID string, patch UpdatePatch) (*User, error) {

	// ── 1. Boundary Access Check ──────────────────────────────────────────
	if !rbac.CanAccessRecord(actor.Role, actor.ID, targetID) {
		return nil, service.deny(context, actor, targetID, rbac.OpUpdate,
			fmt.Sprintf("Access denied. You can only update your own profile unless you are an Admin or Manager. Current role: %s", roleLabel(actor.Role)))
	}

	target, err := service.store.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	// ── 2. Self-Service Stripping ─────────────────────────────────────────
	if actor.ID == targetID && !rbac.IsElevated(actor.Role) {
		if patch.Role != nil || patch.Status != nil {
			ctxutil.GetLogger(context).WarnContext(context, "self_service_fields_stripped",
				slog.String("actor_id", actor.ID),
				slog.String("actor_role", string(actor.Role)),
				slog.Bool("role_stripped", patch.Role != nil),
				slog.Bool("status_stripped", patch.Status != nil),
			)
		}
		patch.Role = nil
		patch.Status = nil
	}

	// ── 3. Management Check ───────────────────────────────────────────────
	if !rbac.CanEditUser(actor.Role, target.Role) {
		return nil, service.deny(context, actor, targetID, rbac.OpUpdate,
			fmt.Sprintf("Access denied. %s users cannot manage %s users.", roleLabel(actor.Role), target.Role))
	}

	// ── 4. Role Change Checks ─────────────────────────────────────────────
	roleChanged := patch.Role != nil && *patch.Role != target.Role
	if roleChanged {
		desired := *patch.Role

		validator := &validate.Validator{}
		if err := validator.OneOf(FieldRole, string(desired), roleStrings()...).Err(); err != nil {
			return nil, err
		}

		if actor.ID == targetID {
			if !rbac.CanElevateOwnRole(actor.Role, desired) {
				return nil, service.deny(context, actor, targetID, rbac.OpUpdate,
					"Access denied. You cannot elevate your own role.")
			}
		} else if !rbac.CanAssignRole(actor.Role, desired) {
			return nil, service.deny(context, actor, targetID, rbac.OpUpdate,
				fmt.Sprintf("Access denied. %s users cannot assign %s role.", roleLabel(actor.Role), desired))
		}
	}

	if patch.Status != nil {
		validator := &validate.Validator{}
		if err := validator.OneOf(FieldStatus, string(*patch.Status), statusStrings()...).Err(); err != nil {
			return nil, err
		}
	}

	// ── 5. Apply & Persist ────────────────────────────────────────────────
	displayNameChanged := patch.DisplayName != nil && *patch.DisplayName != target.DisplayName

	target.DisplayName = pointer.Fallback(patch.DisplayName, target.DisplayName)
	target.JobTitle = pointer.Fallback(patch.JobTitle, target.JobTitle)
	target.Phone = pointer.Fallback(patch.Phone, target.Phone)
	target.Role = pointer.Fallback(patch.Role, target.Role)
	target.Status = pointer.Fallback(patch.Status, target.Status)

	if err := service.store.Update(context, target); err != nil {
		return nil, err
	}

	// ── 6. Identity Propagation (best effort) ─────────────────────────────
	if displayNameChanged {
		if err := service.provider.UpdateDisplayName(context, target.ID, target.DisplayName); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "identity_display_name_sync_failed",
				slog.String("target_id", target.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if roleChanged {
		if err := service.claims.SetRoleClaim(context, target.ID, target.Role, constants.RoleClaimTTL); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "role_claim_refresh_failed",
				slog.String("target_id", target.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_updated",
		slog.String("actor_id", actor.ID),
		slog.String("actor_role", string(actor.Role)),
		slog.String("target_id", target.ID),
		slog.Bool("role_changed", roleChanged),
	)

	return target, nil
}

// # Delete (saga)

/*
Delete removes an account: identity first, directory record second.

Description: Mirror of the create saga. If the identity delete fails nothing
diverged and the original error is returned. If the directory delete fails
after the identity is gone, the caller sees PARTIAL_FAILURE carrying the
id and email of the half-removed account.

Parameters:
  - context: context.Context
  - actor: rbac.Actor
  - targetID: string

Returns:
  - error: PermissionDenied, NotFound, PartialFailure
*/
func (service *Service) Delete(context context.Context, actor rbac.Actor, targetID string) error {

	// ── 1. Authorization ──────────────────────────────────────────────────
	if !rbac.IsElevated(actor.Role) {
		return service.deny(context, actor, targetID, rbac.OpDelete,
			fmt.Sprintf("Access denied. User management requires Admin or Manager permissions. Current role: %s", roleLabel(actor.Role)))
	}

	if actor.ID == targetID {
		return service.deny(context, actor, targetID, rbac.OpDelete,
			"Access denied. You cannot delete your own account.")
	}

	target, err := service.store.FindByID(context, targetID)
	if err != nil {
		return err
	}

	if !rbac.CanDeleteUser(actor.Role, target.Role, actor.ID, targetID) {
		return service.deny(context, actor, targetID, rbac.OpDelete,
			fmt.Sprintf("Access denied. %s users cannot delete %s users.", roleLabel(actor.Role), target.Role))
	}

	// ── 2. Identity Removal ───────────────────────────────────────────────
	if err := service.provider.DeleteIdentity(context, targetID); err != nil {
		return err
	}

	// Drop the cached claim so a lingering token can't resolve a role.
	if err := service.claims.InvalidateRoleClaim(context, targetID); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "role_claim_invalidate_failed",
			slog.String("target_id", targetID),
			slog.String("error", err.Error()),
		)
	}

	// ── 3. Directory Removal ──────────────────────────────────────────────
	if err := service.store.Delete(context, targetID); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "delete_divergence",
			slog.String("target_id", targetID),
			slog.String("email", target.Email),
			slog.String("error", err.Error()),
		)
		return apperr.PartialFailure(
			fmt.Sprintf("User partially deleted: identity %s (%s) removed but directory record remains", targetID, target.Email),
			err,
		)
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_deleted",
		slog.String("actor_id", actor.ID),
		slog.String("actor_role", string(actor.Role)),
		slog.String("target_id", targetID),
		slog.String("target_role", string(target.Role)),
	)

	return nil
}

// # Helpers

// deny logs the denial with full audit fields and returns the 403.
func (service *Service) deny(context context.Context, actor rbac.Actor, targetID string, operation rbac.Operation, reason string) error {
	ctxutil.GetLogger(context).WarnContext(context, "authorization_denied",
		slog.String("actor_id", actor.ID),
		slog.String("actor_role", string(actor.Role)),
		slog.String("target_id", targetID),
		slog.String("operation", string(operation)),
		slog.String("reason", reason),
	)
	return apperr.PermissionDenied(reason)
}

// roleLabel renders a role for client-facing messages. Unknown roles render
// as "unknown" instead of echoing corrupted input back.
func roleLabel(role rbac.Role) string {
	if !role.IsValid() {
		return "unknown"
	}
	return string(role)
}

func roleStrings() []string {
	roles := rbac.Roles()
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}

func statusStrings() []string {
	statuses := Statuses()
	out := make([]string, len(statuses))
	for i, status := range statuses {
		out[i] = string(status)
	}
	return out
}
