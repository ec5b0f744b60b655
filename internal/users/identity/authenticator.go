// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package identity

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/maisonhq/maison/internal/platform/apperr"
	"github.com/maisonhq/maison/internal/platform/constants"
	"github.com/maisonhq/maison/internal/platform/ctxutil"
	requestutil "github.com/maisonhq/maison/internal/platform/request"
	"github.com/maisonhq/maison/internal/platform/sec"
	"github.com/maisonhq/maison/pkg/rbac"
)

// TokenVerifier defines the contract for verifying bearer credentials.
type TokenVerifier interface {
	// VerifyToken checks the signature and validity of a JWT string.
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticator turns an incoming HTTP request into a verified [rbac.Actor].
//
// # Flow
//  1. Extract the bearer credential from the Authorization header.
//  2. Verify the credential signature and expiry via [TokenVerifier].
//  3. Resolve the actor's role: role-claim cache first, directory on miss.
//  4. Return the actor; any failure along the way is a denial.
//
// # Fail-Closed
//
// The role is resolved fresh on every request, bounded by
// [constants.DirectoryLookupTimeout]. A timeout, an unreachable store, or a
// missing record all surface as errors, never as a degraded actor that might
// slip past a policy check.
type Authenticator struct {
	verifier TokenVerifier
	cache    RoleClaimCache
	roles    RoleSource
}

// NewAuthenticator constructs an Authenticator with its dependencies.
func NewAuthenticator(verifier TokenVerifier, cache RoleClaimCache, roles RoleSource) *Authenticator {
	return &Authenticator{
		verifier: verifier,
		cache:    cache,
		roles:    roles,
	}
}

/*
VerifyActor authenticates the request and resolves the acting identity.

Description: The single entry point every protected operation passes through.
Verifies WHO is calling (token) and WHAT they are (directory role) as two
separate steps against two separate sources.

Parameters:
  - request: *http.Request

Returns:
  - rbac.Actor: Verified actor with directory-resolved role
  - error: apperr.Unauthenticated, apperr.NotFound, or resolution failures
*/
func (authenticator *Authenticator) VerifyActor(request *http.Request) (rbac.Actor, error) {

	// ── 1. Credential Extraction ──────────────────────────────────────────
	token := requestutil.BearerToken(request)
	if token == "" {
		return rbac.Actor{}, apperr.Unauthenticated("Authentication required")
	}

	// ── 2. Credential Verification ────────────────────────────────────────
	claims, err := authenticator.verifier.VerifyToken(token)
	if err != nil {
		return rbac.Actor{}, apperr.Unauthenticated("Invalid or expired token")
	}

	// ── 3. Role Resolution ────────────────────────────────────────────────
	role, err := authenticator.resolveRole(request.Context(), claims.UserID)
	if err != nil {
		return rbac.Actor{}, err
	}

	return rbac.Actor{ID: claims.UserID, Role: role}, nil
}

/*
ResolveActor resolves the acting identity from already-verified claims.

Description: Variant of [Authenticator.VerifyActor] for callers running after
the authentication middleware, where the token has been verified and the
claims injected into the context.

Parameters:
  - request: *http.Request

Returns:
  - rbac.Actor: Verified actor with directory-resolved role
  - error: apperr.Unauthenticated if the request carries no claims
*/
func (authenticator *Authenticator) ResolveActor(request *http.Request) (rbac.Actor, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return rbac.Actor{}, apperr.Unauthenticated("Authentication required")
	}

	role, err := authenticator.resolveRole(request.Context(), claims.UserID)
	if err != nil {
		return rbac.Actor{}, err
	}

	return rbac.Actor{ID: claims.UserID, Role: role}, nil
}

// resolveRole loads the actor's role, cache first, directory on miss.
//
// The lookup is bounded so a slow directory degrades to a denial instead of
// holding the request open until the global timeout.
func (authenticator *Authenticator) resolveRole(parent context.Context, userID string) (rbac.Role, error) {
	lookupCtx, cancel := context.WithTimeout(parent, constants.DirectoryLookupTimeout)
	defer cancel()

	// ── 1. Cache Hit ──────────────────────────────────────────────────────
	cached, err := authenticator.cache.GetRoleClaim(lookupCtx, userID)
	if err == nil {
		return cached, nil
	}

	// Connectivity errors are logged but do not block the directory path.
	if !apperr.IsNotFound(err) {
		ctxutil.GetLogger(parent).WarnContext(parent, "role_claim_cache_unavailable",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	// ── 2. Directory Fallback ─────────────────────────────────────────────
	role, err := authenticator.roles.RoleOf(lookupCtx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			// A verified token with no directory record: the account was
			// deleted after the token was issued.
			return rbac.RoleUnknown, apperr.NotFound("User")
		}
		return rbac.RoleUnknown, apperr.Internal(err)
	}

	// ── 3. Cache Write-Back ───────────────────────────────────────────────
	// Best effort. The next request re-reads the directory if this is lost.
	writeCtx, writeCancel := context.WithTimeout(context.WithoutCancel(parent), 2*time.Second)
	defer writeCancel()
	_ = authenticator.cache.SetRoleClaim(writeCtx, userID, role, constants.RoleClaimTTL)

	return role, nil
}
