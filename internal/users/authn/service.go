// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

/*
Package authn implements the login flow for the admin SPA.

It verifies an email/password pair against the identity store and issues a
short-lived RS256 access token. The token carries only the subject identity;
roles are resolved from the directory on every request, so a token issued
before a demotion confers nothing after it.

Refresh tokens, password reset, and email verification are the identity
provider's concern and are not implemented here.
*/
package authn

import (
	"context"
	"log/slog"
	"time"

	"github.com/maisonhq/maison/internal/platform/apperr"
	"github.com/maisonhq/maison/internal/platform/constants"
	"github.com/maisonhq/maison/internal/platform/ctxutil"
	"github.com/maisonhq/maison/internal/platform/sec"
	"github.com/maisonhq/maison/internal/users/identity"
)

// # Contracts & Types

// TokenIssuer defines the contract for minting access tokens.
type TokenIssuer interface {
	// GenerateAccessToken creates a signed JWT string for the given identity.
	GenerateAccessToken(userID, email string, timeToLive time.Duration) (string, error)
}

// LastLoginRecorder stamps a successful login on the directory record.
type LastLoginRecorder interface {
	TouchLastLogin(context context.Context, userID string) error
}

// Service implements the authentication use case.
type Service struct {
	provider  identity.Provider
	issuer    TokenIssuer
	lastLogin LastLoginRecorder
}

// NewService constructs an authn [Service] with its dependencies.
func NewService(provider identity.Provider, issuer TokenIssuer, lastLogin LastLoginRecorder) *Service {
	return &Service{
		provider:  provider,
		issuer:    issuer,
		lastLogin: lastLogin,
	}
}

// # Login Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult represents a successfully established session.
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

/*
Login validates credentials and issues an access token.

Description: Constant-time password comparison via bcrypt. Unknown email and
wrong password produce the identical error so the endpoint cannot be used to
probe for registered addresses. Disabled identities are rejected after the
password check for the same reason.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Transport-ready session material
  - error: apperr.Unauthenticated or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// ── 1. Identity Resolution ────────────────────────────────────────────
	record, err := service.provider.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthenticated("Invalid email or password")
		}
		return nil, err
	}

	// ── 2. Credential Check ───────────────────────────────────────────────
	if !sec.CheckPasswordHash(input.Password, record.PasswordHash) {
		return nil, apperr.Unauthenticated("Invalid email or password")
	}

	if record.Disabled {
		return nil, apperr.Unauthenticated("Invalid email or password")
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────
	expiresAt := time.Now().Add(constants.AccessTokenTTL)
	token, err := service.issuer.GenerateAccessToken(record.ID, record.Email, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// ── 4. Last-Login Stamp (best effort) ─────────────────────────────────
	if err := service.lastLogin.TouchLastLogin(context, record.ID); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "last_login_stamp_failed",
			slog.String("user_id", record.ID),
			slog.String("error", err.Error()),
		)
	}

	ctxutil.GetLogger(context).InfoContext(context, "login_succeeded",
		slog.String("user_id", record.ID),
	)

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		UserID:      record.ID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}, nil
}
