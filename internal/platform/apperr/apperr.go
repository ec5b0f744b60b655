// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

/*
Package apperr defines the centralized error taxonomy for the Maison API.

It bridges low-level storage and identity-provider failures to the small set
of transport-level outcomes the admin SPA understands.

Taxonomy:

  - UNAUTHENTICATED (401): missing, malformed, or unverifiable credential.
  - PERMISSION_DENIED (403): a policy decision evaluated to deny.
  - NOT_FOUND (404): actor or target record absent.
  - VALIDATION_ERROR (400): malformed or missing required fields.
  - CONFLICT (409): unique-constraint violations (duplicate email).
  - PARTIAL_FAILURE (500): identity/metadata write divergence needing
    reconciliation.
  - INTERNAL_ERROR (500): any other downstream failure.

Every error that leaves the service layer is wrapped as an [AppError] so API
responses stay consistent and never leak storage detail.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the Maison API.
//
// # Security
//
// The Cause field is for server-side logging only and is never serialized to
// clients. Messages are written to be client-safe: they may name the actor's
// role and the attempted operation, never passwords, tokens, or SQL.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "PERMISSION_DENIED").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// Unauthenticated creates a 401 [AppError] for credential failures.
func Unauthenticated(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHENTICATED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// PermissionDenied creates a 403 [AppError] carrying the audit reason of a
// denied policy decision.
func PermissionDenied(reason string) *AppError {
	return &AppError{
		Code:       "PERMISSION_DENIED",
		Message:    reason,
		HTTPStatus: http.StatusForbidden,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("User") // Returns "User not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint
// violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(msg string) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    msg,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// PartialFailure creates a 500 [AppError] for a write that diverged between
// the identity provider and the metadata store.
//
// The message carries the target id/email so operators can reconcile the
// orphaned identity; the cause keeps the original failure for logging.
func PartialFailure(msg string, cause error) *AppError {
	return &AppError{
		Code:       "PARTIAL_FAILURE",
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsNotFound reports whether err resolves to a NOT_FOUND [AppError].
func IsNotFound(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}

// IsPermissionDenied reports whether err resolves to a PERMISSION_DENIED
// [AppError].
func IsPermissionDenied(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == "PERMISSION_DENIED"
}
