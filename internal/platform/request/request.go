// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts body decoding and identity extraction behind a consistent error
surface so handlers stay thin.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/maisonhq/maison/internal/platform/apperr"
	"github.com/maisonhq/maison/internal/platform/ctxutil"
	"github.com/maisonhq/maison/internal/platform/sec"
	"github.com/maisonhq/maison/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
// It returns [validate.ErrInvalidJSON] when decoding fails.
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Query retrieves a named query-string parameter from the request.
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

// Claims extracts the verified token claims from the request context.
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims ensures the request carries verified claims and returns them.
// It returns an UNAUTHENTICATED error otherwise.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	return claims, nil
}

// BearerToken extracts the raw credential from the Authorization header.
// Returns an empty string when the header is absent or not a Bearer scheme.
// The scheme comparison is case-insensitive per RFC 7235.
func BearerToken(request *http.Request) string {
	header := request.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
