// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package api

import (
	"net/http"

	"github.com/maisonhq/maison/internal/platform/respond"
	"github.com/maisonhq/maison/pkg/rbac"
)

// NewPolicyHandler serves the declarative policy table.
//
// GET /api/v1/policy
//
// The admin SPA derives its advisory UI gating (which buttons to render,
// which roles to offer in dropdowns) from this table instead of maintaining
// a second copy of the rules. The response carries no authority: the server
// re-evaluates every decision on every request regardless of what the
// client shows.
func NewPolicyHandler() http.HandlerFunc {
	// The table is immutable; compute it once.
	table := rbac.PolicyTable()

	return func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, table)
	}
}
