// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package directory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maisonhq/maison/internal/platform/apperr"
	requestutil "github.com/maisonhq/maison/internal/platform/request"
	"github.com/maisonhq/maison/internal/platform/respond"
	"github.com/maisonhq/maison/internal/platform/validate"
	"github.com/maisonhq/maison/internal/users/identity"
	"github.com/maisonhq/maison/pkg/pointer"
	"github.com/maisonhq/maison/pkg/rbac"
)

// # Definitions & Constructors

// Handler implements the action-routed user-management HTTP surface.
//
// # Scope
//
// The admin SPA talks to a single endpoint and selects the operation with an
// `action` discriminator (query parameter on GET/DELETE, body field on
// POST/PUT). The handler resolves the actor per request through the
// authenticator, then delegates every decision to the [Service].
type Handler struct {
	service       *Service
	authenticator *identity.Authenticator
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, authenticator *identity.Authenticator) *Handler {
	return &Handler{service: service, authenticator: authenticator}
}

// Routes returns a [chi.Router] for the action-routed surface.
//
// # Endpoints
//   - GET    /?action=fetchUsers|searchUsers|getUsersByRole|getUserById
//   - POST   / {action:"createUser", userData:{...}}
//   - PUT    / {action:"updateUser", id, ...fields}
//   - DELETE /?action=deleteUser&userId=<id>
//
// OPTIONS preflights are answered by the CORS middleware before reaching
// this router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.handleGet)
	router.Post("/", handler.handlePost)
	router.Put("/", handler.handlePut)
	router.Delete("/", handler.handleDelete)

	return router
}

// # Request Payloads

type createUserRequest struct {
	Action   string `json:"action"`
	UserData struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
		JobTitle    string `json:"jobTitle"`
		Phone       string `json:"phone"`
		Role        string `json:"role"`
		Status      string `json:"status"`
	} `json:"userData"`
}

type updateUserRequest struct {
	Action      string  `json:"action"`
	ID          string  `json:"id"`
	DisplayName *string `json:"displayName"`
	JobTitle    *string `json:"jobTitle"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role"`
	Status      *string `json:"status"`
}

type deleteUserRequest struct {
	Action string `json:"action"`
	UserID string `json:"userId"`
}

// # Read Surface

/*
handleGet dispatches the read actions.

GET /api/v1/users?action=...

Actions:
  - fetchUsers (default): full directory, elevated only.
  - getUserById: single record, self or elevated.
  - searchUsers: substring match over email/display name, elevated only.
  - getUsersByRole: filter by exact role, elevated only.
*/
func (handler *Handler) handleGet(writer http.ResponseWriter, request *http.Request) {
	actor, err := handler.authenticator.ResolveActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	switch requestutil.Query(request, "action") {

	case "getUserById":
		targetID := requestutil.Query(request, "userId")
		if targetID == "" {
			respond.Error(writer, request, validate.RequiredError(FieldUserID, "User ID is required"))
			return
		}

		user, err := handler.service.Get(request.Context(), actor, targetID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, user)

	case "searchUsers":
		users, err := handler.service.Search(request.Context(), actor, requestutil.Query(request, "searchTerm"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, users)

	case "getUsersByRole":
		users, err := handler.service.ListByRole(request.Context(), actor, rbac.Role(requestutil.Query(request, "role")))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, users)

	// The SPA's list view omits the action parameter.
	case "fetchUsers", "":
		users, err := handler.service.List(request.Context(), actor)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, users)

	default:
		respond.Error(writer, request, apperr.ValidationError("Invalid action for GET request"))
	}
}

// # Write Surface

/*
handlePost creates a new account.

POST /api/v1/users {action:"createUser", userData:{...}}
*/
func (handler *Handler) handlePost(writer http.ResponseWriter, request *http.Request) {
	actor, err := handler.authenticator.ResolveActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createUserRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if payload.Action != "createUser" {
		respond.Error(writer, request, apperr.ValidationError("Invalid action for POST request"))
		return
	}

	user, err := handler.service.Create(request.Context(), actor, CreateInput{
		Email:       payload.UserData.Email,
		Password:    payload.UserData.Password,
		DisplayName: payload.UserData.DisplayName,
		JobTitle:    payload.UserData.JobTitle,
		Phone:       payload.UserData.Phone,
		Role:        rbac.Role(payload.UserData.Role),
		Status:      Status(payload.UserData.Status),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
handlePut applies a partial update.

PUT /api/v1/users {action:"updateUser", id, ...fields}
*/
func (handler *Handler) handlePut(writer http.ResponseWriter, request *http.Request) {
	actor, err := handler.authenticator.ResolveActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateUserRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if payload.Action != "updateUser" {
		respond.Error(writer, request, apperr.ValidationError("Invalid action for PUT request"))
		return
	}

	if payload.ID == "" {
		respond.Error(writer, request, validate.RequiredError(FieldUserID, "User ID is required"))
		return
	}

	patch := UpdatePatch{
		DisplayName: payload.DisplayName,
		JobTitle:    payload.JobTitle,
		Phone:       payload.Phone,
	}
	if payload.Role != nil {
		patch.Role = pointer.To(rbac.Role(*payload.Role))
	}
	if payload.Status != nil {
		patch.Status = pointer.To(Status(*payload.Status))
	}

	user, err := handler.service.Update(request.Context(), actor, payload.ID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
handleDelete removes an account.

DELETE /api/v1/users?action=deleteUser&userId=<id>

The id may come from the query string or the body; the query wins.
*/
func (handler *Handler) handleDelete(writer http.ResponseWriter, request *http.Request) {
	actor, err := handler.authenticator.ResolveActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	action := requestutil.Query(request, "action")
	targetID := requestutil.Query(request, "userId")

	if action == "" || targetID == "" {
		var payload deleteUserRequest
		if err := requestutil.DecodeJSON(request, &payload); err == nil {
			if action == "" {
				action = payload.Action
			}
			if targetID == "" {
				targetID = payload.UserID
			}
		}
	}

	if action != "deleteUser" {
		respond.Error(writer, request, apperr.ValidationError("Invalid action for DELETE request"))
		return
	}

	if targetID == "" {
		respond.Error(writer, request, validate.RequiredError(FieldUserID, "User ID is required"))
		return
	}

	if err := handler.service.Delete(request.Context(), actor, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]bool{"deleted": true})
}
