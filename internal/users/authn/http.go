// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package authn

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/maisonhq/maison/internal/platform/request"
	"github.com/maisonhq/maison/internal/platform/respond"
	"github.com/maisonhq/maison/internal/platform/validate"
	"github.com/maisonhq/maison/internal/users/identity"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login : Authenticates and returns a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/login", handler.login)
	return router
}

// # Request Payloads

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
login handles an authentication attempt.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Email, Password)

Responses:
  - 200: LoginResult in the standard envelope
  - 400: Missing fields
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(identity.FieldEmail, payload.Email).
		Required(identity.FieldPassword, payload.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
