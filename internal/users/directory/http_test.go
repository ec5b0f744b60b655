// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package directory_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonhq/maison/internal/platform/middleware"
	"github.com/maisonhq/maison/internal/platform/sec"
	"github.com/maisonhq/maison/internal/users/directory"
	"github.com/maisonhq/maison/internal/users/identity"
	"github.com/maisonhq/maison/pkg/rbac"
)

// # HTTP Fixture

// tokenVerifier resolves fixed bearer tokens to claims, standing in for the
// RS256 token service.
type tokenVerifier struct {
	tokens map[string]*sec.AuthClaims
}

func (v *tokenVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	claims, ok := v.tokens[tokenStr]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

type httpFixture struct {
	*fixture
	server *httptest.Server
}

// newHTTPFixture stands up the real router with the real middleware chain,
// backed by the in-memory fakes. Tokens are "token-<userID>".
func newHTTPFixture(t *testing.T) *httpFixture {
	t.Helper()
	f := newFixture()

	verifier := &tokenVerifier{tokens: map[string]*sec.AuthClaims{}}
	for _, id := range []string{"adm-1", "m-1", "s-1", "u-1", "ghost"} {
		verifier.tokens["token-"+id] = &sec.AuthClaims{UserID: id, Email: id + "@maison.shop"}
	}

	authenticator := identity.NewAuthenticator(verifier, f.claims, f.store)
	handler := directory.NewHandler(f.service, authenticator)

	router := chi.NewRouter()
	router.Use(middleware.Environment("test"))
	router.Use(middleware.Authenticate(verifier))
	router.Mount("/api/v1/users", handler.Routes())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &httpFixture{fixture: f, server: server}
}

type envelope struct {
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data"`
	Error       string          `json:"error"`
	Code        string          `json:"code"`
	Environment string          `json:"environment"`
}

func (f *httpFixture) do(t *testing.T, method, path, token, body string) (*http.Response, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	request, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	t.Cleanup(func() { _ = response.Body.Close() })

	var parsed envelope
	if response.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(response.Body).Decode(&parsed))
	}
	return response, parsed
}

// # Authentication

/*
TestHTTP_MissingCredential verifies the 401 envelope for anonymous requests.
*/
func TestHTTP_MissingCredential(t *testing.T) {
	f := newHTTPFixture(t)

	response, body := f.do(t, http.MethodGet, "/api/v1/users?action=fetchUsers", "", "")

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
	assert.Equal(t, "test", body.Environment)
}

/*
TestHTTP_DeletedAccountToken verifies a valid token for a vanished directory
record yields 404, not a working actor.
*/
func TestHTTP_DeletedAccountToken(t *testing.T) {
	f := newHTTPFixture(t)

	response, body := f.do(t, http.MethodGet, "/api/v1/users?action=fetchUsers", "token-ghost", "")

	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

// # Elevated Gate

/*
TestHTTP_FetchUsersDeniedForUserRole is the end-to-end elevated-only check:
a plain user listing the directory gets 403.
*/
func TestHTTP_FetchUsersDeniedForUserRole(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("u-1", rbac.RoleUser)

	response, body := f.do(t, http.MethodGet, "/api/v1/users?action=fetchUsers", "token-u-1", "")

	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	assert.False(t, body.Success)
	assert.Equal(t, "PERMISSION_DENIED", body.Code)
	assert.Contains(t, body.Error, "user")
}

/*
TestHTTP_FetchUsersAllowedForManager verifies the happy path envelope.
*/
func TestHTTP_FetchUsersAllowedForManager(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("m-1", rbac.RoleManager)
	f.seed("u-1", rbac.RoleUser)

	response, body := f.do(t, http.MethodGet, "/api/v1/users", "token-m-1", "")

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.True(t, body.Success)

	var users []directory.User
	require.NoError(t, json.Unmarshal(body.Data, &users))
	assert.Len(t, users, 2)
}

// # Create

/*
TestHTTP_ManagerCreatingAdminDenied is the end-to-end property: the 403
message names both roles.
*/
func TestHTTP_ManagerCreatingAdminDenied(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("m-1", rbac.RoleManager)

	payload := `{"action":"createUser","userData":{"email":"boss@maison.shop","password":"long-enough-secret","displayName":"Boss","role":"admin"}}`
	response, body := f.do(t, http.MethodPost, "/api/v1/users", "token-m-1", payload)

	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", body.Code)
	assert.Contains(t, body.Error, "manager")
	assert.Contains(t, body.Error, "admin")
}

/*
TestHTTP_AdminCreatesStaff verifies 201 and the created record in the
envelope.
*/
func TestHTTP_AdminCreatesStaff(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("adm-1", rbac.RoleAdmin)

	payload := `{"action":"createUser","userData":{"email":"ops@maison.shop","password":"long-enough-secret","displayName":"Ops Person","jobTitle":"Ops","role":"staff"}}`
	response, body := f.do(t, http.MethodPost, "/api/v1/users", "token-adm-1", payload)

	assert.Equal(t, http.StatusCreated, response.StatusCode)
	require.True(t, body.Success)

	var user directory.User
	require.NoError(t, json.Unmarshal(body.Data, &user))
	assert.Equal(t, rbac.RoleStaff, user.Role)
	assert.Equal(t, "ops@maison.shop", user.Email)
}

/*
TestHTTP_WrongPostAction verifies the action discriminator is enforced.
*/
func TestHTTP_WrongPostAction(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("adm-1", rbac.RoleAdmin)

	response, body := f.do(t, http.MethodPost, "/api/v1/users", "token-adm-1", `{"action":"nukeUsers"}`)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

// # Update

/*
TestHTTP_SelfUpdateStripsRole is the end-to-end stripping round trip: the
request succeeds, displayName changes, role does not.
*/
func TestHTTP_SelfUpdateStripsRole(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("u-1", rbac.RoleUser)

	payload := `{"action":"updateUser","id":"u-1","displayName":"X","role":"admin"}`
	response, body := f.do(t, http.MethodPut, "/api/v1/users", "token-u-1", payload)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	require.True(t, body.Success)

	var user directory.User
	require.NoError(t, json.Unmarshal(body.Data, &user))
	assert.Equal(t, "X", user.DisplayName)
	assert.Equal(t, rbac.RoleUser, user.Role)
}

/*
TestHTTP_UpdateMissingID verifies the 400 when the body omits the target id.
*/
func TestHTTP_UpdateMissingID(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("adm-1", rbac.RoleAdmin)

	response, body := f.do(t, http.MethodPut, "/api/v1/users", "token-adm-1", `{"action":"updateUser","displayName":"X"}`)

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
}

// # Get / Delete

/*
TestHTTP_GetUserByIdSelf verifies self-read works for a plain user while a
foreign read is denied.
*/
func TestHTTP_GetUserByIdSelf(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("u-1", rbac.RoleUser)
	f.seed("s-1", rbac.RoleStaff)

	response, body := f.do(t, http.MethodGet, "/api/v1/users?action=getUserById&userId=u-1", "token-u-1", "")
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.True(t, body.Success)

	response, body = f.do(t, http.MethodGet, "/api/v1/users?action=getUserById&userId=s-1", "token-u-1", "")
	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", body.Code)
}

/*
TestHTTP_DeleteSelfDenied verifies the self-delete invariant end to end.
*/
func TestHTTP_DeleteSelfDenied(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("adm-1", rbac.RoleAdmin)

	response, body := f.do(t, http.MethodDelete, "/api/v1/users?action=deleteUser&userId=adm-1", "token-adm-1", "")

	assert.Equal(t, http.StatusForbidden, response.StatusCode)
	assert.Contains(t, body.Error, "your own account")
}

/*
TestHTTP_DeleteByAdmin verifies the happy-path removal.
*/
func TestHTTP_DeleteByAdmin(t *testing.T) {
	f := newHTTPFixture(t)
	f.seed("adm-1", rbac.RoleAdmin)
	f.seed("u-1", rbac.RoleUser)

	response, body := f.do(t, http.MethodDelete, "/api/v1/users?action=deleteUser&userId=u-1", "token-adm-1", "")

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.True(t, body.Success)
	assert.NotContains(t, f.store.users, "u-1")
}
