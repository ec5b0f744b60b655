// Copyright (c) 2026 Maison. All rights reserved.
// Author: platform@maison.shop

package directory_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonhq/maison/internal/platform/apperr"
	"github.com/maisonhq/maison/internal/users/directory"
	"github.com/maisonhq/maison/internal/users/identity"
	"github.com/maisonhq/maison/pkg/pointer"
	"github.com/maisonhq/maison/pkg/rbac"
)

// # In-Memory Fakes

type fakeStore struct {
	users     map[string]directory.User
	insertErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]directory.User)}
}

func (f *fakeStore) Insert(ctx context.Context, user *directory.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*directory.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := user
	return &copied, nil
}

func (f *fakeStore) List(ctx context.Context) ([]directory.User, error) {
	out := make([]directory.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) ListByRole(ctx context.Context, role rbac.Role) ([]directory.User, error) {
	out := make([]directory.User, 0)
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, user *directory.User) error {
	user.UpdatedAt = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) RoleOf(ctx context.Context, userID string) (rbac.Role, error) {
	user, ok := f.users[userID]
	if !ok {
		return rbac.RoleUnknown, apperr.NotFound("User")
	}
	return user.Role, nil
}

func (f *fakeStore) TouchLastLogin(ctx context.Context, userID string) error {
	return nil
}

type fakeProvider struct {
	identities map[string]identity.Identity
	createErr  error
	deleteErr  error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{identities: make(map[string]identity.Identity)}
}

func (f *fakeProvider) CreateIdentity(ctx context.Context, record *identity.Identity) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.identities[record.ID] = *record
	return nil
}

func (f *fakeProvider) FindByID(ctx context.Context, id string) (*identity.Identity, error) {
	record, ok := f.identities[id]
	if !ok {
		return nil, apperr.NotFound("Identity")
	}
	return &record, nil
}

func (f *fakeProvider) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	for _, record := range f.identities {
		if record.Email == email {
			copied := record
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Identity")
}

func (f *fakeProvider) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	record, ok := f.identities[id]
	if ok {
		record.DisplayName = displayName
		f.identities[id] = record
	}
	return nil
}

func (f *fakeProvider) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return nil
}

func (f *fakeProvider) DeleteIdentity(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.identities, id)
	return nil
}

type fakeClaims struct {
	roles map[string]rbac.Role
}

func newFakeClaims() *fakeClaims {
	return &fakeClaims{roles: make(map[string]rbac.Role)}
}

func (f *fakeClaims) GetRoleClaim(ctx context.Context, userID string) (rbac.Role, error) {
	role, ok := f.roles[userID]
	if !ok {
		return rbac.RoleUnknown, apperr.NotFound("Role claim")
	}
	return role, nil
}

func (f *fakeClaims) SetRoleClaim(ctx context.Context, userID string, role rbac.Role, ttl time.Duration) error {
	f.roles[userID] = role
	return nil
}

func (f *fakeClaims) InvalidateRoleClaim(ctx context.Context, userID string) error {
	delete(f.roles, userID)
	return nil
}

// # Fixture

type fixture struct {
	service  *directory.Service
	store    *fakeStore
	provider *fakeProvider
	claims   *fakeClaims
}

func newFixture() *fixture {
	store := newFakeStore()
	provider := newFakeProvider()
	claims := newFakeClaims()
	return &fixture{
		service:  directory.NewService(store, provider, claims),
		store:    store,
		provider: provider,
		claims:   claims,
	}
}

func (f *fixture) seed(id string, role rbac.Role) directory.User {
	user := directory.User{
		ID:          id,
		Email:       id + "@maison.shop",
		DisplayName: "Seed " + id,
		Role:        role,
		Status:      directory.StatusActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.store.users[id] = user
	f.provider.identities[id] = identity.Identity{ID: id, Email: user.Email, DisplayName: user.DisplayName}
	return user
}

func validCreateInput(role rbac.Role) directory.CreateInput {
	return directory.CreateInput{
		Email:       "new@maison.shop",
		Password:    "long-enough-secret",
		DisplayName: "New Person",
		JobTitle:    "Buyer",
		Role:        role,
	}
}

// # Create

/*
TestCreate_ManagerCannotCreateAdmin checks the end-to-end denial: a manager
provisioning an admin gets a 403 whose message names both roles.
*/
func TestCreate_ManagerCannotCreateAdmin(t *testing.T) {
	f := newFixture()
	actor := rbac.Actor{ID: "mgr-1", Role: rbac.RoleManager}

	_, err := f.service.Create(context.Background(), actor, validCreateInput(rbac.RoleAdmin))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "PERMISSION_DENIED", ae.Code)
	assert.Contains(t, ae.Message, "manager")
	assert.Contains(t, ae.Message, "admin")

	// No partial state: neither store was touched.
	assert.Empty(t, f.provider.identities)
	assert.Empty(t, f.store.users)
}

/*
TestCreate_NonElevatedDenied checks that staff and user actors cannot create
accounts at all, regardless of the requested role.
*/
func TestCreate_NonElevatedDenied(t *testing.T) {
	for _, role := range []rbac.Role{rbac.RoleStaff, rbac.RoleUser, rbac.RoleUnknown} {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture()
			actor := rbac.Actor{ID: "a-1", Role: role}

			_, err := f.service.Create(context.Background(), actor, validCreateInput(rbac.RoleUser))
			require.Error(t, err)
			assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
		})
	}
}

/*
TestCreate_Success verifies the full saga: identity row, role claim, and
directory record all exist afterwards with matching data.
*/
func TestCreate_Success(t *testing.T) {
	f := newFixture()
	actor := rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}

	user, err := f.service.Create(context.Background(), actor, validCreateInput(rbac.RoleStaff))
	require.NoError(t, err)

	assert.Equal(t, rbac.RoleStaff, user.Role)
	assert.Equal(t, directory.StatusActive, user.Status)
	assert.NotEmpty(t, user.ID)

	// Identity created with a hash, never the raw password.
	record, ok := f.provider.identities[user.ID]
	require.True(t, ok)
	assert.NotEqual(t, "long-enough-secret", record.PasswordHash)
	assert.NotEmpty(t, record.PasswordHash)

	// Role claim warmed.
	assert.Equal(t, rbac.RoleStaff, f.claims.roles[user.ID])
}

/*
TestCreate_DefaultsRoleAndStatus verifies omitted role/status default to
user/active.
*/
func TestCreate_DefaultsRoleAndStatus(t *testing.T) {
	f := newFixture()
	input := validCreateInput("")
	input.Status = ""

	user, err := f.service.Create(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, input)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleUser, user.Role)
	assert.Equal(t, directory.StatusActive, user.Status)
}

/*
TestCreate_CompensationDeletesIdentity verifies that a directory insert
failure rolls back the identity write, with no PARTIAL_FAILURE surfaced.
*/
func TestCreate_CompensationDeletesIdentity(t *testing.T) {
	f := newFixture()
	f.store.insertErr = errors.New("connection reset")

	_, err := f.service.Create(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, validCreateInput(rbac.RoleUser))
	require.Error(t, err)

	// Compensation removed the identity; the error is the insert failure.
	assert.Empty(t, f.provider.identities)
	if ae := apperr.As(err); ae != nil {
		assert.NotEqual(t, "PARTIAL_FAILURE", ae.Code)
	}
}

/*
TestCreate_PartialFailureCarriesIdentity verifies that when both the insert
and the compensation fail, the error is PARTIAL_FAILURE and names the
orphaned identity.
*/
func TestCreate_PartialFailureCarriesIdentity(t *testing.T) {
	f := newFixture()
	f.store.insertErr = errors.New("connection reset")
	f.provider.deleteErr = errors.New("identity backend down")

	_, err := f.service.Create(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, validCreateInput(rbac.RoleUser))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "PARTIAL_FAILURE", ae.Code)
	assert.Contains(t, ae.Message, "new@maison.shop")
}

/*
TestCreate_ValidationFailures spot-checks the input gate.
*/
func TestCreate_ValidationFailures(t *testing.T) {
	f := newFixture()
	actor := rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}

	tests := []struct {
		name   string
		mutate func(*directory.CreateInput)
	}{
		{"missing_email", func(in *directory.CreateInput) { in.Email = "" }},
		{"bad_email", func(in *directory.CreateInput) { in.Email = "not-an-email" }},
		{"short_password", func(in *directory.CreateInput) { in.Password = "short" }},
		{"missing_display_name", func(in *directory.CreateInput) { in.DisplayName = "" }},
		{"corrupted_role", func(in *directory.CreateInput) { in.Role = "superadmin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput(rbac.RoleUser)
			tt.mutate(&input)

			_, err := f.service.Create(context.Background(), actor, input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

// # Read Operations

/*
TestGet_SelfAlwaysAllowed verifies every role can read its own record.
*/
func TestGet_SelfAlwaysAllowed(t *testing.T) {
	for _, role := range rbac.Roles() {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture()
			f.seed("self-1", role)

			user, err := f.service.Get(context.Background(), rbac.Actor{ID: "self-1", Role: role}, "self-1")
			require.NoError(t, err)
			assert.Equal(t, "self-1", user.ID)
		})
	}
}

/*
TestGet_OtherRequiresElevated verifies a plain user cannot read someone
else's record while a manager can.
*/
func TestGet_OtherRequiresElevated(t *testing.T) {
	f := newFixture()
	f.seed("target-1", rbac.RoleUser)

	_, err := f.service.Get(context.Background(), rbac.Actor{ID: "u-1", Role: rbac.RoleUser}, "target-1")
	require.Error(t, err)
	assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)

	_, err = f.service.Get(context.Background(), rbac.Actor{ID: "m-1", Role: rbac.RoleManager}, "target-1")
	require.NoError(t, err)
}

/*
TestGet_NotFound verifies an absent target yields NOT_FOUND after the access
gate passes.
*/
func TestGet_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.Get(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestList_ElevatedOnly verifies the directory listing is closed to staff,
user, and unknown actors.
*/
func TestList_ElevatedOnly(t *testing.T) {
	f := newFixture()
	f.seed("a", rbac.RoleAdmin)
	f.seed("b", rbac.RoleUser)

	for _, role := range []rbac.Role{rbac.RoleStaff, rbac.RoleUser, rbac.RoleUnknown} {
		_, err := f.service.List(context.Background(), rbac.Actor{ID: "x", Role: role})
		require.Error(t, err, "role %q must be denied", role)
		assert.Equal(t, "PERMISSION_DENIED", apperr.As(err).Code)
	}

	users, err := f.service.List(context.Background(), rbac.Actor{ID: "a", Role: rbac.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

/*
TestSearch_SubstringCaseInsensitive verifies matching over email and display
name, and that an empty term returns everything.
*/
func TestSearch_SubstringCaseInsensitive(t *testing.T) {
	f := newFixture()
	f.seed("a", rbac.RoleUser)
	f.seed("b", rbac.RoleUser)
	actor := rbac.Actor{ID: "m", Role: rbac.RoleManager}

	// Matches email substring regardless of case.
	users, err := f.service.Search(context.Background(), actor, "A@MAISON")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a", users[0].ID)

	// Matches display name.
	users, err = f.service.Search(context.Background(), actor, "seed b")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b", users[0].ID)

	// Empty term returns the full set.
	users, err = f.service.Search(context.Background(), actor, "")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// No match returns an empty, non-nil slice.
	users, err = f.service.Search(context.Background(), actor, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

/*
TestListByRole verifies the exact-role filter and its validation.
*/
func TestListByRole(t *testing.T) {
	f := newFixture()
	f.seed("a", rbac.RoleStaff)
	f.seed("b", rbac.RoleStaff)
	f.seed("c", rbac.RoleUser)
	actor := rbac.Actor{ID: "m", Role: rbac.RoleManager}

	users, err := f.service.ListByRole(context.Background(), actor, rbac.RoleStaff)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = f.service.ListByRole(context.Background(), actor, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Update

/*
TestUpdate_SelfServiceStripsPrivilegedFields is the end-to-end stripping
property: a plain user updating themselves with a role change gets the
display name applied, the role untouched, and no error.
*/
func TestUpdate_SelfServiceStripsPrivilegedFields(t *testing.T) {
	f := newFixture()
	f.seed("u-1", rbac.RoleUser)

	patch := directory.UpdatePatch{
		DisplayName: pointer.To("X"),
		Role:        pointer.To(rbac.RoleAdmin),
		Status:      pointer.To(directory.StatusSuspended),
	}

	user, err := f.service.Update(context.Background(), rbac.Actor{ID: "u-1", Role: rbac.RoleUser}, "u-1", patch)
	require.NoError(t, err)

	assert.Equal(t, "X", user.DisplayName)
	assert.Equal(t, rbac.RoleUser, user.Role)
	assert.Equal(t, directory.StatusActive, user.Status)
}

/*
TestUpdate_SelfElevationDenied verifies a manager cannot raise their own role
even though they pass the access and manage gates.
*/
func TestUpdate_SelfElevationDenied(t *testing.T) {
	f := newFixture()
	f.seed("m-1", rbac.RoleManager)

	patch := directory.UpdatePatch{Role: pointer.To(rbac.RoleAdmin)}
	_, err := f.service.Update(context.Background(), rbac.Actor{ID: "m-1", Role: rbac.RoleManager}, "m-1", patch)

	require.Error(t, err)
	ae := apperr.As(err)
	assert.Equal(t, "PERMISSION_DENIED", ae.Code)
	assert.Contains(t, ae.Message, "elevate")
}

/*
TestUpdate_AdminLateralSelfChange verifies an admin may move their own role
downward (not an elevation).
*/
func TestUpdate_AdminLateralSelfChange(t *testing.T) {
	f := newFixture()
	f.seed("adm-1", rbac.RoleAdmin)

	patch := directory.UpdatePatch{Role: pointer.To(rbac.RoleManager)}
	user, err := f.service.Update(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, "adm-1", patch)

	require.NoError(t, err)
	assert.Equal(t, rbac.RoleManager, user.Role)
}

/*
TestUpdate_ManagerCannotAssignAdmin verifies role-assignment limits when
editing another account.
*/
func TestUpdate_ManagerCannotAssignAdmin(t *testing.T) {
	f := newFixture()
	f.seed("s-1", rbac.RoleStaff)

	patch := directory.UpdatePatch{Role: pointer.To(rbac.RoleAdmin)}
	_, err := f.service.Update(context.Background(), rbac.Actor{ID: "m-1", Role: rbac.RoleManager}, "s-1", patch)

	require.Error(t, err)
	ae := apperr.As(err)
	assert.Equal(t, "PERMISSION_DENIED", ae.Code)
	assert.Contains(t, ae.Message, "manager")
	assert.Contains(t, ae.Message, "admin")
}

/*
TestUpdate_ManagerCannotManageAdmin verifies the level gate against the
target's current role.
*/
func TestUpdate_ManagerCannotManageAdmin(t *testing.T) {
	f := newFixture()
	f.seed("adm-1", rbac.RoleAdmin)

	patch := directory.UpdatePatch{DisplayName: pointer.To("Renamed")}
	_, err := f.service.Update(context.Background(), rbac.Actor{ID: "m-1", Role: rbac.RoleManager}, "adm-1", patch)

	require.Error(t, err)
	ae := apperr.As(err)
	assert.Equal(t, "PERMISSION_DENIED", ae.Code)
	assert.Contains(t, ae.Message, "cannot manage")
}

/*
TestUpdate_Idempotent verifies applying the same patch twice converges on
the same record with no error on the second call.
*/
func TestUpdate_Idempotent(t *testing.T) {
	f := newFixture()
	f.seed("s-1", rbac.RoleStaff)
	actor := rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}

	patch := directory.UpdatePatch{
		DisplayName: pointer.To("Stable Name"),
		JobTitle:    pointer.To("Ops"),
		Role:        pointer.To(rbac.RoleUser),
	}

	first, err := f.service.Update(context.Background(), actor, "s-1", patch)
	require.NoError(t, err)

	second, err := f.service.Update(context.Background(), actor, "s-1", patch)
	require.NoError(t, err)

	assert.Equal(t, first.DisplayName, second.DisplayName)
	assert.Equal(t, first.JobTitle, second.JobTitle)
	assert.Equal(t, first.Role, second.Role)
	assert.Equal(t, first.Status, second.Status)
}

/*
TestUpdate_RoleChangeRefreshesClaim verifies the role-claim mirror is
rewritten when an admin changes someone's role.
*/
func TestUpdate_RoleChangeRefreshesClaim(t *testing.T) {
	f := newFixture()
	f.seed("u-1", rbac.RoleUser)

	patch := directory.UpdatePatch{Role: pointer.To(rbac.RoleStaff)}
	_, err := f.service.Update(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, "u-1", patch)
	require.NoError(t, err)

	assert.Equal(t, rbac.RoleStaff, f.claims.roles["u-1"])
}

/*
TestUpdate_DisplayNamePropagatesToIdentity verifies the identity mirror is
kept in sync on renames.
*/
func TestUpdate_DisplayNamePropagatesToIdentity(t *testing.T) {
	f := newFixture()
	f.seed("u-1", rbac.RoleUser)

	patch := directory.UpdatePatch{DisplayName: pointer.To("Fresh Name")}
	_, err := f.service.Update(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, "u-1", patch)
	require.NoError(t, err)

	assert.Equal(t, "Fresh Name", f.provider.identities["u-1"].DisplayName)
}

// # Delete

/*
TestDelete_SelfAlwaysDenied verifies no role may delete its own account.
*/
func TestDelete_SelfAlwaysDenied(t *testing.T) {
	for _, role := range []rbac.Role{rbac.RoleAdmin, rbac.RoleManager} {
		t.Run(string(role), func(t *testing.T) {
			f := newFixture()
			f.seed("self-1", role)

			err := f.service.Delete(context.Background(), rbac.Actor{ID: "self-1", Role: role}, "self-1")
			require.Error(t, err)

			ae := apperr.As(err)
			assert.Equal(t, "PERMISSION_DENIED", ae.Code)
			assert.Contains(t, ae.Message, "your own account")
		})
	}
}

/*
TestDelete_Success verifies both stores converge and the role claim is
dropped.
*/
func TestDelete_Success(t *testing.T) {
	f := newFixture()
	f.seed("u-1", rbac.RoleUser)
	f.claims.roles["u-1"] = rbac.RoleUser

	err := f.service.Delete(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, "u-1")
	require.NoError(t, err)

	assert.NotContains(t, f.store.users, "u-1")
	assert.NotContains(t, f.provider.identities, "u-1")
	assert.NotContains(t, f.claims.roles, "u-1")
}

/*
TestDelete_ManagerCannotDeleteAdmin verifies the level gate for deletion.
*/
func TestDelete_ManagerCannotDeleteAdmin(t *testing.T) {
	f := newFixture()
	f.seed("adm-1", rbac.RoleAdmin)

	err := f.service.Delete(context.Background(), rbac.Actor{ID: "m-1", Role: rbac.RoleManager}, "adm-1")
	require.Error(t, err)

	ae := apperr.As(err)
	assert.Equal(t, "PERMISSION_DENIED", ae.Code)
	assert.Contains(t, ae.Message, "cannot delete")
}

/*
TestDelete_PartialFailure verifies divergence reporting: identity removed,
directory delete failing.
*/
func TestDelete_PartialFailure(t *testing.T) {
	f := newFixture()
	seeded := f.seed("u-1", rbac.RoleUser)
	f.store.deleteErr = errors.New("connection reset")

	err := f.service.Delete(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, "u-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "PARTIAL_FAILURE", ae.Code)
	assert.Contains(t, ae.Message, seeded.Email)

	// Identity is gone, directory record remains: exactly the divergence
	// the error reports.
	assert.NotContains(t, f.provider.identities, "u-1")
	assert.Contains(t, f.store.users, "u-1")
}

/*
TestDelete_IdentityFailureLeavesBothIntact verifies no divergence when the
first saga step fails.
*/
func TestDelete_IdentityFailureLeavesBothIntact(t *testing.T) {
	f := newFixture()
	f.seed("u-1", rbac.RoleUser)
	f.provider.deleteErr = errors.New("identity backend down")

	err := f.service.Delete(context.Background(), rbac.Actor{ID: "adm-1", Role: rbac.RoleAdmin}, "u-1")
	require.Error(t, err)
	if ae := apperr.As(err); ae != nil {
		assert.NotEqual(t, "PARTIAL_FAILURE", ae.Code)
	}

	assert.Contains(t, f.provider.identities, "u-1")
	assert.Contains(t, f.store.users, "u-1")
}
