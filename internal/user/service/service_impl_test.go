package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/comercio/internal/authorization"
	"github.com/smallbiznis/comercio/internal/user/domain"
	"github.com/smallbiznis/comercio/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAuthz struct {
	assigned map[string][]string
}

func newFakeAuthz() *fakeAuthz {
	return &fakeAuthz{assigned: map[string][]string{}}
}

func (f *fakeAuthz) Authorize(ctx context.Context, actor, object, action string) error {
	return nil
}

func (f *fakeAuthz) AssignRole(ctx context.Context, userID, role string) error {
	f.assigned[userID] = append(f.assigned[userID], role)
	return nil
}

func (f *fakeAuthz) ReplaceRole(ctx context.Context, userID, role string) error {
	f.assigned[userID] = []string{role}
	return nil
}

func (f *fakeAuthz) RolesForUser(ctx context.Context, userID string) ([]string, error) {
	return f.assigned[userID], nil
}

func (f *fakeAuthz) RemoveUser(ctx context.Context, userID string) error {
	delete(f.assigned, userID)
	return nil
}

type userFixture struct {
	svc   domain.Service
	authz *fakeAuthz
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	authz := newFakeAuthz()
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
		Authz: authz,
	})
	return &userFixture{svc: svc, authz: authz}
}

func str(v string) *string { return &v }

func TestCreateUserAssignsRole(t *testing.T) {
	f := newUserFixture(t)

	created, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "admin@comercio.local",
		FullName: "Ada Admin",
		Password: "supersecret",
		Role:     "Administrator",
		Active:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, authorization.RoleAdministrator, created.Position)
	assert.Equal(t, []string{authorization.RoleAdministrator}, created.Roles)
	assert.True(t, created.Active)
}

func TestCreateUserDefaultsToEmployee(t *testing.T) {
	f := newUserFixture(t)

	created, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "emp@comercio.local",
		FullName: "Eve Employee",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, authorization.RoleEmployee, created.Position)
	assert.Equal(t, []string{authorization.RoleEmployee}, created.Roles)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "x@comercio.local",
		FullName: "X",
		Password: "supersecret",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "dup@comercio.local",
		FullName: "First",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "dup@comercio.local",
		FullName: "Second",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUpdateUserRoleReplacesAssignment(t *testing.T) {
	f := newUserFixture(t)

	created, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "emp@comercio.local",
		FullName: "Eve Employee",
		Password: "supersecret",
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), domain.UpdateRequest{
		ID:   created.ID,
		Role: str(authorization.RoleAdministrator),
	})
	require.NoError(t, err)

	assert.Equal(t, authorization.RoleAdministrator, updated.Position)
	assert.Equal(t, []string{authorization.RoleAdministrator}, updated.Roles)
}

func TestListUsersFiltersAcrossFields(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "ada@comercio.local",
		FullName: "Ada Admin",
		Password: "supersecret",
		Role:     authorization.RoleAdministrator,
		Active:   true,
	})
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "eve@comercio.local",
		FullName: "Eve Employee",
		Password: "supersecret",
	})
	require.NoError(t, err)

	// User search is case-insensitive, unlike the other catalogs.
	matches, err := f.svc.List(context.Background(), domain.ListRequest{Search: "ADA"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = f.svc.List(context.Background(), domain.ListRequest{Search: "administrator"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	all, err := f.svc.List(context.Background(), domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteUserRemovesRoleAssignments(t *testing.T) {
	f := newUserFixture(t)

	created, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Email:    "gone@comercio.local",
		FullName: "Going Away",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))

	_, err = f.svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.authz.assigned[created.ID])
}
