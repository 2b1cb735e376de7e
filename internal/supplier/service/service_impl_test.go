package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/comercio/internal/supplier/domain"
	"github.com/smallbiznis/comercio/internal/supplier/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSupplierService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Supplier{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func str(v string) *string { return &v }

func TestCreateSupplierDefaultsToActive(t *testing.T) {
	svc := newSupplierService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{
		Name:         "  Acme Distribution  ",
		InternalCode: "ACME-01",
		Phone:        str("+1 (555) 010-2030"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Distribution", created.Name)
	assert.Equal(t, domain.StatusActive, created.Status)
	require.NotNil(t, created.Phone)
	assert.Equal(t, "+1 (555) 010-2030", *created.Phone)
}

func TestCreateSupplierNameTakenCaseInsensitive(t *testing.T) {
	svc := newSupplierService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "acme"})
	assert.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestCreateSupplierInternalCodeTaken(t *testing.T) {
	svc := newSupplierService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Acme", InternalCode: "AC-1"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "Other", InternalCode: "ac-1"})
	assert.ErrorIs(t, err, domain.ErrInternalCodeTaken)

	// Empty codes never collide.
	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "NoCode One"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "NoCode Two"})
	require.NoError(t, err)
}

func TestCreateSupplierRejectsBadInput(t *testing.T) {
	svc := newSupplierService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "Acme", Phone: str("call me maybe")})
	assert.ErrorIs(t, err, domain.ErrInvalidPhone)

	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "Acme", Status: "paused"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateSupplierKeepsOwnNameAndCode(t *testing.T) {
	svc := newSupplierService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Acme", InternalCode: "AC-1"})
	require.NoError(t, err)

	// Re-submitting the current values must not trip the uniqueness check.
	updated, err := svc.Update(context.Background(), domain.UpdateRequest{
		ID:           created.ID,
		Name:         str("Acme"),
		InternalCode: str("AC-1"),
		Status:       str("inactive"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, updated.Status)
}

func TestSupplierListFiltersCaseSensitively(t *testing.T) {
	svc := newSupplierService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Acme", InternalCode: "AC-1"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "Globex"})
	require.NoError(t, err)

	matches, err := svc.List(context.Background(), domain.ListRequest{Search: "Acme"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = svc.List(context.Background(), domain.ListRequest{Search: "AC-1"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = svc.List(context.Background(), domain.ListRequest{Search: "acme"})
	require.NoError(t, err)
	assert.Empty(t, matches)

	all, err := svc.List(context.Background(), domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteSupplier(t *testing.T) {
	svc := newSupplierService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
