package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/comercio/internal/client/domain"
	"github.com/smallbiznis/comercio/internal/client/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newClientService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Client{}))

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

func TestCreateClientRequiresTaxID(t *testing.T) {
	svc := newClientService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Buyer Co"})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxID)
}

func TestCreateClientTaxIDTakenCaseInsensitive(t *testing.T) {
	svc := newClientService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{TaxID: "B-123x", Name: "Buyer Co"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateRequest{TaxID: "b-123X", Name: "Other Co"})
	assert.ErrorIs(t, err, domain.ErrTaxIDTaken)
}

func TestCreateClientValidatesEmail(t *testing.T) {
	svc := newClientService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{
		TaxID: "B-1",
		Name:  "Buyer Co",
		Email: str("not-an-email"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	created, err := svc.Create(context.Background(), domain.CreateRequest{
		TaxID: "B-1",
		Name:  "Buyer Co",
		Email: str("buyer@example.com"),
	})
	require.NoError(t, err)
	require.NotNil(t, created.Email)
	assert.Equal(t, "buyer@example.com", *created.Email)
}

func TestUpdateClientKeepsOwnTaxID(t *testing.T) {
	svc := newClientService(t)

	created, err := svc.Create(context.Background(), domain.CreateRequest{TaxID: "B-1", Name: "Buyer Co"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), domain.UpdateRequest{
		ID:     created.ID,
		TaxID:  str("B-1"),
		Status: str("inactive"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, updated.Status)
}

func TestUpdateClientRejectsForeignTaxID(t *testing.T) {
	svc := newClientService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{TaxID: "B-1", Name: "Buyer Co"})
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), domain.CreateRequest{TaxID: "B-2", Name: "Other Co"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), domain.UpdateRequest{
		ID:    other.ID,
		TaxID: str("B-1"),
	})
	assert.ErrorIs(t, err, domain.ErrTaxIDTaken)
}

func TestClientListMatchesTaxIDAndName(t *testing.T) {
	svc := newClientService(t)

	_, err := svc.Create(context.Background(), domain.CreateRequest{TaxID: "B-1", Name: "Buyer Co"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.CreateRequest{TaxID: "X-9", Name: "Xylo Ltd"})
	require.NoError(t, err)

	matches, err := svc.List(context.Background(), domain.ListRequest{Search: "Buyer"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = svc.List(context.Background(), domain.ListRequest{Search: "X-9"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = svc.List(context.Background(), domain.ListRequest{Search: "buyer"})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGetClientInvalidID(t *testing.T) {
	svc := newClientService(t)

	_, err := svc.Get(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
