package server

import (
	"errors"
	"net/http"
	"testing"
	"time"

	authdomain "github.com/smallbiznis/comercio/internal/auth/domain"
	"github.com/smallbiznis/comercio/internal/authorization"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"validation", productdomain.ErrInvalidUnitPrice, http.StatusBadRequest, "validation_error"},
		{"missing seller", saledomain.ErrMissingSeller, http.StatusBadRequest, "validation_error"},
		{"unauthorized", authdomain.ErrSessionExpired, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", authorization.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"conflict", clientdomain.ErrTaxIDTaken, http.StatusConflict, "conflict"},
		{"in use", categorydomain.ErrInUse, http.StatusConflict, "conflict"},
		{"not found", saledomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.typ, payload.Type)
		})
	}
}

func TestMapErrorInsufficientStockCarriesDetail(t *testing.T) {
	err := &saledomain.InsufficientStockError{ProductName: "Ground Coffee", Available: 3}

	status, payload := mapError(err)

	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "quantity", payload.Errors[0].Field)
	assert.Equal(t, "insufficient_stock", payload.Errors[0].Code)
	assert.Contains(t, payload.Errors[0].Message, "Ground Coffee")
}

func TestMapErrorValidationFieldDerivation(t *testing.T) {
	_, payload := mapError(clientdomain.ErrInvalidTaxID)

	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "tax_id", payload.Errors[0].Field)
	assert.Equal(t, "invalid_tax_id", payload.Errors[0].Code)
}

func TestParseOptionalTime(t *testing.T) {
	got, err := parseOptionalTime("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseOptionalTime("2026-08-30T10:00:00Z")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), *got)

	got, err = parseOptionalTime("2026-08-30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), *got)

	_, err = parseOptionalTime("yesterday")
	assert.Error(t, err)
}
