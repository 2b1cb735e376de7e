package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/comercio/internal/authctx"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	clientrepository "github.com/smallbiznis/comercio/internal/client/repository"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	productrepository "github.com/smallbiznis/comercio/internal/product/repository"
	"github.com/smallbiznis/comercio/internal/sale/domain"
	salerepository "github.com/smallbiznis/comercio/internal/sale/repository"
	supplierdomain "github.com/smallbiznis/comercio/internal/supplier/domain"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeDispatcher struct {
	invoices []domain.Invoice
	full     bool
}

func (f *fakeDispatcher) Enqueue(inv domain.Invoice) (<-chan error, bool) {
	if f.full {
		return nil, false
	}
	f.invoices = append(f.invoices, inv)
	done := make(chan error)
	close(done)
	return done, true
}

type saleFixture struct {
	svc        domain.Service
	db         *gorm.DB
	dispatcher *fakeDispatcher
	userID     snowflake.ID
	clientID   snowflake.ID
	productID  snowflake.ID
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&categorydomain.Category{},
		&supplierdomain.Supplier{},
		&clientdomain.Client{},
		&userdomain.User{},
		&productdomain.Product{},
		&domain.Sale{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	category := &categorydomain.Category{ID: node.Generate(), Name: "Beverages"}
	require.NoError(t, db.Create(category).Error)

	user := &userdomain.User{
		ID:       node.Generate(),
		Email:    "seller@comercio.local",
		FullName: "Sally Seller",
		Position: "employee",
		Active:   true,
	}
	require.NoError(t, db.Create(user).Error)

	email := "buyer@example.com"
	client := &clientdomain.Client{
		ID:     node.Generate(),
		TaxID:  "C-100",
		Name:   "Buyer Co",
		Email:  &email,
		Status: clientdomain.StatusActive,
	}
	require.NoError(t, db.Create(client).Error)

	product := &productdomain.Product{
		ID:              node.Generate(),
		Code:            "SKU-1",
		Name:            "Ground Coffee",
		CategoryID:      category.ID,
		Stock:           10,
		MinStock:        2,
		UnitPrice:       2500,
		AcquisitionCost: 1000,
		Active:          true,
	}
	require.NoError(t, db.Create(product).Error)

	dispatcher := &fakeDispatcher{}
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        salerepository.Provide(),
		ProductRepo: productrepository.Provide(),
		ClientRepo:  clientrepository.Provide(),
		Dispatcher:  dispatcher,
	})

	return &saleFixture{
		svc:        svc,
		db:         db,
		dispatcher: dispatcher,
		userID:     user.ID,
		clientID:   client.ID,
		productID:  product.ID,
	}
}

func (f *saleFixture) sellerCtx() context.Context {
	return authctx.WithUserID(context.Background(), f.userID)
}

func (f *saleFixture) productStock(t *testing.T) int {
	t.Helper()
	var product productdomain.Product
	require.NoError(t, f.db.First(&product, "id = ?", f.productID).Error)
	return product.Stock
}

func TestCreateSaleRejectsInsufficientStock(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  12,
	})

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Ground Coffee", stockErr.ProductName)
	assert.Equal(t, 10, stockErr.Available)
	assert.Contains(t, stockErr.Error(), "Ground Coffee")

	assert.Equal(t, 10, f.productStock(t))
	assert.Empty(t, f.dispatcher.invoices)
}

func TestCreateSaleDecrementsStockAndComputesTotal(t *testing.T) {
	f := newSaleFixture(t)

	resp, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), resp.Total)
	assert.Equal(t, int64(2500), resp.UnitPrice)
	assert.Equal(t, 4, resp.Quantity)
	assert.Equal(t, "Ground Coffee", resp.ProductName)
	assert.Equal(t, f.clientID.String(), resp.ClientID)
	assert.Equal(t, "Buyer Co", resp.ClientName)
	assert.Equal(t, f.userID.String(), resp.UserID)
	assert.Equal(t, 6, f.productStock(t))

	require.Len(t, f.dispatcher.invoices, 1)
	inv := f.dispatcher.invoices[0]
	assert.Equal(t, resp.ID, inv.SaleID)
	assert.Equal(t, "buyer@example.com", inv.ClientEmail)
	assert.Equal(t, int64(10000), inv.Total)
}

func TestCreateSaleRequiresSeller(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrMissingSeller)
	assert.Equal(t, 10, f.productStock(t))
}

func TestCreateSaleRequiresClient(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidClient)

	_, err = f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  "424242424242",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidClient)

	assert.Equal(t, 10, f.productStock(t))
	assert.Empty(t, f.dispatcher.invoices)
}

func TestCreateSaleDropsInvoiceWhenQueueFull(t *testing.T) {
	f := newSaleFixture(t)
	f.dispatcher.full = true

	_, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  1,
	})

	// A full mail queue must never fail the sale.
	require.NoError(t, err)
	assert.Equal(t, 9, f.productStock(t))
}

func TestUpdateSaleAdjustsStockByDelta(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.productStock(t))

	quantity := 6
	updated, err := f.svc.Update(f.sellerCtx(), domain.UpdateRequest{
		ID:       created.ID,
		Quantity: &quantity,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, updated.Quantity)
	assert.Equal(t, int64(15000), updated.Total)
	assert.Equal(t, 4, f.productStock(t))
}

func TestUpdateSaleRejectsDeltaBeyondStock(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)

	quantity := 11
	_, err = f.svc.Update(f.sellerCtx(), domain.UpdateRequest{
		ID:       created.ID,
		Quantity: &quantity,
	})

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 6, stockErr.Available)
	assert.Equal(t, 6, f.productStock(t))
}

func TestUpdateSaleShrinkRestoresStock(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)

	quantity := 2
	updated, err := f.svc.Update(f.sellerCtx(), domain.UpdateRequest{
		ID:       created.ID,
		Quantity: &quantity,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), updated.Total)
	assert.Equal(t, 8, f.productStock(t))
}

func TestDeleteSaleRestoresStock(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  4,
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.productStock(t))

	require.NoError(t, f.svc.Delete(f.sellerCtx(), created.ID))

	assert.Equal(t, 10, f.productStock(t))
	_, err = f.svc.Get(f.sellerCtx(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSaleUnknownID(t *testing.T) {
	f := newSaleFixture(t)

	err := f.svc.Delete(f.sellerCtx(), "123456789")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUnitPriceSnapshotSurvivesPriceChange(t *testing.T) {
	f := newSaleFixture(t)

	created, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  2,
	})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&productdomain.Product{}).
		Where("id = ?", f.productID).
		Update("unit_price", 9900).Error)

	got, err := f.svc.Get(f.sellerCtx(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), got.UnitPrice)
	assert.Equal(t, int64(5000), got.Total)
}

func TestListSalesFiltersBySearchTerm(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  3,
	})
	require.NoError(t, err)

	matches, err := f.svc.List(f.sellerCtx(), domain.ListRequest{Search: "Coffee"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = f.svc.List(f.sellerCtx(), domain.ListRequest{Search: "Sally"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = f.svc.List(f.sellerCtx(), domain.ListRequest{Search: "coffee"})
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = f.svc.List(f.sellerCtx(), domain.ListRequest{Search: "3"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	// The formatted total and the sale date are searchable too.
	matches, err = f.svc.List(f.sellerCtx(), domain.ListRequest{Search: "75.00"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = f.svc.List(f.sellerCtx(), domain.ListRequest{Search: time.Now().UTC().Format("2006-01-02")})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = f.svc.List(f.sellerCtx(), domain.ListRequest{Search: "99.99"})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestListSalesByDateRange(t *testing.T) {
	f := newSaleFixture(t)

	old := time.Now().UTC().Add(-72 * time.Hour)
	_, err := f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  1,
		SoldAt:    &old,
	})
	require.NoError(t, err)

	_, err = f.svc.Create(f.sellerCtx(), domain.CreateRequest{
		ProductID: f.productID.String(),
		ClientID:  f.clientID.String(),
		Quantity:  1,
	})
	require.NoError(t, err)

	from := time.Now().UTC().Add(-24 * time.Hour)
	recent, err := f.svc.List(f.sellerCtx(), domain.ListRequest{From: &from})
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	all, err := f.svc.List(f.sellerCtx(), domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
