package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	categoryrepository "github.com/smallbiznis/comercio/internal/category/repository"
	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	"github.com/smallbiznis/comercio/internal/product/domain"
	"github.com/smallbiznis/comercio/internal/product/repository"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	supplierdomain "github.com/smallbiznis/comercio/internal/supplier/domain"
	supplierrepository "github.com/smallbiznis/comercio/internal/supplier/repository"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type productFixture struct {
	svc        domain.Service
	db         *gorm.DB
	categoryID snowflake.ID
	supplierID snowflake.ID
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&categorydomain.Category{},
		&supplierdomain.Supplier{},
		&domain.Product{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	category := &categorydomain.Category{ID: node.Generate(), Name: "Beverages"}
	require.NoError(t, db.Create(category).Error)

	supplier := &supplierdomain.Supplier{
		ID:     node.Generate(),
		Name:   "Acme Distribution",
		Status: supplierdomain.StatusActive,
	}
	require.NoError(t, db.Create(supplier).Error)

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         repository.Provide(),
		CategoryRepo: categoryrepository.Provide(),
		SupplierRepo: supplierrepository.Provide(),
	})

	return &productFixture{
		svc:        svc,
		db:         db,
		categoryID: category.ID,
		supplierID: supplier.ID,
	}
}

func (f *productFixture) create(t *testing.T, code string, stock, minStock int) *domain.Response {
	t.Helper()
	created, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Code:       code,
		Name:       "Product " + code,
		CategoryID: f.categoryID.String(),
		Stock:      stock,
		MinStock:   minStock,
		UnitPrice:  2500,
	})
	require.NoError(t, err)
	return created
}

func str(v string) *string { return &v }

func TestCreateProductResolvesReferences(t *testing.T) {
	f := newProductFixture(t)

	supplierID := f.supplierID.String()
	created, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Code:       "SKU-1",
		Name:       "Ground Coffee",
		CategoryID: f.categoryID.String(),
		SupplierID: &supplierID,
		Stock:      10,
		MinStock:   2,
		UnitPrice:  2500,
	})
	require.NoError(t, err)

	assert.Equal(t, "Beverages", created.CategoryName)
	require.NotNil(t, created.SupplierName)
	assert.Equal(t, "Acme Distribution", *created.SupplierName)
	assert.True(t, created.Active)
	assert.False(t, created.LowStock)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Code:       "SKU-1",
		Name:       "Ground Coffee",
		CategoryID: "999999999",
		Stock:      1,
		UnitPrice:  2500,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestCreateProductRejectsUnknownSupplier(t *testing.T) {
	f := newProductFixture(t)

	supplierID := "999999999"
	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Code:       "SKU-1",
		Name:       "Ground Coffee",
		CategoryID: f.categoryID.String(),
		SupplierID: &supplierID,
		Stock:      1,
		UnitPrice:  2500,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSupplier)
}

func TestCreateProductValidatesNumbers(t *testing.T) {
	f := newProductFixture(t)

	base := domain.CreateRequest{
		Code:       "SKU-1",
		Name:       "Ground Coffee",
		CategoryID: f.categoryID.String(),
	}

	req := base
	req.Stock = -1
	req.UnitPrice = 2500
	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	req = base
	req.UnitPrice = 0
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidUnitPrice)

	req = base
	req.UnitPrice = 2500
	req.AcquisitionCost = -5
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidCost)
}

func TestCreateProductCodeTakenCaseInsensitive(t *testing.T) {
	f := newProductFixture(t)

	f.create(t, "SKU-1", 10, 2)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Code:       "sku-1",
		Name:       "Other",
		CategoryID: f.categoryID.String(),
		Stock:      1,
		UnitPrice:  100,
	})
	assert.ErrorIs(t, err, domain.ErrCodeTaken)
}

func TestListProductsLowStockOnly(t *testing.T) {
	f := newProductFixture(t)

	f.create(t, "LOW", 1, 5)
	f.create(t, "EDGE", 5, 5)
	f.create(t, "OK", 9, 5)
	retired := f.create(t, "RETIRED", 0, 5)

	inactive := false
	_, err := f.svc.Update(context.Background(), domain.UpdateRequest{
		ID:     retired.ID,
		Active: &inactive,
	})
	require.NoError(t, err)

	low, err := f.svc.List(context.Background(), domain.ListRequest{LowStockOnly: true})
	require.NoError(t, err)

	codes := make([]string, 0, len(low))
	for _, p := range low {
		codes = append(codes, p.Code)
		assert.True(t, p.LowStock)
	}
	assert.ElementsMatch(t, []string{"LOW", "EDGE"}, codes)
}

func TestUpdateProductClearsSupplier(t *testing.T) {
	f := newProductFixture(t)

	supplierID := f.supplierID.String()
	created, err := f.svc.Create(context.Background(), domain.CreateRequest{
		Code:       "SKU-1",
		Name:       "Ground Coffee",
		CategoryID: f.categoryID.String(),
		SupplierID: &supplierID,
		Stock:      10,
		UnitPrice:  2500,
	})
	require.NoError(t, err)
	require.NotNil(t, created.SupplierID)

	updated, err := f.svc.Update(context.Background(), domain.UpdateRequest{
		ID:            created.ID,
		ClearSupplier: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.SupplierID)
	assert.Nil(t, updated.SupplierName)
}

func TestUpdateProductKeepsOwnCode(t *testing.T) {
	f := newProductFixture(t)

	created := f.create(t, "SKU-1", 10, 2)

	updated, err := f.svc.Update(context.Background(), domain.UpdateRequest{
		ID:   created.ID,
		Code: str("SKU-1"),
		Name: str("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteProduct(t *testing.T) {
	f := newProductFixture(t)

	created := f.create(t, "SKU-1", 10, 2)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))

	_, err := f.svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProductRemovesItsSales(t *testing.T) {
	f := newProductFixture(t)

	require.NoError(t, f.db.AutoMigrate(
		&clientdomain.Client{},
		&userdomain.User{},
		&saledomain.Sale{},
	))
	require.NoError(t, f.db.Exec("PRAGMA foreign_keys = ON").Error)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	client := &clientdomain.Client{
		ID:     node.Generate(),
		TaxID:  "C-100",
		Name:   "Buyer Co",
		Status: clientdomain.StatusActive,
	}
	require.NoError(t, f.db.Create(client).Error)

	user := &userdomain.User{
		ID:       node.Generate(),
		Email:    "seller@comercio.local",
		FullName: "Sally Seller",
		Active:   true,
	}
	require.NoError(t, f.db.Create(user).Error)

	created := f.create(t, "SKU-1", 10, 2)
	productID, err := snowflake.ParseString(created.ID)
	require.NoError(t, err)

	sale := &saledomain.Sale{
		ID:        node.Generate(),
		ProductID: productID,
		ClientID:  client.ID,
		UserID:    user.ID,
		Quantity:  2,
		UnitPrice: 2500,
		Total:     5000,
		SoldAt:    time.Now().UTC(),
	}
	require.NoError(t, f.db.Create(sale).Error)

	// Removing a product takes its sale history along instead of
	// refusing the delete.
	require.NoError(t, f.svc.Delete(context.Background(), created.ID))

	var count int64
	require.NoError(t, f.db.Model(&saledomain.Sale{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
