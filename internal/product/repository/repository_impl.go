package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).
		Preload("Category").
		Preload("Supplier").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ExistsByCode(ctx context.Context, db *gorm.DB, code string, excludeID snowflake.ID) (bool, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(&domain.Product{}).Where("lower(code) = ?", strings.ToLower(code))
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"code":             product.Code,
			"name":             product.Name,
			"description":      product.Description,
			"category_id":      product.CategoryID,
			"supplier_id":      product.SupplierID,
			"stock":            product.Stock,
			"min_stock":        product.MinStock,
			"unit_price":       product.UnitPrice,
			"acquisition_cost": product.AcquisitionCost,
			"acquired_at":      product.AcquiredAt,
			"active":           product.Active,
			"updated_at":       product.UpdatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repo) AdjustStock(ctx context.Context, db *gorm.DB, id snowflake.ID, delta int) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}
