package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/supplier/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Create(supplier).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Supplier, error) {
	var s domain.Supplier
	err := db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Supplier, error) {
	var items []domain.Supplier
	if err := db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ExistsByName(ctx context.Context, db *gorm.DB, name string, excludeID snowflake.ID) (bool, error) {
	return r.exists(ctx, db, "lower(name) = ?", strings.ToLower(name), excludeID)
}

func (r *repo) ExistsByInternalCode(ctx context.Context, db *gorm.DB, code string, excludeID snowflake.ID) (bool, error) {
	return r.exists(ctx, db, "lower(internal_code) = ?", strings.ToLower(code), excludeID)
}

func (r *repo) exists(ctx context.Context, db *gorm.DB, cond string, value string, excludeID snowflake.ID) (bool, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(&domain.Supplier{}).Where(cond, value)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Supplier{}).
		Where("id = ?", supplier.ID).
		Updates(map[string]any{
			"name":          supplier.Name,
			"internal_code": supplier.InternalCode,
			"description":   supplier.Description,
			"address":       supplier.Address,
			"phone":         supplier.Phone,
			"status":        supplier.Status,
			"updated_at":    supplier.UpdatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Supplier{}, "id = ?", id).Error
}
