package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/client/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, client *domain.Client) error {
	return db.WithContext(ctx).Create(client).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	var c domain.Client
	err := db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Client, error) {
	var items []domain.Client
	if err := db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ExistsByTaxID(ctx context.Context, db *gorm.DB, taxID string, excludeID snowflake.ID) (bool, error) {
	var count int64
	stmt := db.WithContext(ctx).Model(&domain.Client{}).Where("lower(tax_id) = ?", strings.ToLower(taxID))
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}
	if err := stmt.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, client *domain.Client) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ?", client.ID).
		Updates(map[string]any{
			"tax_id":     client.TaxID,
			"name":       client.Name,
			"address":    client.Address,
			"phone":      client.Phone,
			"email":      client.Email,
			"status":     client.Status,
			"updated_at": client.UpdatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Client{}, "id = ?", id).Error
}
