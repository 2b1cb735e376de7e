package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/location/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, location *domain.Location) error {
	return db.WithContext(ctx).Create(location).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Location, error) {
	var l domain.Location
	err := db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Location, error) {
	var items []domain.Location
	if err := db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, location *domain.Location) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Location{}).
		Where("id = ?", location.ID).
		Updates(map[string]any{
			"name":        location.Name,
			"description": location.Description,
			"updated_at":  location.UpdatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Location{}, "id = ?", id).Error
}
