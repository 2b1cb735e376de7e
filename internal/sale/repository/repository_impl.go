package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/comercio/internal/sale/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, sale *domain.Sale) error {
	return db.WithContext(ctx).Create(sale).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Sale, error) {
	var s domain.Sale
	err := db.WithContext(ctx).
		Preload("Product").
		Preload("Client").
		Preload("User").
		First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Sale, error) {
	var items []domain.Sale
	err := db.WithContext(ctx).
		Preload("Product").
		Preload("Client").
		Preload("User").
		Order("sold_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.Sale, error) {
	var items []domain.Sale
	err := db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Preload("Client").
		Preload("User").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Order("sold_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, sale *domain.Sale) (int64, error) {
	result := db.WithContext(ctx).
		Model(&domain.Sale{}).
		Where("id = ?", sale.ID).
		Updates(map[string]any{
			"client_id":  sale.ClientID,
			"quantity":   sale.Quantity,
			"unit_price": sale.UnitPrice,
			"total":      sale.Total,
			"sold_at":    sale.SoldAt,
			"updated_at": sale.UpdatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Sale{}, "id = ?", id).Error
}
