package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, sale *Sale) error
	// FindByID preloads Product, Client and User.
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Sale, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Sale, error)
	// FindBetween returns sales with from <= sold_at < to, preloaded.
	FindBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Sale, error)
	Update(ctx context.Context, db *gorm.DB, sale *Sale) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
