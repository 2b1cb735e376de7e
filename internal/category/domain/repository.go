package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Category, error)
	Update(ctx context.Context, db *gorm.DB, category *Category) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
