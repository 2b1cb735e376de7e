package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, location *Location) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Location, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Location, error)
	Update(ctx context.Context, db *gorm.DB, location *Location) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
