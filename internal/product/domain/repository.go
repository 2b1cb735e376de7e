package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	// FindByID preloads Category and Supplier.
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	ExistsByCode(ctx context.Context, db *gorm.DB, code string, excludeID snowflake.ID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) (int64, error)
	// AdjustStock applies a signed delta to the stored stock inside the
	// caller's transaction.
	AdjustStock(ctx context.Context, db *gorm.DB, id snowflake.ID, delta int) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
