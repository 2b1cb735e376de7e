package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Supplier, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Supplier, error)
	// ExistsByName reports a case-insensitive name collision, ignoring the
	// row identified by excludeID (0 to check all rows).
	ExistsByName(ctx context.Context, db *gorm.DB, name string, excludeID snowflake.ID) (bool, error)
	ExistsByInternalCode(ctx context.Context, db *gorm.DB, code string, excludeID snowflake.ID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, supplier *Supplier) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
