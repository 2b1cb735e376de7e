package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, client *Client) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Client, error)
	// ExistsByTaxID reports a case-insensitive tax identifier collision,
	// ignoring the row identified by excludeID (0 to check all rows).
	ExistsByTaxID(ctx context.Context, db *gorm.DB, taxID string, excludeID snowflake.ID) (bool, error)
	Update(ctx context.Context, db *gorm.DB, client *Client) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
