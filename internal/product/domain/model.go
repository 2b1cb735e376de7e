package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/comercio/internal/category/domain"
	supplierdomain "github.com/smallbiznis/comercio/internal/supplier/domain"
)

// Product is a stock-tracked item. Monetary amounts are stored in cents.
// Deleting a category with products is rejected; deleting a supplier
// leaves its products with a NULL supplier.
type Product struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	Code            string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string       `gorm:"type:varchar(200);not null"`
	Description     *string      `gorm:"type:varchar(500)"`
	CategoryID      snowflake.ID `gorm:"not null;index"`
	SupplierID      *snowflake.ID
	Stock           int   `gorm:"not null;default:0"`
	MinStock        int   `gorm:"not null;default:0"`
	UnitPrice       int64 `gorm:"not null"`
	AcquisitionCost int64 `gorm:"not null;default:0"`
	AcquiredAt      *time.Time
	Active          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category *categorydomain.Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Supplier *supplierdomain.Supplier `gorm:"foreignKey:SupplierID;constraint:OnDelete:SET NULL"`
}

func (Product) TableName() string {
	return "products"
}
