package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/comercio/internal/client/domain"
	productdomain "github.com/smallbiznis/comercio/internal/product/domain"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
)

// Sale records a single-product sale. UnitPrice is a snapshot of the
// product price at the time of sale, so later price changes do not
// rewrite history. Total is always UnitPrice * Quantity, in cents.
type Sale struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	ProductID snowflake.ID `gorm:"not null;index"`
	ClientID  snowflake.ID `gorm:"not null;index"`
	UserID    snowflake.ID `gorm:"not null;index"`
	Quantity  int          `gorm:"not null"`
	UnitPrice int64        `gorm:"not null"`
	Total     int64        `gorm:"not null"`
	SoldAt    time.Time    `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Sales follow their referenced rows out of existence: removing a
	// product, client or user removes its sales without touching stock.
	Product *productdomain.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Client  *clientdomain.Client   `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	User    *userdomain.User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Sale) TableName() string {
	return "sales"
}
