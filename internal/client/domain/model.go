package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Client is a customer a sale can be attributed to. TaxID is the fiscal
// identifier and must be unique across clients.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	TaxID     string       `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name      string       `gorm:"type:varchar(200);not null"`
	Address   *string      `gorm:"type:varchar(300)"`
	Phone     *string      `gorm:"type:varchar(20)"`
	Email     *string      `gorm:"type:varchar(150)"`
	Status    string       `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Client) TableName() string {
	return "clients"
}
