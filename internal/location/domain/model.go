package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Location is a named storage or sales site (warehouse, branch, shelf area).
type Location struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:varchar(100);not null"`
	Description *string      `gorm:"type:varchar(500)"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Location) TableName() string { return "locations" }
