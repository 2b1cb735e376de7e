package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Category struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:varchar(100);not null"`
	Description *string      `gorm:"type:varchar(500)"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Category) TableName() string { return "categories" }
