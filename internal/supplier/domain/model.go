package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Supplier struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Name         string       `gorm:"type:varchar(200);not null"`
	InternalCode string       `gorm:"type:varchar(50)"`
	Description  *string      `gorm:"type:varchar(500)"`
	Address      *string      `gorm:"type:varchar(300)"`
	Phone        *string      `gorm:"type:varchar(20)"`
	Status       string       `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Supplier) TableName() string { return "suppliers" }
