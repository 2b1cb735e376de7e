// Package domain contains core types for the user service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User represents a staff account. Accounts are created inactive and must be
// activated by an administrator before they can log in.
type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	FullName     string       `gorm:"type:varchar(100);not null"`
	Position     string       `gorm:"type:varchar(50)"`
	PasswordHash *string      `gorm:"type:text"`
	Active       bool         `gorm:"not null;default:false"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
