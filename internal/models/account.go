package models

import (
	"time"

	"gorm.io/gorm"
)

// Account is a stored Cloudflare credential.
type Account struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Email     string         `json:"email"`
	APIToken  string         `gorm:"not null" json:"api_token,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
