package models

import (
	"time"

	"gorm.io/gorm"
)

// SSHHost is a stored VPS/SSH endpoint.
type SSHHost struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Host      string         `gorm:"not null" json:"host"`
	Port      int            `gorm:"default:22" json:"port"`
	User      string         `gorm:"not null" json:"user"`
	Password  string         `json:"password,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Runtime check result, not persisted.
	Reachable bool `gorm:"-" json:"reachable"`
}
