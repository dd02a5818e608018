package models

import (
	"time"

	"gorm.io/gorm"
)

// Proxy is a stored SOCKS5 endpoint.
type Proxy struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Host      string         `gorm:"not null" json:"host"`
	Port      int            `gorm:"not null" json:"port"`
	Username  string         `json:"username,omitempty"`
	Password  string         `json:"password,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Runtime check results, not persisted.
	Alive     bool  `gorm:"-" json:"alive"`
	LatencyMS int64 `gorm:"-" json:"latency_ms"`
}
