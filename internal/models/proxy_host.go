package models

import (
	"time"

	"gorm.io/gorm"
)

// ProxyHost is one reverse-proxy entry mirrored to the proxy manager.
type ProxyHost struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	DomainName  string         `gorm:"uniqueIndex;not null" json:"domain_name"`
	ForwardHost string         `gorm:"not null" json:"forward_host"`
	ForwardPort int            `gorm:"not null" json:"forward_port"`
	SSL         bool           `gorm:"default:true" json:"ssl"`
	RemoteID    int            `json:"remote_id"` // ID assigned by the proxy manager
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
