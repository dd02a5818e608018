package models

import (
	"time"

	"gorm.io/gorm"
)

// Registrar providers.
const (
	ProviderNamecheap = "namecheap"
	ProviderNjalla    = "njalla"
)

// RegistrarAccount holds credentials for one registrar. Which fields are
// meaningful depends on Provider: Namecheap uses APIUser/APIKey/Username/
// ClientIP, Njalla only Token.
type RegistrarAccount struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Provider  string         `gorm:"not null" json:"provider"`
	APIUser   string         `json:"api_user,omitempty"`
	APIKey    string         `json:"api_key,omitempty"`
	Username  string         `json:"username,omitempty"`
	ClientIP  string         `json:"client_ip,omitempty"`
	Token     string         `json:"token,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
