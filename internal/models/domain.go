package models

import (
	"time"

	"gorm.io/gorm"
)

// Domain is the persisted provisioning history for one domain. The live
// queue is in-memory only; a row is written (or updated) whenever a queue
// item reaches a terminal status.
type Domain struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null;uniqueIndex" json:"name"`
	Status        string         `gorm:"default:'Pending'" json:"status"` // Pending, Success, Error
	ZoneID        string         `json:"zone_id"`
	Nameservers   string         `json:"nameservers"` // comma-separated
	LastError     string         `json:"last_error"`
	ProvisionedAt *time.Time     `json:"provisioned_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
