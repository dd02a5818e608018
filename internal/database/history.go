package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"domainpilot/internal/models"
	"domainpilot/internal/provisioning"
)

// DomainRecorder persists terminal queue items as Domain rows. It satisfies
// provisioning.Recorder.
type DomainRecorder struct {
	DB *gorm.DB
}

func (r DomainRecorder) Record(item provisioning.QueueItem) {
	row := models.Domain{
		Name:        item.Domain,
		Status:      string(item.Status),
		ZoneID:      item.ZoneID,
		Nameservers: strings.Join(item.Nameservers, ","),
		LastError:   item.Error,
	}
	if item.Status == provisioning.StatusSuccess {
		now := time.Now()
		row.ProvisionedAt = &now
	}
	// Re-provisioning the same domain updates its existing row.
	r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "zone_id", "nameservers", "last_error", "provisioned_at", "updated_at",
		}),
	}).Create(&row)
}
