package cloudflare

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"domainpilot/internal/models"
	"domainpilot/internal/provisioning"
)

// DBResolver resolves stored Cloudflare account IDs to clients built from
// the account's API token. It satisfies provisioning.ZoneResolver.
type DBResolver struct {
	DB *gorm.DB
}

func (r DBResolver) Resolve(_ context.Context, accountID uint) (provisioning.ZoneAPI, error) {
	var acc models.Account
	if err := r.DB.First(&acc, accountID).Error; err != nil {
		return nil, fmt.Errorf("cloudflare account %d: %w", accountID, err)
	}
	return New(acc.APIToken), nil
}
