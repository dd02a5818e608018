package registrar

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"domainpilot/internal/models"
	"domainpilot/internal/provisioning"
)

// FromAccount builds the right client for a stored registrar account.
func FromAccount(acc models.RegistrarAccount) (provisioning.RegistrarClient, error) {
	switch acc.Provider {
	case models.ProviderNamecheap:
		return NewNamecheap(acc.APIUser, acc.APIKey, acc.Username, acc.ClientIP), nil
	case models.ProviderNjalla:
		return NewNjalla(acc.Token), nil
	default:
		return nil, fmt.Errorf("unknown registrar provider %q", acc.Provider)
	}
}

// DBResolver resolves registrar account IDs against the database. It
// satisfies provisioning.RegistrarResolver.
type DBResolver struct {
	DB *gorm.DB
}

func (r DBResolver) Resolve(_ context.Context, accountID uint) (provisioning.RegistrarClient, error) {
	var acc models.RegistrarAccount
	if err := r.DB.First(&acc, accountID).Error; err != nil {
		return nil, fmt.Errorf("registrar account %d: %w", accountID, err)
	}
	return FromAccount(acc)
}
