// File: database/repository/store/interface.go
package storeRepo

import (
	"context"

	"heysheets/models"
)

// StoreRepository reads per-tenant configuration records. The records are
// owned by the dashboard collaborator; the pipeline never writes them.
type StoreRepository interface {
	GetByID(ctx context.Context, storeID string) (*models.Store, error)
}
