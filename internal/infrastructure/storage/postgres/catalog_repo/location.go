package catalog_repo

import (
	"depo/internal/domain/catalogs/location"
	"depo/internal/infrastructure/storage/postgres"
)

const locationTable = "cat_locations"

var _ location.Repository = (*LocationRepo)(nil)

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseCatalogRepo[*location.Location]
}

// NewLocationRepo creates a new location repository.
func NewLocationRepo(txm *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm, BaseConfig{
			Table:      locationTable,
			EntityName: location.Kind,
			Columns:    postgres.ExtractDBColumns[location.Location](),
			SearchCols: []string{"code", "name"},
		}, func() *location.Location { return &location.Location{} }),
	}
}
