package catalog_repo

import (
	"depo/internal/domain/catalogs/warehousetype"
	"depo/internal/infrastructure/storage/postgres"
)

const warehouseTypeTable = "cat_warehouse_types"

var _ warehousetype.Repository = (*WarehouseTypeRepo)(nil)

// WarehouseTypeRepo implements warehousetype.Repository.
type WarehouseTypeRepo struct {
	*BaseCatalogRepo[*warehousetype.WarehouseType]
}

// NewWarehouseTypeRepo creates a new warehouse type repository.
func NewWarehouseTypeRepo(txm *postgres.TxManager) *WarehouseTypeRepo {
	return &WarehouseTypeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm, BaseConfig{
			Table:      warehouseTypeTable,
			EntityName: warehousetype.Kind,
			Columns:    postgres.ExtractDBColumns[warehousetype.WarehouseType](),
			SearchCols: []string{"code", "name"},
		}, func() *warehousetype.WarehouseType { return &warehousetype.WarehouseType{} }),
	}
}
