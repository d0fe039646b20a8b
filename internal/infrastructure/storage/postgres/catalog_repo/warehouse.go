package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"depo/internal/core/id"
	"depo/internal/domain/catalogs/warehouse"
	"depo/internal/infrastructure/storage/postgres"
)

const warehouseTable = "cat_warehouses"

var (
	_ warehouse.Repository = (*WarehouseRepo)(nil)
	_ warehouse.Referrer   = (*WarehouseRepo)(nil)
)

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a new warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm, BaseConfig{
			Table:      warehouseTable,
			EntityName: warehouse.Kind,
			Columns:    postgres.ExtractDBColumns[warehouse.Warehouse](),
			SearchCols: []string{"code", "name"},
		}, func() *warehouse.Warehouse { return &warehouse.Warehouse{} }),
	}
}

// Referenced reports whether a live warehouse references ref via column.
func (r *WarehouseRepo) Referenced(ctx context.Context, column string, ref id.ID) (bool, error) {
	if column != warehouse.RefWarehouseType && column != warehouse.RefLocation {
		return false, fmt.Errorf("unknown warehouse reference %q", column)
	}
	return r.exists(ctx, r.Builder().Select("1").From(warehouseTable).
		Where(squirrel.Eq{column: ref, "deletion_mark": false}))
}
