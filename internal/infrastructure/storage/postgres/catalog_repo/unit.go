package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"depo/internal/domain/catalogs/unit"
	"depo/internal/infrastructure/storage/postgres"
)

const unitTable = "cat_units"

var _ unit.Repository = (*UnitRepo)(nil)

// UnitRepo implements unit.Repository.
type UnitRepo struct {
	*BaseCatalogRepo[*unit.Unit]
}

// NewUnitRepo creates a new unit repository.
func NewUnitRepo(txm *postgres.TxManager) *UnitRepo {
	return &UnitRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(txm, BaseConfig{
			Table:      unitTable,
			EntityName: unit.Kind,
			Columns:    postgres.ExtractDBColumns[unit.Unit](),
			SearchCols: []string{"code", "tr_name", "en_name"},
		}, func() *unit.Unit { return &unit.Unit{} }),
	}
}

// FindBySymbol retrieves a live unit carrying symbol in either language.
func (r *UnitRepo) FindBySymbol(ctx context.Context, symbol string) (*unit.Unit, error) {
	return r.FindOne(ctx, squirrel.And{
		squirrel.Or{
			squirrel.Eq{"tr_symbol": symbol},
			squirrel.Eq{"en_symbol": symbol},
		},
		squirrel.Eq{"deletion_mark": false},
	})
}
