package warehouse

import (
	"context"
	"fmt"

	"depo/internal/core/apperror"
	"depo/internal/core/entity"
	"depo/internal/core/id"
	"depo/internal/domain"
)

// Reference columns of a warehouse row.
const (
	RefWarehouseType = "warehouse_type_id"
	RefLocation      = "location_id"
)

// Referrer reports whether a live warehouse points at ref through column.
type Referrer interface {
	Referenced(ctx context.Context, column string, ref id.ID) (bool, error)
}

// DeleteGuard returns a before-delete hook for a referenced catalog (types,
// locations). A deletion mark on an entry still selected by a live warehouse
// is refused with a conflict.
func DeleteGuard[T entity.Entity](refs Referrer, column string) domain.Hook[T] {
	return func(ctx context.Context, e T) error {
		used, err := refs.Referenced(ctx, column, e.GetID())
		if err != nil {
			return fmt.Errorf("check warehouse references: %w", err)
		}
		if used {
			return apperror.NewConflict("entry is used by a warehouse").
				WithDetail("reference", column).
				WithDetail("id", e.GetID().String())
		}
		return nil
	}
}
