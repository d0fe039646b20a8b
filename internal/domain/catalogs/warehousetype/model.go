// Package warehousetype provides the Warehouse Type catalog and the icon
// classification shown next to each type in the warehouse dialog.
package warehousetype

import (
	"context"

	"depo/internal/core/entity"
)

// WarehouseType is a category of warehouse (raw material, spare parts, ...).
type WarehouseType struct {
	entity.Catalog

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewWarehouseType creates a new WarehouseType.
func NewWarehouseType(code, name string) *WarehouseType {
	return &WarehouseType{
		Catalog: entity.NewCatalog(code),
		Name:    name,
	}
}

// Validate implements entity.Validatable interface.
func (w *WarehouseType) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}
	return entity.RequireText("name", w.Name)
}

// Icon returns the display icon of the type.
func (w *WarehouseType) Icon() Icon {
	return Classify(w.Name, w.Code)
}

// Clone returns an independent copy.
func (w *WarehouseType) Clone() *WarehouseType {
	c := *w
	return &c
}
