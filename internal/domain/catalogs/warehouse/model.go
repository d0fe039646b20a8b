// Package warehouse provides the Warehouse catalog and its setup dialog.
// A warehouse belongs to one organization location and has one warehouse type.
package warehouse

import (
	"context"

	"depo/internal/core/apperror"
	"depo/internal/core/entity"
	"depo/internal/core/id"
)

// Warehouse represents a storage location for goods.
type Warehouse struct {
	entity.Catalog

	// Name is the display name
	Name string `db:"name" json:"name"`

	// WarehouseTypeID references cat_warehouse_types
	WarehouseTypeID id.ID `db:"warehouse_type_id" json:"warehouseTypeId"`

	// LocationID references cat_locations
	LocationID id.ID `db:"location_id" json:"locationId"`

	// Active indicates if warehouse is operational
	Active bool `db:"active" json:"active"`
}

// NewWarehouse creates a new active Warehouse. An empty code is numbered on create.
func NewWarehouse(code, name string, typeID, locationID id.ID) *Warehouse {
	return &Warehouse{
		Catalog:         entity.NewCatalog(code),
		Name:            name,
		WarehouseTypeID: typeID,
		LocationID:      locationID,
		Active:          true,
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}
	if err := entity.RequireText("name", w.Name); err != nil {
		return err
	}
	if id.IsNil(w.WarehouseTypeID) {
		return apperror.NewValidation("warehouse type is required").
			WithDetail("field", "warehouseTypeId")
	}
	if id.IsNil(w.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}
	return nil
}

// Clone returns an independent copy.
func (w *Warehouse) Clone() *Warehouse {
	c := *w
	return &c
}
