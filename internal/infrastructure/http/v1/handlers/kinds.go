package handlers

import (
	"context"

	"depo/internal/core/id"
	"depo/internal/domain/catalogs/location"
	"depo/internal/domain/catalogs/unit"
	"depo/internal/domain/catalogs/warehouse"
	"depo/internal/infrastructure/http/v1/dto"
)

// FormOpener opens a dialog of one kind.
type FormOpener[F any] interface {
	OpenForm(ctx context.Context, entityID *id.ID) (F, error)
}

// UnitKind binds the unit dialog.
// enName is applied before the symbols so a piece code clears them first.
func UnitKind(svc FormOpener[*unit.Form]) FormKind[*unit.Form, dto.UnitPatch] {
	return FormKind[*unit.Form, dto.UnitPatch]{
		Open: svc.OpenForm,
		Apply: func(f *unit.Form, p dto.UnitPatch) {
			if p.TrName != nil {
				f.SetTrName(*p.TrName)
			}
			if p.EnName != nil {
				f.SetEnName(*p.EnName)
			}
			if p.TrSymbol != nil {
				f.SetTrSymbol(*p.TrSymbol)
			}
			if p.EnSymbol != nil {
				f.SetEnSymbol(*p.EnSymbol)
			}
			if p.Active != nil {
				f.SetActive(*p.Active)
			}
		},
		View: func(f *unit.Form) any { return f.View() },
	}
}

// WarehouseKind binds the warehouse dialog.
func WarehouseKind(svc FormOpener[*warehouse.Form]) FormKind[*warehouse.Form, dto.WarehousePatch] {
	return FormKind[*warehouse.Form, dto.WarehousePatch]{
		Open: svc.OpenForm,
		Apply: func(f *warehouse.Form, p dto.WarehousePatch) {
			if p.Name != nil {
				f.SetName(*p.Name)
			}
			if p.WarehouseTypeID.Set {
				f.SetWarehouseType(p.WarehouseTypeID.Value)
			}
			if p.LocationID.Set {
				f.SetLocation(p.LocationID.Value)
			}
		},
		View: func(f *warehouse.Form) any { return f.View() },
	}
}

// LocationKind binds the location dialog.
func LocationKind(svc FormOpener[*location.Form]) FormKind[*location.Form, dto.LocationPatch] {
	return FormKind[*location.Form, dto.LocationPatch]{
		Open: svc.OpenForm,
		Apply: func(f *location.Form, p dto.LocationPatch) {
			if p.Name != nil {
				f.SetName(*p.Name)
			}
		},
		View: func(f *location.Form) any { return f.View() },
	}
}
