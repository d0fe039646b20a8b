package dto

import (
	"depo/internal/core/id"
)

// OpenSessionRequest opens a dialog; EntityID selects edit mode.
type OpenSessionRequest struct {
	EntityID *id.ID `json:"entityId"`
}

// SessionResponse carries the session id and the current view.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Kind      string `json:"kind"`
	View      any    `json:"view"`
}

// UnitPatch holds the unit dialog edits. Absent fields are left alone.
type UnitPatch struct {
	TrName   *string `json:"trName"`
	EnName   *string `json:"enName"`
	TrSymbol *string `json:"trSymbol"`
	EnSymbol *string `json:"enSymbol"`
	Active   *bool   `json:"active"`
}

// WarehousePatch holds the warehouse dialog edits.
// Selections accept null to clear.
type WarehousePatch struct {
	Name            *string    `json:"name"`
	WarehouseTypeID OptionalID `json:"warehouseTypeId"`
	LocationID      OptionalID `json:"locationId"`
}

// LocationPatch holds the location dialog edits.
type LocationPatch struct {
	Name *string `json:"name"`
}
