// Package unit provides the Unit catalog and its setup dialog.
// Units carry Turkish and English names and symbols; the code is derived from the
// English name. The "piece" unit never has symbols.
package unit

import (
	"context"
	"strings"

	"depo/internal/core/entity"
)

// Unit represents a measurement unit.
type Unit struct {
	entity.Catalog

	// TrName and EnName are the display names in Turkish and English
	TrName string `db:"tr_name" json:"trName"`
	EnName string `db:"en_name" json:"enName"`

	// TrSymbol and EnSymbol are short symbols (e.g., "kg", "m"); empty for the piece unit
	TrSymbol string `db:"tr_symbol" json:"trSymbol"`
	EnSymbol string `db:"en_symbol" json:"enSymbol"`

	// Active is false for units withdrawn from use
	Active bool `db:"active" json:"active"`
}

// NewUnit creates a new active Unit.
func NewUnit(code, trName, enName string) *Unit {
	return &Unit{
		Catalog: entity.NewCatalog(code),
		TrName:  trName,
		EnName:  enName,
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
// The piece-unit symbol rule depends on the configured detector and is checked by Service.
func (u *Unit) Validate(ctx context.Context) error {
	if err := u.Catalog.Validate(ctx); err != nil {
		return err
	}
	if err := entity.RequireText("trName", u.TrName); err != nil {
		return err
	}
	return entity.RequireText("enName", u.EnName)
}

// HasSymbols reports whether either symbol is set.
func (u *Unit) HasSymbols() bool {
	return strings.TrimSpace(u.TrSymbol) != "" || strings.TrimSpace(u.EnSymbol) != ""
}

// Clone returns an independent copy.
func (u *Unit) Clone() *Unit {
	c := *u
	return &c
}
