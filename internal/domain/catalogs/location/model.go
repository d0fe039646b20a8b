// Package location provides the organization Location catalog and its setup dialog.
package location

import (
	"context"

	"depo/internal/core/entity"
)

// Location is a site of the organization (plant, office, yard) that warehouses belong to.
type Location struct {
	entity.Catalog

	// Name is the display name
	Name string `db:"name" json:"name"`
}

// NewLocation creates a new Location. An empty code is numbered on create.
func NewLocation(code, name string) *Location {
	return &Location{
		Catalog: entity.NewCatalog(code),
		Name:    name,
	}
}

// Validate implements entity.Validatable interface.
func (l *Location) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}
	return entity.RequireText("name", l.Name)
}

// Clone returns an independent copy.
func (l *Location) Clone() *Location {
	c := *l
	return &c
}
