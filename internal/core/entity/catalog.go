package entity

import (
	"context"
	"strings"

	"depo/internal/core/apperror"
)

// Catalog is the base type for setup reference data
// (locations, units, warehouse types, warehouses).
type Catalog struct {
	BaseEntity

	// Code is a human-readable identifier, unique among live rows
	Code string `db:"code" json:"code"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(code string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Code:       code,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Code) == "" {
		return apperror.NewValidation("code is required").
			WithDetail("field", "code")
	}
	return nil
}

// RequireText returns a validation error naming field when value is blank.
func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.NewValidation(field + " is required").
			WithDetail("field", field)
	}
	return nil
}

// GetCode returns the catalog code.
func (c *Catalog) GetCode() string {
	return c.Code
}
