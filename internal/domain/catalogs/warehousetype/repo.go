package warehousetype

import (
	"depo/internal/domain"
)

// Repository defines the interface for WarehouseType persistence.
type Repository interface {
	domain.CatalogRepository[*WarehouseType]
}
