// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"depo/internal/core/entity"
	"depo/internal/core/id"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs case-insensitive matching on searchable fields
	Search string

	// IDs filters by specific IDs
	IDs []id.ID

	// IncludeDeleted includes soft-deleted records
	IncludeDeleted bool

	// ActiveOnly hides inactive records (units, warehouses)
	ActiveOnly bool

	// OrderBy specifies sorting (e.g., "code", "-code")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "code",
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interfaces ---

// CatalogRepository defines CRUD operations for catalog entities.
type CatalogRepository[T entity.Entity] interface {
	// Create inserts a new entity
	Create(ctx context.Context, entity T) error

	// GetByID retrieves entity by ID
	GetByID(ctx context.Context, id id.ID) (T, error)

	// GetByCode retrieves a live entity by code
	GetByCode(ctx context.Context, code string) (T, error)

	// Update modifies existing entity (with optimistic locking)
	Update(ctx context.Context, entity T) error

	// SetDeletionMark sets or clears the soft-delete mark
	SetDeletionMark(ctx context.Context, id id.ID, marked bool) error

	// List retrieves entities with filtering and pagination
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Exists checks if entity with given ID exists
	Exists(ctx context.Context, id id.ID) (bool, error)

	// ExistsByCode checks if a live entity other than exceptID uses code
	ExistsByCode(ctx context.Context, code string, exceptID id.ID) (bool, error)
}

// Auditor records entity changes. Implemented by the postgres audit service.
type Auditor interface {
	RecordCreate(ctx context.Context, entityType string, entityID id.ID, after any) error
	RecordUpdate(ctx context.Context, entityType string, entityID id.ID, before, after any) error
	RecordDelete(ctx context.Context, entityType string, entityID id.ID, before any) error
}

// --- Hooks ---

// Hook runs inside a catalog write before the entity is validated or stored.
// A non-nil error aborts the write.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores the before-write hooks of one catalog.
type HookRegistry[T any] struct {
	beforeCreate []Hook[T]
	beforeUpdate []Hook[T]
	beforeDelete []Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{}
}

// OnBeforeCreate registers a hook that may fill generated fields such as codes.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) {
	r.beforeCreate = append(r.beforeCreate, hook)
}

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) {
	r.beforeUpdate = append(r.beforeUpdate, hook)
}

// OnBeforeDelete registers a hook that can veto a soft delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) {
	r.beforeDelete = append(r.beforeDelete, hook)
}

func runHooks[T any](ctx context.Context, hooks []Hook[T], entity T) error {
	for _, hook := range hooks {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}
