// Package domaintest provides in-memory repositories for service and handler tests.
package domaintest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"depo/internal/core/apperror"
	"depo/internal/core/entity"
	"depo/internal/core/id"
	"depo/internal/domain"
)

// Record is the constraint for entities stored in MemRepo.
type Record interface {
	entity.Entity
	GetCode() string
	SetVersion(v int)
}

// MemRepo is a map-backed domain.CatalogRepository with optimistic locking.
// Stored values are cloned on the way in and out.
type MemRepo[T Record] struct {
	mu      sync.Mutex
	name    string
	items   map[id.ID]T
	deleted map[id.ID]bool
	clone   func(T) T

	// Err, when set, is returned by every write.
	Err error
}

// NewMemRepo creates an empty repository. clone must return an independent copy.
func NewMemRepo[T Record](name string, clone func(T) T) *MemRepo[T] {
	return &MemRepo[T]{
		name:    name,
		items:   make(map[id.ID]T),
		deleted: make(map[id.ID]bool),
		clone:   clone,
	}
}

// Seed stores entities as-is, bypassing version checks.
func (r *MemRepo[T]) Seed(items ...T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.GetID()] = r.clone(it)
	}
}

// Len returns the number of stored entities, deleted ones included.
func (r *MemRepo[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Deleted reports whether the entity carries the deletion mark.
func (r *MemRepo[T]) Deleted(entityID id.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleted[entityID]
}

func (r *MemRepo[T]) Create(ctx context.Context, e T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[e.GetID()]; ok {
		return apperror.NewDuplicate(r.name, "id", e.GetID().String())
	}
	r.items[e.GetID()] = r.clone(e)
	return nil
}

func (r *MemRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[entityID]
	if !ok {
		var zero T
		return zero, apperror.NewNotFound(r.name, entityID.String())
	}
	return r.clone(it), nil
}

func (r *MemRepo[T]) GetByCode(ctx context.Context, code string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for entityID, it := range r.items {
		if !r.deleted[entityID] && it.GetCode() == code {
			return r.clone(it), nil
		}
	}
	var zero T
	return zero, apperror.NewNotFound(r.name, code)
}

func (r *MemRepo[T]) Update(ctx context.Context, e T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cur, ok := r.items[e.GetID()]
	if !ok {
		return apperror.NewNotFound(r.name, e.GetID().String())
	}
	if cur.GetVersion() != e.GetVersion() {
		return apperror.NewConcurrentModification(r.name, e.GetID().String())
	}
	e.SetVersion(e.GetVersion() + 1)
	r.items[e.GetID()] = r.clone(e)
	return nil
}

func (r *MemRepo[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[entityID]; !ok {
		return apperror.NewNotFound(r.name, entityID.String())
	}
	r.deleted[entityID] = marked
	return nil
}

func (r *MemRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]T, 0, len(r.items))
	for entityID, it := range r.items {
		if r.deleted[entityID] && !filter.IncludeDeleted {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(it.GetCode()), strings.ToLower(filter.Search)) {
			continue
		}
		items = append(items, r.clone(it))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].GetCode() < items[j].GetCode() })

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			items = items[:0]
		} else {
			items = items[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}

	return domain.ListResult[T]{
		Items:      items,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

func (r *MemRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[entityID]
	return ok && !r.deleted[entityID], nil
}

func (r *MemRepo[T]) ExistsByCode(ctx context.Context, code string, exceptID id.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for entityID, it := range r.items {
		if entityID != exceptID && !r.deleted[entityID] && it.GetCode() == code {
			return true, nil
		}
	}
	return false, nil
}
