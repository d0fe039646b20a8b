package domain

import (
	"context"
	"fmt"

	"depo/internal/core/apperror"
	"depo/internal/core/entity"
	"depo/internal/core/id"
	"depo/internal/core/tx"
)

// CatalogService provides business logic for catalog entities.
type CatalogService[T entity.Entity] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	auditor   Auditor // optional
	hooks     *HookRegistry[T]

	// entityName for error messages and audit records
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T entity.Entity] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	Auditor    Auditor
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Entity](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	txm := cfg.TxManager
	if txm == nil {
		txm = tx.Nop{}
	}
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  txm,
		auditor:    cfg.Auditor,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the name used in errors and audit records.
func (s *CatalogService[T]) EntityName() string {
	return s.entityName
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *CatalogService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	// Ensure not-found is reported with the service's entity name.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

// Create creates a new catalog entity.
// Before-create hooks run first so generated fields (codes) are in place for validation.
func (s *CatalogService[T]) Create(ctx context.Context, entity T) error {
	if err := runHooks(ctx, s.hooks.beforeCreate, entity); err != nil {
		return err
	}

	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entity); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		if s.auditor != nil {
			if err := s.auditor.RecordCreate(ctx, s.entityName, entity.GetID(), entity); err != nil {
				return fmt.Errorf("audit %s: %w", s.entityName, err)
			}
		}
		return nil
	})
}

// GetByID retrieves entity by ID.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return entity, s.normalizeGetErr(err, entityID.String())
	}
	return entity, nil
}

// GetByCode retrieves entity by code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	entity, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return entity, s.normalizeGetErr(err, code)
	}
	return entity, nil
}

// Update updates an existing entity. The entity's version must match the stored one.
func (s *CatalogService[T]) Update(ctx context.Context, entity T) error {
	if err := runHooks(ctx, s.hooks.beforeUpdate, entity); err != nil {
		return err
	}

	if err := entity.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var before T
		if s.auditor != nil {
			prev, err := s.repo.GetByID(ctx, entity.GetID())
			if err != nil {
				return s.normalizeGetErr(err, entity.GetID().String())
			}
			before = prev
		}

		if err := s.repo.Update(ctx, entity); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}

		if s.auditor != nil {
			if err := s.auditor.RecordUpdate(ctx, s.entityName, entity.GetID(), before, entity); err != nil {
				return fmt.Errorf("audit %s: %w", s.entityName, err)
			}
		}
		return nil
	})
}

// Delete performs soft delete.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	entity, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}

	if err := runHooks(ctx, s.hooks.beforeDelete, entity); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.SetDeletionMark(ctx, entityID, true); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		if s.auditor != nil {
			if err := s.auditor.RecordDelete(ctx, s.entityName, entityID, entity); err != nil {
				return fmt.Errorf("audit %s: %w", s.entityName, err)
			}
		}
		return nil
	})
}

// List retrieves entities with filtering.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if entity exists.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}

// RequireUniqueCode returns a duplicate error when another live entity uses code.
func (s *CatalogService[T]) RequireUniqueCode(ctx context.Context, code string, exceptID id.ID) error {
	exists, err := s.repo.ExistsByCode(ctx, code, exceptID)
	if err != nil {
		return fmt.Errorf("check %s code: %w", s.entityName, err)
	}
	if exists {
		return apperror.NewDuplicate(s.entityName, "code", code)
	}
	return nil
}
