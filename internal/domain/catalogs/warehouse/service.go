package warehouse

import (
	"context"
	"fmt"
	"time"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
	"depo/internal/core/numerator"
	"depo/internal/core/tx"
	"depo/internal/domain"
	"depo/internal/domain/form"
)

// CodePrefix is the numerator prefix of warehouse codes.
const CodePrefix = "WH"

// Exister reports whether a referenced catalog entry exists.
type Exister interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// ServiceConfig configures the warehouse service.
type ServiceConfig struct {
	Repo      Repository
	TxManager tx.Manager
	Auditor   domain.Auditor
	Numerator numerator.Generator

	// Types and Locations resolve the dialog's two selections
	Types     Exister
	Locations Exister
}

// Service provides business logic for Warehouse catalog.
type Service struct {
	*domain.CatalogService[*Warehouse]
	numerator numerator.Generator
	types     Exister
	locations Exister
}

// NewService creates a new Warehouse service.
func NewService(cfg ServiceConfig) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       cfg.Repo,
		TxManager:  cfg.TxManager,
		Auditor:    cfg.Auditor,
		EntityName: Kind,
	})
	svc := &Service{
		CatalogService: base,
		numerator:      cfg.Numerator,
		types:          cfg.Types,
		locations:      cfg.Locations,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkReferences)

	return svc
}

// prepareForCreate numbers warehouses created without a code and checks references.
func (s *Service) prepareForCreate(ctx context.Context, w *Warehouse) error {
	if err := s.checkReferences(ctx, w); err != nil {
		return err
	}
	if w.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig(CodePrefix), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		w.Code = code
	}
	return s.RequireUniqueCode(ctx, w.Code, w.ID)
}

// checkReferences verifies that the selected type and location exist.
func (s *Service) checkReferences(ctx context.Context, w *Warehouse) error {
	if err := requireExisting(ctx, s.types, "warehouse_type", w.WarehouseTypeID); err != nil {
		return err
	}
	return requireExisting(ctx, s.locations, "location", w.LocationID)
}

func requireExisting(ctx context.Context, ex Exister, entity string, ref id.ID) error {
	if ex == nil || id.IsNil(ref) {
		return nil
	}
	ok, err := ex.Exists(ctx, ref)
	if err != nil {
		return fmt.Errorf("check %s: %w", entity, err)
	}
	if !ok {
		return apperror.NewNotFound(entity, ref.String())
	}
	return nil
}

// OpenForm creates a dialog: add mode when entityID is nil, otherwise edit mode.
func (s *Service) OpenForm(ctx context.Context, entityID *id.ID) (*Form, error) {
	f := NewForm(form.SubmitFunc[Snapshot](s.SubmitForm))
	if entityID == nil {
		return f, nil
	}
	w, err := s.GetByID(ctx, *entityID)
	if err != nil {
		return nil, err
	}
	if err := f.Open(form.ModeEdit, w); err != nil {
		return nil, err
	}
	return f, nil
}

// SubmitForm persists a dialog snapshot.
func (s *Service) SubmitForm(ctx context.Context, mode form.Mode, snap Snapshot) (id.ID, error) {
	if !mode.Editing() {
		w := NewWarehouse("", snap.Name, snap.WarehouseTypeID, snap.LocationID)
		if err := s.Create(ctx, w); err != nil {
			return id.Nil(), err
		}
		return w.ID, nil
	}

	w, err := s.GetByID(ctx, snap.ID)
	if err != nil {
		return id.Nil(), err
	}
	if w.Version != snap.Version {
		return id.Nil(), apperror.NewConcurrentModification(Kind, snap.ID.String())
	}
	w.Name = snap.Name
	w.WarehouseTypeID = snap.WarehouseTypeID
	w.LocationID = snap.LocationID
	if err := s.Update(ctx, w); err != nil {
		return id.Nil(), fmt.Errorf("submit warehouse form: %w", err)
	}
	return w.ID, nil
}
