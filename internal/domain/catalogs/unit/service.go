package unit

import (
	"context"
	"fmt"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
	"depo/internal/core/tx"
	"depo/internal/domain"
	"depo/internal/domain/form"
)

// Service provides business logic for Unit catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Unit]
	repo    Repository
	derive  CodeDeriver
	isPiece PieceDetector
}

// ServiceConfig configures the unit service.
type ServiceConfig struct {
	Repo      Repository
	TxManager tx.Manager
	Auditor   domain.Auditor

	// Derive and IsPiece default to SlugCode and the PIECE sentinel
	Derive  CodeDeriver
	IsPiece PieceDetector
}

// NewService creates a new Unit service.
func NewService(cfg ServiceConfig) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Unit]{
		Repo:       cfg.Repo,
		TxManager:  cfg.TxManager,
		Auditor:    cfg.Auditor,
		EntityName: Kind,
	})

	svc := &Service{
		CatalogService: base,
		repo:           cfg.Repo,
		derive:         cfg.Derive,
		isPiece:        cfg.IsPiece,
	}
	if svc.derive == nil {
		svc.derive = SlugCode
	}
	if svc.isPiece == nil {
		svc.isPiece = SentinelDetector(DefaultPieceSentinel)
	}

	base.Hooks().OnBeforeCreate(svc.prepare)
	base.Hooks().OnBeforeUpdate(svc.prepare)

	return svc
}

// prepare derives a missing code and enforces code uniqueness and the piece rule.
func (s *Service) prepare(ctx context.Context, u *Unit) error {
	if u.Code == "" {
		u.Code = s.derive(u.EnName)
	}
	if s.isPiece(u.Code) && u.HasSymbols() {
		return apperror.NewValidation("piece unit cannot have symbols").
			WithDetail("field", "symbol").
			WithDetail("code", u.Code)
	}
	if u.Code == "" {
		return nil // Validate reports the missing name
	}
	return s.RequireUniqueCode(ctx, u.Code, u.ID)
}

// IsPiece reports whether code identifies the piece unit.
func (s *Service) IsPiece(code string) bool {
	return s.isPiece(code)
}

// NewForm creates an add-mode dialog that submits into this service.
func (s *Service) NewForm() *Form {
	return NewForm(FormConfig{
		Derive:    s.derive,
		IsPiece:   s.isPiece,
		Submitter: form.SubmitFunc[Snapshot](s.SubmitForm),
	})
}

// OpenForm creates a dialog: add mode when entityID is nil, otherwise edit mode
// seeded from the stored unit.
func (s *Service) OpenForm(ctx context.Context, entityID *id.ID) (*Form, error) {
	f := s.NewForm()
	if entityID == nil {
		return f, nil
	}
	u, err := s.GetByID(ctx, *entityID)
	if err != nil {
		return nil, err
	}
	if err := f.Open(form.ModeEdit, u); err != nil {
		return nil, err
	}
	return f, nil
}

// SubmitForm persists a dialog snapshot: create in add mode, update in edit mode.
// In edit mode the snapshot version is used for optimistic locking.
func (s *Service) SubmitForm(ctx context.Context, mode form.Mode, snap Snapshot) (id.ID, error) {
	if !mode.Editing() {
		u := NewUnit(snap.Code, snap.TrName, snap.EnName)
		u.TrSymbol = snap.TrSymbol
		u.EnSymbol = snap.EnSymbol
		if err := s.Create(ctx, u); err != nil {
			return id.Nil(), err
		}
		return u.ID, nil
	}

	u, err := s.GetByID(ctx, snap.ID)
	if err != nil {
		return id.Nil(), err
	}
	if u.Version != snap.Version {
		return id.Nil(), apperror.NewConcurrentModification(Kind, snap.ID.String())
	}

	u.Code = snap.Code
	u.TrName = snap.TrName
	u.EnName = snap.EnName
	u.TrSymbol = snap.TrSymbol
	u.EnSymbol = snap.EnSymbol
	u.Active = snap.Active

	if err := s.Update(ctx, u); err != nil {
		return id.Nil(), fmt.Errorf("submit unit form: %w", err)
	}
	return u.ID, nil
}
