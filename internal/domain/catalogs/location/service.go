package location

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

// CodePrefix is the numerator prefix of location codes.
const CodePrefix = "LOC"

// Service provides business logic for Location catalog.
type Service struct {
	*domain.CatalogService[*Location]
	numerator numerator.Generator
}

// NewService creates a new Location service.
func NewService(repo Repository, txManager tx.Manager, auditor domain.Auditor, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Location]{
		Repo:       repo,
		TxManager:  txManager,
		Auditor:    auditor,
		EntityName: Kind,
	})
	svc := &Service{CatalogService: base, numerator: gen}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate numbers locations created without a code.
func (s *Service) prepareForCreate(ctx context.Context, l *Location) error {
	if l.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig(CodePrefix), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		l.Code = code
	}
	return s.RequireUniqueCode(ctx, l.Code, l.ID)
}

func (s *Service) prepareForUpdate(ctx context.Context, l *Location) error {
	if l.Code == "" {
		return nil
	}
	return s.RequireUniqueCode(ctx, l.Code, l.ID)
}

// OpenForm creates a dialog: add mode when entityID is nil, otherwise edit mode.
func (s *Service) OpenForm(ctx context.Context, entityID *id.ID) (*Form, error) {
	f := NewForm(form.SubmitFunc[Snapshot](s.SubmitForm))
	if entityID == nil {
		return f, nil
	}
	l, err := s.GetByID(ctx, *entityID)
	if err != nil {
		return nil, err
	}
	if err := f.Open(form.ModeEdit, l); err != nil {
		return nil, err
	}
	return f, nil
}

// SubmitForm persists a dialog snapshot.
func (s *Service) SubmitForm(ctx context.Context, mode form.Mode, snap Snapshot) (id.ID, error) {
	if !mode.Editing() {
		l := NewLocation("", snap.Name)
		if err := s.Create(ctx, l); err != nil {
			return id.Nil(), err
		}
		return l.ID, nil
	}

	l, err := s.GetByID(ctx, snap.ID)
	if err != nil {
		return id.Nil(), err
	}
	if l.Version != snap.Version {
		return id.Nil(), apperror.NewConcurrentModification(Kind, snap.ID.String())
	}
	l.Name = snap.Name
	if err := s.Update(ctx, l); err != nil {
		return id.Nil(), fmt.Errorf("submit location form: %w", err)
	}
	return l.ID, nil
}
