package warehousetype

import (
	"context"

	"depo/internal/core/id"
	"depo/internal/core/tx"
	"depo/internal/domain"
)

// Kind is the entity name used in errors and audit records.
const Kind = "warehouse_type"

// Option is one entry of the warehouse type picker.
type Option struct {
	ID   id.ID  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Icon Icon   `json:"icon"`
}

// OptionOf builds the picker entry for wt.
func OptionOf(wt *WarehouseType) Option {
	return Option{ID: wt.ID, Code: wt.Code, Name: wt.Name, Icon: wt.Icon()}
}

// Service provides business logic for WarehouseType catalog.
type Service struct {
	*domain.CatalogService[*WarehouseType]
}

// NewService creates a new WarehouseType service.
func NewService(repo Repository, txManager tx.Manager, auditor domain.Auditor) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*WarehouseType]{
		Repo:       repo,
		TxManager:  txManager,
		Auditor:    auditor,
		EntityName: Kind,
	})
	svc := &Service{CatalogService: base}

	base.Hooks().OnBeforeCreate(svc.checkCode)
	base.Hooks().OnBeforeUpdate(svc.checkCode)

	return svc
}

func (s *Service) checkCode(ctx context.Context, wt *WarehouseType) error {
	if wt.Code == "" {
		return nil
	}
	return s.RequireUniqueCode(ctx, wt.Code, wt.ID)
}

// Options lists live warehouse types with their icons.
func (s *Service) Options(ctx context.Context) ([]Option, error) {
	filter := domain.DefaultListFilter()
	filter.Limit = 0

	res, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := make([]Option, 0, len(res.Items))
	for _, wt := range res.Items {
		opts = append(opts, OptionOf(wt))
	}
	return opts, nil
}
