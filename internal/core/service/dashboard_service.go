package service

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

type DashboardService struct {
	repo ports.DashboardRepository
}

func NewDashboardService(repo ports.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) Resumen(ctx context.Context) (*domain.Resumen, error) {
	r, err := s.repo.Resumen(ctx)
	if err != nil {
		return nil, err
	}
	if r.EventosDestacados == nil {
		r.EventosDestacados = []domain.EventoConConteo{}
	}
	return r, nil
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditService reads back the audit trail. A nil repository means auditing
// is disabled and every query is empty.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error) {
	if s.repo == nil {
		return []domain.AuditEntry{}, nil
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultAuditLimit
	case filter.Limit > maxAuditLimit:
		filter.Limit = maxAuditLimit
	}
	return s.repo.List(ctx, filter)
}
