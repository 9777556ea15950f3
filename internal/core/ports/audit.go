package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// AuditRecorder accepts audit entries without blocking the caller.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditRepository persists and reads back audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error)
}

// DashboardRepository computes the landing-page aggregates.
type DashboardRepository interface {
	Resumen(ctx context.Context) (*domain.Resumen, error)
}

type DashboardService interface {
	Resumen(ctx context.Context) (*domain.Resumen, error)
}

type AuditService interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, error)
}
