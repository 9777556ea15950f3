package ports

import (
	"context"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

type SubsecretariaRepository interface {
	List(ctx context.Context) ([]domain.Subsecretaria, error)
	FindByID(ctx context.Context, id int64) (*domain.Subsecretaria, error)
	Create(ctx context.Context, s *domain.Subsecretaria) (int64, error)
	Update(ctx context.Context, s *domain.Subsecretaria) error
	Delete(ctx context.Context, id int64) error
	ToggleActivo(ctx context.Context, id int64) error
}

type TipoRepository interface {
	List(ctx context.Context) ([]domain.Tipo, error)
	FindByID(ctx context.Context, id int64) (*domain.Tipo, error)
	Create(ctx context.Context, t *domain.Tipo) (int64, error)
	Update(ctx context.Context, t *domain.Tipo) error
	// Delete removes the tipo; its subtipos go with it (ON DELETE CASCADE).
	Delete(ctx context.Context, id int64) error
}

type SubtipoRepository interface {
	// List returns every subtipo, or only those of tipoID when it is non-zero.
	List(ctx context.Context, tipoID int64) ([]domain.Subtipo, error)
	FindByID(ctx context.Context, id int64) (*domain.Subtipo, error)
	Create(ctx context.Context, s *domain.Subtipo) (int64, error)
	Update(ctx context.Context, s *domain.Subtipo) error
	Delete(ctx context.Context, id int64) error
}

// TaxonomiaInput carries the fields shared by subsecretarías and tipos.
type TaxonomiaInput struct {
	Nombre      string
	Descripcion string
}

type SubtipoInput struct {
	TipoID      int64
	Nombre      string
	Descripcion string
}

// TaxonomiaService manages subsecretarías, tipos and subtipos.
type TaxonomiaService interface {
	ListSubsecretarias(ctx context.Context) ([]domain.Subsecretaria, error)
	GetSubsecretaria(ctx context.Context, id int64) (*domain.Subsecretaria, error)
	CreateSubsecretaria(ctx context.Context, actor domain.Identity, in TaxonomiaInput) (*domain.Subsecretaria, error)
	UpdateSubsecretaria(ctx context.Context, actor domain.Identity, id int64, in TaxonomiaInput) (*domain.Subsecretaria, error)
	DeleteSubsecretaria(ctx context.Context, actor domain.Identity, id int64) error
	ToggleSubsecretaria(ctx context.Context, actor domain.Identity, id int64) (*domain.Subsecretaria, error)
	SubsecretariaEventos(ctx context.Context, id int64) ([]domain.Evento, error)

	ListTipos(ctx context.Context) ([]domain.Tipo, error)
	GetTipo(ctx context.Context, id int64) (*domain.Tipo, error)
	CreateTipo(ctx context.Context, actor domain.Identity, in TaxonomiaInput) (*domain.Tipo, error)
	UpdateTipo(ctx context.Context, actor domain.Identity, id int64, in TaxonomiaInput) (*domain.Tipo, error)
	DeleteTipo(ctx context.Context, actor domain.Identity, id int64) error
	TipoSubtipos(ctx context.Context, id int64) ([]domain.Subtipo, error)

	ListSubtipos(ctx context.Context, tipoID int64) ([]domain.Subtipo, error)
	GetSubtipo(ctx context.Context, id int64) (*domain.Subtipo, error)
	CreateSubtipo(ctx context.Context, actor domain.Identity, in SubtipoInput) (*domain.Subtipo, error)
	UpdateSubtipo(ctx context.Context, actor domain.Identity, id int64, in SubtipoInput) (*domain.Subtipo, error)
	DeleteSubtipo(ctx context.Context, actor domain.Identity, id int64) error
}
