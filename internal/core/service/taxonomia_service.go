package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// TaxonomiaService manages the classification tables events hang from.
type TaxonomiaService struct {
	subsecretarias ports.SubsecretariaRepository
	tipos          ports.TipoRepository
	subtipos       ports.SubtipoRepository
	eventos        ports.EventoRepository
	audit          auditor
	logger         zerolog.Logger
	now            func() time.Time
}

func NewTaxonomiaService(
	subsecretarias ports.SubsecretariaRepository,
	tipos ports.TipoRepository,
	subtipos ports.SubtipoRepository,
	eventos ports.EventoRepository,
	rec ports.AuditRecorder,
	logger zerolog.Logger,
) *TaxonomiaService {
	return &TaxonomiaService{
		subsecretarias: subsecretarias,
		tipos:          tipos,
		subtipos:       subtipos,
		eventos:        eventos,
		audit:          newAuditor(rec),
		logger:         logger,
		now:            time.Now,
	}
}

// --- Subsecretarías ---

func (s *TaxonomiaService) ListSubsecretarias(ctx context.Context) ([]domain.Subsecretaria, error) {
	return s.subsecretarias.List(ctx)
}

func (s *TaxonomiaService) GetSubsecretaria(ctx context.Context, id int64) (*domain.Subsecretaria, error) {
	return s.subsecretarias.FindByID(ctx, id)
}

func (s *TaxonomiaService) CreateSubsecretaria(ctx context.Context, actor domain.Identity, in ports.TaxonomiaInput) (*domain.Subsecretaria, error) {
	sub := &domain.Subsecretaria{
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: strings.TrimSpace(in.Descripcion),
		Activo:      true,
	}
	id, err := s.subsecretarias.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadSubsecretaria, id, domain.AccionCrear, nil)
	s.logger.Info().Int64("subsecretaria_id", id).Str("nombre", sub.Nombre).Msg("subsecretaria created")
	return s.subsecretarias.FindByID(ctx, id)
}

func (s *TaxonomiaService) UpdateSubsecretaria(ctx context.Context, actor domain.Identity, id int64, in ports.TaxonomiaInput) (*domain.Subsecretaria, error) {
	prev, err := s.subsecretarias.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sub := &domain.Subsecretaria{
		ID:          id,
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: strings.TrimSpace(in.Descripcion),
		Activo:      prev.Activo,
	}
	if err := s.subsecretarias.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadSubsecretaria, id, domain.AccionActualizar, prev)
	return s.subsecretarias.FindByID(ctx, id)
}

func (s *TaxonomiaService) DeleteSubsecretaria(ctx context.Context, actor domain.Identity, id int64) error {
	prev, err := s.subsecretarias.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.subsecretarias.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(actor, domain.EntidadSubsecretaria, id, domain.AccionEliminar, prev)
	return nil
}

func (s *TaxonomiaService) ToggleSubsecretaria(ctx context.Context, actor domain.Identity, id int64) (*domain.Subsecretaria, error) {
	if err := s.subsecretarias.ToggleActivo(ctx, id); err != nil {
		return nil, err
	}
	sub, err := s.subsecretarias.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadSubsecretaria, id, domain.AccionToggle, nil)
	return sub, nil
}

func (s *TaxonomiaService) SubsecretariaEventos(ctx context.Context, id int64) ([]domain.Evento, error) {
	if _, err := s.subsecretarias.FindByID(ctx, id); err != nil {
		return nil, err
	}
	eventos, err := s.eventos.List(ctx, domain.EventoFilter{SubsecretariaID: &id})
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range eventos {
		eventos[i].Vencido = eventos[i].Expired(now)
	}
	return eventos, nil
}

// --- Tipos ---

func (s *TaxonomiaService) ListTipos(ctx context.Context) ([]domain.Tipo, error) {
	return s.tipos.List(ctx)
}

func (s *TaxonomiaService) GetTipo(ctx context.Context, id int64) (*domain.Tipo, error) {
	return s.tipos.FindByID(ctx, id)
}

func (s *TaxonomiaService) CreateTipo(ctx context.Context, actor domain.Identity, in ports.TaxonomiaInput) (*domain.Tipo, error) {
	t := &domain.Tipo{
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: strings.TrimSpace(in.Descripcion),
	}
	id, err := s.tipos.Create(ctx, t)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadTipo, id, domain.AccionCrear, nil)
	return s.tipos.FindByID(ctx, id)
}

func (s *TaxonomiaService) UpdateTipo(ctx context.Context, actor domain.Identity, id int64, in ports.TaxonomiaInput) (*domain.Tipo, error) {
	prev, err := s.tipos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t := &domain.Tipo{
		ID:          id,
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: strings.TrimSpace(in.Descripcion),
	}
	if err := s.tipos.Update(ctx, t); err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadTipo, id, domain.AccionActualizar, prev)
	return s.tipos.FindByID(ctx, id)
}

// DeleteTipo removes the tipo together with its subtipos.
func (s *TaxonomiaService) DeleteTipo(ctx context.Context, actor domain.Identity, id int64) error {
	prev, err := s.tipos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tipos.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(actor, domain.EntidadTipo, id, domain.AccionEliminar, prev)
	s.logger.Info().Int64("tipo_id", id).Msg("tipo deleted with its subtipos")
	return nil
}

func (s *TaxonomiaService) TipoSubtipos(ctx context.Context, id int64) ([]domain.Subtipo, error) {
	if _, err := s.tipos.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.subtipos.List(ctx, id)
}

// --- Subtipos ---

func (s *TaxonomiaService) ListSubtipos(ctx context.Context, tipoID int64) ([]domain.Subtipo, error) {
	return s.subtipos.List(ctx, tipoID)
}

func (s *TaxonomiaService) GetSubtipo(ctx context.Context, id int64) (*domain.Subtipo, error) {
	return s.subtipos.FindByID(ctx, id)
}

func (s *TaxonomiaService) CreateSubtipo(ctx context.Context, actor domain.Identity, in ports.SubtipoInput) (*domain.Subtipo, error) {
	if err := s.checkTipo(ctx, in.TipoID); err != nil {
		return nil, err
	}
	st := &domain.Subtipo{
		TipoID:      in.TipoID,
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: strings.TrimSpace(in.Descripcion),
	}
	id, err := s.subtipos.Create(ctx, st)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadSubtipo, id, domain.AccionCrear, nil)
	return s.subtipos.FindByID(ctx, id)
}

func (s *TaxonomiaService) UpdateSubtipo(ctx context.Context, actor domain.Identity, id int64, in ports.SubtipoInput) (*domain.Subtipo, error) {
	prev, err := s.subtipos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTipo(ctx, in.TipoID); err != nil {
		return nil, err
	}
	st := &domain.Subtipo{
		ID:          id,
		TipoID:      in.TipoID,
		Nombre:      strings.TrimSpace(in.Nombre),
		Descripcion: strings.TrimSpace(in.Descripcion),
	}
	if err := s.subtipos.Update(ctx, st); err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadSubtipo, id, domain.AccionActualizar, prev)
	return s.subtipos.FindByID(ctx, id)
}

func (s *TaxonomiaService) DeleteSubtipo(ctx context.Context, actor domain.Identity, id int64) error {
	prev, err := s.subtipos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.subtipos.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(actor, domain.EntidadSubtipo, id, domain.AccionEliminar, prev)
	return nil
}

// checkTipo maps a missing parent tipo to an invalid reference.
func (s *TaxonomiaService) checkTipo(ctx context.Context, tipoID int64) error {
	if _, err := s.tipos.FindByID(ctx, tipoID); err != nil {
		if errors.Is(err, domain.ErrTipoNotFound) {
			return domain.ErrInvalidReference
		}
		return err
	}
	return nil
}
