package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

type VecinoService struct {
	repo   ports.VecinoRepository
	audit  auditor
	logger zerolog.Logger
	now    func() time.Time
}

func NewVecinoService(repo ports.VecinoRepository, rec ports.AuditRecorder, logger zerolog.Logger) *VecinoService {
	return &VecinoService{repo: repo, audit: newAuditor(rec), logger: logger, now: time.Now}
}

func (s *VecinoService) List(ctx context.Context, activo *bool) ([]domain.Vecino, error) {
	return s.repo.List(ctx, activo)
}

func (s *VecinoService) Get(ctx context.Context, id int64) (*domain.Vecino, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *VecinoService) GetByDocumento(ctx context.Context, documento string) (*domain.Vecino, error) {
	return s.repo.FindByDocumento(ctx, strings.TrimSpace(documento))
}

func (s *VecinoService) Search(ctx context.Context, q string) ([]domain.Vecino, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domain.ErrEmptySearch
	}
	return s.repo.Search(ctx, q)
}

func (s *VecinoService) Create(ctx context.Context, actor domain.Identity, in ports.VecinoInput) (*domain.Vecino, error) {
	v := vecinoFromInput(in)
	v.Activo = true

	id, err := s.repo.Create(ctx, v)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadVecino, id, domain.AccionCrear, nil)
	s.logger.Info().Int64("vecino_id", id).Str("documento", v.Documento).Msg("vecino created")

	return s.repo.FindByID(ctx, id)
}

func (s *VecinoService) Update(ctx context.Context, actor domain.Identity, id int64, in ports.VecinoInput) (*domain.Vecino, error) {
	v := vecinoFromInput(in)
	v.ID = id

	prev, err := s.repo.Update(ctx, v)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadVecino, id, domain.AccionActualizar, prev)
	return s.repo.FindByID(ctx, id)
}

func (s *VecinoService) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	prev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(actor, domain.EntidadVecino, id, domain.AccionEliminar, prev)
	s.logger.Info().Int64("vecino_id", id).Msg("vecino deleted")
	return nil
}

func (s *VecinoService) ToggleActivo(ctx context.Context, actor domain.Identity, id int64) (*domain.Vecino, error) {
	if err := s.repo.ToggleActivo(ctx, id); err != nil {
		return nil, err
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadVecino, id, domain.AccionToggle, nil)
	return v, nil
}

func (s *VecinoService) Eventos(ctx context.Context, id int64) ([]domain.EventoRegistrado, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	eventos, err := s.repo.ListEventos(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range eventos {
		eventos[i].Vencido = eventos[i].Expired(now)
	}
	return eventos, nil
}

func vecinoFromInput(in ports.VecinoInput) *domain.Vecino {
	v := &domain.Vecino{
		Nombre:    strings.TrimSpace(in.Nombre),
		Apellido:  strings.TrimSpace(in.Apellido),
		Documento: strings.TrimSpace(in.Documento),
		Email:     strings.TrimSpace(in.Email),
		Telefono:  strings.TrimSpace(in.Telefono),
		Direccion: strings.TrimSpace(in.Direccion),
		Barrio:    strings.TrimSpace(in.Barrio),
	}
	if in.FechaNacimiento != nil && strings.TrimSpace(*in.FechaNacimiento) != "" {
		f := strings.TrimSpace(*in.FechaNacimiento)
		v.FechaNacimiento = &f
	}
	return v
}
