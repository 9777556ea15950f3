package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// NopGuard performs no locking: check and insert race freely.
type NopGuard struct{}

func (NopGuard) Lock(context.Context, int64, int64) (func(), error) { return func() {}, nil }

type RegistroService struct {
	repo    ports.RegistroRepository
	vecinos ports.VecinoRepository
	eventos ports.EventoRepository
	guard   ports.RegistrationGuard
	audit   auditor
	log     zerolog.Logger
	now     func() time.Time
}

// NewRegistroService returns a RegistroService. A nil guard means NopGuard.
func NewRegistroService(
	repo ports.RegistroRepository,
	vecinos ports.VecinoRepository,
	eventos ports.EventoRepository,
	guard ports.RegistrationGuard,
	rec ports.AuditRecorder,
	log zerolog.Logger,
) *RegistroService {
	if guard == nil {
		guard = NopGuard{}
	}
	return &RegistroService{
		repo:    repo,
		vecinos: vecinos,
		eventos: eventos,
		guard:   guard,
		audit:   newAuditor(rec),
		log:     log,
		now:     time.Now,
	}
}

func (s *RegistroService) List(ctx context.Context, filter domain.RegistroFilter) ([]domain.RegistroDetalle, error) {
	return s.repo.List(ctx, filter)
}

func (s *RegistroService) Get(ctx context.Context, id int64) (*domain.RegistroDetalle, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a vecino in an evento, rejecting a second registration
// for the same pair with domain.ErrAlreadyRegistered.
func (s *RegistroService) Create(ctx context.Context, actor domain.Identity, in ports.RegistroInput) (*domain.RegistroDetalle, error) {
	if _, err := s.vecinos.FindByID(ctx, in.VecinoID); err != nil {
		return nil, err
	}
	return s.register(ctx, actor, in.VecinoID, in.EventoID, in.Observaciones)
}

// RegisterByDocumento resolves the vecino by documento and then behaves like
// Create. An unknown documento yields domain.ErrResidentNotFound.
func (s *RegistroService) RegisterByDocumento(ctx context.Context, actor domain.Identity, in ports.RegistroDocumentoInput) (*domain.RegistroDetalle, error) {
	v, err := s.vecinos.FindByDocumento(ctx, strings.TrimSpace(in.Documento))
	if err != nil {
		return nil, err
	}
	return s.register(ctx, actor, v.ID, in.EventoID, in.Observaciones)
}

func (s *RegistroService) register(ctx context.Context, actor domain.Identity, vecinoID, eventoID int64, obs string) (*domain.RegistroDetalle, error) {
	if _, err := s.eventos.FindByID(ctx, eventoID); err != nil {
		return nil, err
	}

	unlock, err := s.guard.Lock(ctx, vecinoID, eventoID)
	if err != nil {
		return nil, fmt.Errorf("register: lock pair: %w", err)
	}
	defer unlock()

	// 1. Existence check. Without a guard this and the insert below are two
	// independent statements.
	exists, err := s.repo.ExistsForPair(ctx, vecinoID, eventoID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		s.log.Debug().Int64("vecino_id", vecinoID).Int64("evento_id", eventoID).Msg("duplicate registration rejected")
		return nil, domain.ErrAlreadyRegistered
	}

	// 2. Insert.
	r := &domain.Registro{
		VecinoID:      vecinoID,
		EventoID:      eventoID,
		FechaRegistro: s.now().UTC(),
		Observaciones: strings.TrimSpace(obs),
	}
	id, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.audit.record(actor, domain.EntidadRegistro, id, domain.AccionRegistrar, nil)
	s.log.Info().
		Int64("registro_id", id).
		Int64("vecino_id", vecinoID).
		Int64("evento_id", eventoID).
		Msg("vecino registered")

	return s.repo.FindByID(ctx, id)
}

func (s *RegistroService) UpdateObservaciones(ctx context.Context, actor domain.Identity, id int64, observaciones string) (*domain.RegistroDetalle, error) {
	prev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateObservaciones(ctx, id, strings.TrimSpace(observaciones)); err != nil {
		return nil, err
	}

	s.audit.record(actor, domain.EntidadRegistro, id, domain.AccionActualizar, prev)
	return s.repo.FindByID(ctx, id)
}

func (s *RegistroService) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	prev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.record(actor, domain.EntidadRegistro, id, domain.AccionEliminar, prev)
	return nil
}
