package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

const eventoColumns = `e.id, e.nombre, e.descripcion,
	DATE_FORMAT(e.fecha, '%Y-%m-%d') AS fecha,
	TIME_FORMAT(e.hora, '%H:%i') AS hora,
	e.lugar, e.cupo, e.subsecretaria_id, e.tipo_id, e.subtipo_id, e.activo, e.created_at, e.updated_at`

// EventoRepository implements ports.EventoRepository on MySQL.
type EventoRepository struct {
	db *sqlx.DB
}

func NewEventoRepository(db *sqlx.DB) ports.EventoRepository {
	return &EventoRepository{db: db}
}

func (r *EventoRepository) List(ctx context.Context, f domain.EventoFilter) ([]domain.Evento, error) {
	var (
		where []string
		args  []any
	)
	if f.SubsecretariaID != nil {
		where = append(where, "e.subsecretaria_id = ?")
		args = append(args, *f.SubsecretariaID)
	}
	if f.TipoID != nil {
		where = append(where, "e.tipo_id = ?")
		args = append(args, *f.TipoID)
	}
	if f.SubtipoID != nil {
		where = append(where, "e.subtipo_id = ?")
		args = append(args, *f.SubtipoID)
	}
	if f.Activo != nil {
		where = append(where, "e.activo = ?")
		args = append(args, *f.Activo)
	}

	query := `SELECT ` + eventoColumns + ` FROM eventos e`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY e.fecha DESC, e.hora DESC`

	eventos := make([]domain.Evento, 0)
	if err := r.db.SelectContext(ctx, &eventos, query, args...); err != nil {
		return nil, fmt.Errorf("list eventos: %w", err)
	}
	return eventos, nil
}

func (r *EventoRepository) FindByID(ctx context.Context, id int64) (*domain.Evento, error) {
	var e domain.Evento
	if err := r.db.GetContext(ctx, &e, `SELECT `+eventoColumns+` FROM eventos e WHERE e.id = ?`, id); err != nil {
		return nil, notFound(err, domain.ErrEventoNotFound)
	}
	return &e, nil
}

func (r *EventoRepository) Create(ctx context.Context, e *domain.Evento) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO eventos (nombre, descripcion, fecha, hora, lugar, cupo, subsecretaria_id, tipo_id, subtipo_id, activo)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Nombre, e.Descripcion, e.Fecha, e.Hora, e.Lugar, e.Cupo, e.SubsecretariaID, e.TipoID, e.SubtipoID, e.Activo,
	)
	if err != nil {
		return 0, translate(err, nil)
	}
	return res.LastInsertId()
}

func (r *EventoRepository) Update(ctx context.Context, e *domain.Evento) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE eventos
		    SET nombre = ?, descripcion = ?, fecha = ?, hora = ?, lugar = ?, cupo = ?,
		        subsecretaria_id = ?, tipo_id = ?, subtipo_id = ?, activo = ?
		  WHERE id = ?`,
		e.Nombre, e.Descripcion, e.Fecha, e.Hora, e.Lugar, e.Cupo, e.SubsecretariaID, e.TipoID, e.SubtipoID, e.Activo, e.ID,
	)
	if err != nil {
		return translate(err, nil)
	}
	return checkAffected(res, domain.ErrEventoNotFound)
}

func (r *EventoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM eventos WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return checkAffected(res, domain.ErrEventoNotFound)
}

func (r *EventoRepository) ToggleActivo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE eventos SET activo = NOT activo WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrEventoNotFound)
}

func (r *EventoRepository) ListVecinos(ctx context.Context, eventoID int64) ([]domain.VecinoRegistrado, error) {
	query := `SELECT ` + vecinoColumns + `, r.id AS registro_id, r.fecha_registro, r.observaciones
		FROM registros_eventos r
		JOIN vecinos v ON v.id = r.vecino_id
		WHERE r.evento_id = ?
		ORDER BY r.fecha_registro`

	vecinos := make([]domain.VecinoRegistrado, 0)
	if err := r.db.SelectContext(ctx, &vecinos, query, eventoID); err != nil {
		return nil, fmt.Errorf("list vecinos of evento %d: %w", eventoID, err)
	}
	return vecinos, nil
}
