package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

const registroDetalleQuery = `SELECT r.id, r.vecino_id, r.evento_id, r.fecha_registro, r.observaciones,
	v.nombre AS vecino_nombre, v.apellido AS vecino_apellido, v.documento AS vecino_documento,
	e.nombre AS evento_nombre, DATE_FORMAT(e.fecha, '%Y-%m-%d') AS evento_fecha
	FROM registros_eventos r
	JOIN vecinos v ON v.id = r.vecino_id
	JOIN eventos e ON e.id = r.evento_id`

// RegistroRepository implements ports.RegistroRepository on MySQL.
type RegistroRepository struct {
	db *sqlx.DB
}

func NewRegistroRepository(db *sqlx.DB) ports.RegistroRepository {
	return &RegistroRepository{db: db}
}

func (r *RegistroRepository) List(ctx context.Context, f domain.RegistroFilter) ([]domain.RegistroDetalle, error) {
	var (
		where []string
		args  []any
	)
	if f.VecinoID != 0 {
		where = append(where, "r.vecino_id = ?")
		args = append(args, f.VecinoID)
	}
	if f.EventoID != 0 {
		where = append(where, "r.evento_id = ?")
		args = append(args, f.EventoID)
	}

	query := registroDetalleQuery
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY r.fecha_registro DESC`

	registros := make([]domain.RegistroDetalle, 0)
	if err := r.db.SelectContext(ctx, &registros, query, args...); err != nil {
		return nil, fmt.Errorf("list registros: %w", err)
	}
	return registros, nil
}

func (r *RegistroRepository) FindByID(ctx context.Context, id int64) (*domain.RegistroDetalle, error) {
	var d domain.RegistroDetalle
	if err := r.db.GetContext(ctx, &d, registroDetalleQuery+` WHERE r.id = ?`, id); err != nil {
		return nil, notFound(err, domain.ErrRegistroNotFound)
	}
	return &d, nil
}

// ExistsForPair is a plain read with no lock held; see ports.RegistroRepository.
func (r *RegistroRepository) ExistsForPair(ctx context.Context, vecinoID, eventoID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM registros_eventos WHERE vecino_id = ? AND evento_id = ?)`,
		vecinoID, eventoID,
	)
	if err != nil {
		return false, fmt.Errorf("exists registro: %w", err)
	}
	return exists, nil
}

func (r *RegistroRepository) Create(ctx context.Context, reg *domain.Registro) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO registros_eventos (vecino_id, evento_id, fecha_registro, observaciones) VALUES (?, ?, ?, ?)`,
		reg.VecinoID, reg.EventoID, reg.FechaRegistro, reg.Observaciones,
	)
	if err != nil {
		return 0, translate(err, nil)
	}
	return res.LastInsertId()
}

func (r *RegistroRepository) UpdateObservaciones(ctx context.Context, id int64, observaciones string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE registros_eventos SET observaciones = ? WHERE id = ?`, observaciones, id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrRegistroNotFound)
}

func (r *RegistroRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registros_eventos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrRegistroNotFound)
}
