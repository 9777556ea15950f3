package mysql

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

const vecinoColumns = `v.id, v.nombre, v.apellido, v.documento, v.email, v.telefono, v.direccion, v.barrio,
	DATE_FORMAT(v.fecha_nacimiento, '%Y-%m-%d') AS fecha_nacimiento,
	v.activo, v.datos_anteriores, v.created_at, v.updated_at`

// VecinoRepository implements ports.VecinoRepository on MySQL.
type VecinoRepository struct {
	db *sqlx.DB
}

func NewVecinoRepository(db *sqlx.DB) ports.VecinoRepository {
	return &VecinoRepository{db: db}
}

func (r *VecinoRepository) List(ctx context.Context, activo *bool) ([]domain.Vecino, error) {
	query := `SELECT ` + vecinoColumns + ` FROM vecinos v`
	var args []any
	if activo != nil {
		query += ` WHERE v.activo = ?`
		args = append(args, *activo)
	}
	query += ` ORDER BY v.apellido, v.nombre`

	vecinos := make([]domain.Vecino, 0)
	if err := r.db.SelectContext(ctx, &vecinos, query, args...); err != nil {
		return nil, fmt.Errorf("list vecinos: %w", err)
	}
	return vecinos, nil
}

func (r *VecinoRepository) FindByID(ctx context.Context, id int64) (*domain.Vecino, error) {
	var v domain.Vecino
	err := r.db.GetContext(ctx, &v, `SELECT `+vecinoColumns+` FROM vecinos v WHERE v.id = ?`, id)
	if err != nil {
		return nil, notFound(err, domain.ErrResidentNotFound)
	}
	return &v, nil
}

func (r *VecinoRepository) FindByDocumento(ctx context.Context, documento string) (*domain.Vecino, error) {
	var v domain.Vecino
	err := r.db.GetContext(ctx, &v, `SELECT `+vecinoColumns+` FROM vecinos v WHERE v.documento = ?`, documento)
	if err != nil {
		return nil, notFound(err, domain.ErrResidentNotFound)
	}
	return &v, nil
}

func (r *VecinoRepository) Search(ctx context.Context, q string) ([]domain.Vecino, error) {
	p := containsPattern(q)
	query := `SELECT ` + vecinoColumns + ` FROM vecinos v
		WHERE v.activo = 1
		  AND (LOWER(v.nombre) LIKE ? OR LOWER(v.apellido) LIKE ? OR LOWER(v.documento) LIKE ? OR LOWER(v.email) LIKE ?)
		ORDER BY v.apellido, v.nombre`

	vecinos := make([]domain.Vecino, 0)
	if err := r.db.SelectContext(ctx, &vecinos, query, p, p, p, p); err != nil {
		return nil, fmt.Errorf("search vecinos: %w", err)
	}
	return vecinos, nil
}

func (r *VecinoRepository) Create(ctx context.Context, v *domain.Vecino) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO vecinos (nombre, apellido, documento, email, telefono, direccion, barrio, fecha_nacimiento, activo)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Nombre, v.Apellido, v.Documento, v.Email, v.Telefono, v.Direccion, v.Barrio, v.FechaNacimiento, v.Activo,
	)
	if err != nil {
		return 0, translate(err, domain.ErrDuplicateDocumento)
	}
	return res.LastInsertId()
}

// Update locks the row, stores its current state in datos_anteriores and
// overwrites the editable columns in one transaction.
func (r *VecinoRepository) Update(ctx context.Context, v *domain.Vecino) (*domain.Vecino, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update vecino: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev domain.Vecino
	if err := tx.GetContext(ctx, &prev, `SELECT `+vecinoColumns+` FROM vecinos v WHERE v.id = ? FOR UPDATE`, v.ID); err != nil {
		return nil, notFound(err, domain.ErrResidentNotFound)
	}

	before := prev
	before.DatosAnteriores = nil
	snap, err := domain.NewSnapshot(before)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE vecinos
		    SET nombre = ?, apellido = ?, documento = ?, email = ?, telefono = ?, direccion = ?, barrio = ?,
		        fecha_nacimiento = ?, datos_anteriores = ?
		  WHERE id = ?`,
		v.Nombre, v.Apellido, v.Documento, v.Email, v.Telefono, v.Direccion, v.Barrio, v.FechaNacimiento, snap, v.ID,
	)
	if err != nil {
		return nil, translate(err, domain.ErrDuplicateDocumento)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update vecino: commit: %w", err)
	}
	return &prev, nil
}

func (r *VecinoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vecinos WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return checkAffected(res, domain.ErrResidentNotFound)
}

func (r *VecinoRepository) ToggleActivo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vecinos SET activo = NOT activo WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrResidentNotFound)
}

func (r *VecinoRepository) ListEventos(ctx context.Context, vecinoID int64) ([]domain.EventoRegistrado, error) {
	query := `SELECT ` + eventoColumns + `, r.id AS registro_id, r.fecha_registro, r.observaciones
		FROM registros_eventos r
		JOIN eventos e ON e.id = r.evento_id
		WHERE r.vecino_id = ?
		ORDER BY e.fecha DESC, e.hora DESC`

	eventos := make([]domain.EventoRegistrado, 0)
	if err := r.db.SelectContext(ctx, &eventos, query, vecinoID); err != nil {
		return nil, fmt.Errorf("list eventos of vecino %d: %w", vecinoID, err)
	}
	return eventos, nil
}
