package mysql

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// SubsecretariaRepository implements ports.SubsecretariaRepository on MySQL.
type SubsecretariaRepository struct {
	db *sqlx.DB
}

func NewSubsecretariaRepository(db *sqlx.DB) ports.SubsecretariaRepository {
	return &SubsecretariaRepository{db: db}
}

const subsecretariaColumns = `id, nombre, descripcion, activo, created_at, updated_at`

func (r *SubsecretariaRepository) List(ctx context.Context) ([]domain.Subsecretaria, error) {
	subs := make([]domain.Subsecretaria, 0)
	if err := r.db.SelectContext(ctx, &subs, `SELECT `+subsecretariaColumns+` FROM subsecretarias ORDER BY nombre`); err != nil {
		return nil, fmt.Errorf("list subsecretarias: %w", err)
	}
	return subs, nil
}

func (r *SubsecretariaRepository) FindByID(ctx context.Context, id int64) (*domain.Subsecretaria, error) {
	var s domain.Subsecretaria
	if err := r.db.GetContext(ctx, &s, `SELECT `+subsecretariaColumns+` FROM subsecretarias WHERE id = ?`, id); err != nil {
		return nil, notFound(err, domain.ErrSubsecretariaNotFound)
	}
	return &s, nil
}

func (r *SubsecretariaRepository) Create(ctx context.Context, s *domain.Subsecretaria) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subsecretarias (nombre, descripcion, activo) VALUES (?, ?, ?)`,
		s.Nombre, s.Descripcion, s.Activo,
	)
	if err != nil {
		return 0, translate(err, domain.ErrDuplicateNombre)
	}
	return res.LastInsertId()
}

func (r *SubsecretariaRepository) Update(ctx context.Context, s *domain.Subsecretaria) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subsecretarias SET nombre = ?, descripcion = ?, activo = ? WHERE id = ?`,
		s.Nombre, s.Descripcion, s.Activo, s.ID,
	)
	if err != nil {
		return translate(err, domain.ErrDuplicateNombre)
	}
	return checkAffected(res, domain.ErrSubsecretariaNotFound)
}

func (r *SubsecretariaRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subsecretarias WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return checkAffected(res, domain.ErrSubsecretariaNotFound)
}

func (r *SubsecretariaRepository) ToggleActivo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE subsecretarias SET activo = NOT activo WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrSubsecretariaNotFound)
}

// TipoRepository implements ports.TipoRepository on MySQL.
type TipoRepository struct {
	db *sqlx.DB
}

func NewTipoRepository(db *sqlx.DB) ports.TipoRepository {
	return &TipoRepository{db: db}
}

const tipoColumns = `id, nombre, descripcion, created_at, updated_at`

func (r *TipoRepository) List(ctx context.Context) ([]domain.Tipo, error) {
	tipos := make([]domain.Tipo, 0)
	if err := r.db.SelectContext(ctx, &tipos, `SELECT `+tipoColumns+` FROM tipos ORDER BY nombre`); err != nil {
		return nil, fmt.Errorf("list tipos: %w", err)
	}
	return tipos, nil
}

func (r *TipoRepository) FindByID(ctx context.Context, id int64) (*domain.Tipo, error) {
	var t domain.Tipo
	if err := r.db.GetContext(ctx, &t, `SELECT `+tipoColumns+` FROM tipos WHERE id = ?`, id); err != nil {
		return nil, notFound(err, domain.ErrTipoNotFound)
	}
	return &t, nil
}

func (r *TipoRepository) Create(ctx context.Context, t *domain.Tipo) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO tipos (nombre, descripcion) VALUES (?, ?)`, t.Nombre, t.Descripcion)
	if err != nil {
		return 0, translate(err, domain.ErrDuplicateNombre)
	}
	return res.LastInsertId()
}

func (r *TipoRepository) Update(ctx context.Context, t *domain.Tipo) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tipos SET nombre = ?, descripcion = ? WHERE id = ?`, t.Nombre, t.Descripcion, t.ID)
	if err != nil {
		return translate(err, domain.ErrDuplicateNombre)
	}
	return checkAffected(res, domain.ErrTipoNotFound)
}

// Delete relies on fk_subtipos_tipo (ON DELETE CASCADE) to drop the subtipos.
func (r *TipoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tipos WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return checkAffected(res, domain.ErrTipoNotFound)
}

// SubtipoRepository implements ports.SubtipoRepository on MySQL.
type SubtipoRepository struct {
	db *sqlx.DB
}

func NewSubtipoRepository(db *sqlx.DB) ports.SubtipoRepository {
	return &SubtipoRepository{db: db}
}

const subtipoColumns = `id, tipo_id, nombre, descripcion, created_at, updated_at`

func (r *SubtipoRepository) List(ctx context.Context, tipoID int64) ([]domain.Subtipo, error) {
	query := `SELECT ` + subtipoColumns + ` FROM subtipos`
	var args []any
	if tipoID != 0 {
		query += ` WHERE tipo_id = ?`
		args = append(args, tipoID)
	}
	query += ` ORDER BY nombre`

	subtipos := make([]domain.Subtipo, 0)
	if err := r.db.SelectContext(ctx, &subtipos, query, args...); err != nil {
		return nil, fmt.Errorf("list subtipos: %w", err)
	}
	return subtipos, nil
}

func (r *SubtipoRepository) FindByID(ctx context.Context, id int64) (*domain.Subtipo, error) {
	var s domain.Subtipo
	if err := r.db.GetContext(ctx, &s, `SELECT `+subtipoColumns+` FROM subtipos WHERE id = ?`, id); err != nil {
		return nil, notFound(err, domain.ErrSubtipoNotFound)
	}
	return &s, nil
}

func (r *SubtipoRepository) Create(ctx context.Context, s *domain.Subtipo) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subtipos (tipo_id, nombre, descripcion) VALUES (?, ?, ?)`,
		s.TipoID, s.Nombre, s.Descripcion,
	)
	if err != nil {
		return 0, translate(err, domain.ErrDuplicateNombre)
	}
	return res.LastInsertId()
}

func (r *SubtipoRepository) Update(ctx context.Context, s *domain.Subtipo) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subtipos SET tipo_id = ?, nombre = ?, descripcion = ? WHERE id = ?`,
		s.TipoID, s.Nombre, s.Descripcion, s.ID,
	)
	if err != nil {
		return translate(err, domain.ErrDuplicateNombre)
	}
	return checkAffected(res, domain.ErrSubtipoNotFound)
}

func (r *SubtipoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subtipos WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return checkAffected(res, domain.ErrSubtipoNotFound)
}
