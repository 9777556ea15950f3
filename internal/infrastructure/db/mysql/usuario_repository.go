package mysql

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

const usuarioColumns = `u.id, u.nombre, u.apellido, u.email, u.password_hash, u.rol, u.subsecretaria_id,
	u.activo, u.datos_anteriores, u.created_at, u.updated_at`

// UsuarioRepository implements ports.UsuarioRepository on MySQL.
type UsuarioRepository struct {
	db *sqlx.DB
}

func NewUsuarioRepository(db *sqlx.DB) ports.UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) List(ctx context.Context) ([]domain.Usuario, error) {
	usuarios := make([]domain.Usuario, 0)
	err := r.db.SelectContext(ctx, &usuarios, `SELECT `+usuarioColumns+` FROM usuarios u ORDER BY u.apellido, u.nombre`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return usuarios, nil
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	var u domain.Usuario
	if err := r.db.GetContext(ctx, &u, `SELECT `+usuarioColumns+` FROM usuarios u WHERE u.id = ?`, id); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (*domain.Usuario, error) {
	var u domain.Usuario
	if err := r.db.GetContext(ctx, &u, `SELECT `+usuarioColumns+` FROM usuarios u WHERE u.email = ?`, email); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &u, nil
}

func (r *UsuarioRepository) Search(ctx context.Context, q string) ([]domain.Usuario, error) {
	p := containsPattern(q)
	query := `SELECT ` + usuarioColumns + ` FROM usuarios u
		WHERE u.activo = 1
		  AND (LOWER(u.nombre) LIKE ? OR LOWER(u.apellido) LIKE ? OR LOWER(u.email) LIKE ?)
		ORDER BY u.apellido, u.nombre`

	usuarios := make([]domain.Usuario, 0)
	if err := r.db.SelectContext(ctx, &usuarios, query, p, p, p); err != nil {
		return nil, fmt.Errorf("search usuarios: %w", err)
	}
	return usuarios, nil
}

func (r *UsuarioRepository) Create(ctx context.Context, u *domain.Usuario) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO usuarios (nombre, apellido, email, password_hash, rol, subsecretaria_id, activo)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Nombre, u.Apellido, u.Email, u.PasswordHash, u.Rol, u.SubsecretariaID, u.Activo,
	)
	if err != nil {
		return 0, translate(err, domain.ErrDuplicateEmail)
	}
	return res.LastInsertId()
}

// Update locks the row, stores its current state (without the password hash)
// in datos_anteriores and overwrites the editable columns.
func (r *UsuarioRepository) Update(ctx context.Context, u *domain.Usuario) (*domain.Usuario, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("update usuario: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var prev domain.Usuario
	if err := tx.GetContext(ctx, &prev, `SELECT `+usuarioColumns+` FROM usuarios u WHERE u.id = ? FOR UPDATE`, u.ID); err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}

	before := prev
	before.DatosAnteriores = nil
	snap, err := domain.NewSnapshot(before)
	if err != nil {
		return nil, err
	}

	query := `UPDATE usuarios
	             SET nombre = ?, apellido = ?, email = ?, rol = ?, subsecretaria_id = ?, datos_anteriores = ?`
	args := []any{u.Nombre, u.Apellido, u.Email, u.Rol, u.SubsecretariaID, snap}
	if u.PasswordHash != "" {
		query += `, password_hash = ?`
		args = append(args, u.PasswordHash)
	}
	query += ` WHERE id = ?`
	args = append(args, u.ID)

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return nil, translate(err, domain.ErrDuplicateEmail)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update usuario: commit: %w", err)
	}
	return &prev, nil
}

func (r *UsuarioRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE usuarios SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrUserNotFound)
}

func (r *UsuarioRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = ?`, id)
	if err != nil {
		return translate(err, nil)
	}
	return checkAffected(res, domain.ErrUserNotFound)
}

func (r *UsuarioRepository) ToggleActivo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE usuarios SET activo = NOT activo WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res, domain.ErrUserNotFound)
}
