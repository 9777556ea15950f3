package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

var usuarioCols = []string{
	"id", "nombre", "apellido", "email", "password_hash", "rol", "subsecretaria_id",
	"activo", "datos_anteriores", "created_at", "updated_at",
}

func usuarioRow(rows *sqlmock.Rows, id int64, email, rol string) *sqlmock.Rows {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Ana", "Gómez", email, "$2a$10$hash", rol, nil, true, nil, now, now)
}

func TestUsuarioRepository_FindByEmail(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUsuarioRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM usuarios u WHERE u.email = \?`).
		WithArgs("ana@municipio.gob.ar").
		WillReturnRows(usuarioRow(sqlmock.NewRows(usuarioCols), 4, "ana@municipio.gob.ar", domain.RoleUser))

	u, err := repo.FindByEmail(context.Background(), "ana@municipio.gob.ar")
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.ID)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	assert.Nil(t, u.SubsecretariaID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUsuarioRepository(db)

	mock.ExpectQuery(`FROM usuarios u WHERE u.email = \?`).WithArgs("x@y.z").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "x@y.z")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUsuarioRepository(db)

	mock.ExpectExec(`INSERT INTO usuarios`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), &domain.Usuario{Email: "ana@municipio.gob.ar", Rol: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Update_SnapshotOmitsHash(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUsuarioRepository(db)

	var stored []byte
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM usuarios u WHERE u.id = \? FOR UPDATE`).
		WithArgs(int64(4)).
		WillReturnRows(usuarioRow(sqlmock.NewRows(usuarioCols), 4, "ana@municipio.gob.ar", domain.RoleUser))
	mock.ExpectExec(`UPDATE usuarios`).
		WithArgs("Ana", "Gómez", "ana@municipio.gob.ar", domain.RoleAdmin, nil, snapshotCapture{&stored}, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	prev, err := repo.Update(context.Background(), &domain.Usuario{
		ID: 4, Nombre: "Ana", Apellido: "Gómez", Email: "ana@municipio.gob.ar", Rol: domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, prev.Rol)

	var snap map[string]any
	require.NoError(t, json.Unmarshal(stored, &snap))
	assert.Equal(t, domain.RoleUser, snap["rol"])
	assert.NotContains(t, snap, "password_hash")
	assert.NotContains(t, snap, "datos_anteriores")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Update_PasswordInSameTx(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUsuarioRepository(db)

	var stored []byte
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM usuarios u WHERE u.id = \? FOR UPDATE`).
		WithArgs(int64(4)).
		WillReturnRows(usuarioRow(sqlmock.NewRows(usuarioCols), 4, "ana@municipio.gob.ar", domain.RoleUser))
	mock.ExpectExec(`UPDATE usuarios\s+SET .*datos_anteriores = \?, password_hash = \? WHERE id = \?`).
		WithArgs("Ana", "", "ana@municipio.gob.ar", domain.RoleUser, nil, snapshotCapture{&stored}, "$2a$10$nuevo", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repo.Update(context.Background(), &domain.Usuario{
		ID: 4, Nombre: "Ana", Email: "ana@municipio.gob.ar", Rol: domain.RoleUser, PasswordHash: "$2a$10$nuevo",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Update_FailureRollsBackPassword(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUsuarioRepository(db)

	var stored []byte
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM usuarios u WHERE u.id = \? FOR UPDATE`).
		WithArgs(int64(4)).
		WillReturnRows(usuarioRow(sqlmock.NewRows(usuarioCols), 4, "ana@municipio.gob.ar", domain.RoleUser))
	mock.ExpectExec(`password_hash = \?`).
		WithArgs("Ana", "", "ana@municipio.gob.ar", domain.RoleUser, nil, snapshotCapture{&stored}, "$2a$10$nuevo", int64(4)).
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), &domain.Usuario{
		ID: 4, Nombre: "Ana", Email: "ana@municipio.gob.ar", Rol: domain.RoleUser, PasswordHash: "$2a$10$nuevo",
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsuarioRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewUsuarioRepository(db)

	mock.ExpectExec(`DELETE FROM usuarios WHERE id = \?`).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
