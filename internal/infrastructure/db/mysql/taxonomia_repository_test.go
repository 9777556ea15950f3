package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

func TestSubsecretariaRepository_Create_Duplicate(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewSubsecretariaRepository(db)

	mock.ExpectExec(`INSERT INTO subsecretarias`).
		WithArgs("Cultura", "", true).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := repo.Create(context.Background(), &domain.Subsecretaria{Nombre: "Cultura", Activo: true})
	assert.ErrorIs(t, err, domain.ErrDuplicateNombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubsecretariaRepository_Delete_InUse(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewSubsecretariaRepository(db)

	mock.ExpectExec(`DELETE FROM subsecretarias WHERE id = \?`).
		WithArgs(int64(2)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 2), domain.ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTipoRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewTipoRepository(db)

	mock.ExpectExec(`DELETE FROM tipos WHERE id = \?`).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), domain.ErrTipoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubtipoRepository_List(t *testing.T) {
	cols := []string{"id", "tipo_id", "nombre", "descripcion", "created_at", "updated_at"}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("by tipo", func(t *testing.T) {
		db, mock := setupMock(t)
		repo := NewSubtipoRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM subtipos WHERE tipo_id = \? ORDER BY nombre`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 3, "Taller", "", now, now))

		got, err := repo.List(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].TipoID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all", func(t *testing.T) {
		db, mock := setupMock(t)
		repo := NewSubtipoRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM subtipos ORDER BY nombre`).
			WillReturnRows(sqlmock.NewRows(cols))

		got, err := repo.List(context.Background(), 0)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
