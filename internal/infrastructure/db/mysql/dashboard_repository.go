package mysql

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

const destacadosLimit = 5

// DashboardRepository implements ports.DashboardRepository on MySQL.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) ports.DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Resumen(ctx context.Context) (*domain.Resumen, error) {
	var res domain.Resumen
	err := r.db.GetContext(ctx, &res, `SELECT
		(SELECT COUNT(*) FROM vecinos) AS vecinos_total,
		(SELECT COUNT(*) FROM vecinos WHERE activo = 1) AS vecinos_activos,
		(SELECT COUNT(*) FROM eventos) AS eventos_total,
		(SELECT COUNT(*) FROM eventos WHERE activo = 1) AS eventos_activos,
		(SELECT COUNT(*) FROM eventos WHERE activo = 1 AND fecha >= CURDATE()) AS eventos_proximos,
		(SELECT COUNT(*) FROM registros_eventos) AS registros_total,
		(SELECT COUNT(*) FROM registros_eventos WHERE fecha_registro >= NOW() - INTERVAL 30 DAY) AS registros_ultimos`)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	res.EventosDestacados = make([]domain.EventoConConteo, 0, destacadosLimit)
	err = r.db.SelectContext(ctx, &res.EventosDestacados, `SELECT e.id, e.nombre,
		DATE_FORMAT(e.fecha, '%Y-%m-%d') AS fecha, COUNT(r.id) AS registros
		FROM eventos e
		JOIN registros_eventos r ON r.evento_id = e.id
		GROUP BY e.id, e.nombre, e.fecha
		ORDER BY registros DESC, e.fecha DESC
		LIMIT ?`, destacadosLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard destacados: %w", err)
	}
	return &res, nil
}
