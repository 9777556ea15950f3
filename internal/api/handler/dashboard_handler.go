package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
	audit     ports.AuditService
}

func NewDashboardHandler(dashboard ports.DashboardService, audit ports.AuditService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, audit: audit}
}

// Resumen handles GET /api/dashboard/resumen.
//
// @Summary      Dashboard totals
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Resumen
// @Router       /dashboard/resumen [get]
func (h *DashboardHandler) Resumen(c echo.Context) error {
	res, err := h.dashboard.Resumen(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Auditoria handles GET /api/auditoria.
//
// @Summary      Audit trail, newest first
// @Tags         auditoria
// @Produce      json
// @Security     BearerAuth
// @Param        entidad     query     string  false  "Entity name (vecino, evento, ...)"
// @Param        entidad_id  query     int     false  "Entity ID"
// @Param        limit       query     int     false  "Max entries (default 50, max 500)"
// @Success      200         {array}   domain.AuditEntry
// @Failure      400         {object}  errorResponse
// @Router       /auditoria [get]
func (h *DashboardHandler) Auditoria(c echo.Context) error {
	entidadID, err := queryInt64(c, "entidad_id")
	if err != nil {
		return err
	}
	f := domain.AuditFilter{
		Entidad:   c.QueryParam("entidad"),
		EntidadID: deref64(entidadID),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit inválido")
		}
		f.Limit = limit
	}

	entries, err := h.audit.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
