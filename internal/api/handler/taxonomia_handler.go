package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/api/metrics"
	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// TaxonomiaHandler serves subsecretarías, tipos and subtipos.
type TaxonomiaHandler struct {
	service ports.TaxonomiaService
}

func NewTaxonomiaHandler(service ports.TaxonomiaService) *TaxonomiaHandler {
	return &TaxonomiaHandler{service: service}
}

// --- Subsecretarías ---

// ListSubsecretarias handles GET /api/subsecretarias.
//
// @Summary      List subsecretarías
// @Tags         subsecretarias
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Subsecretaria
// @Router       /subsecretarias [get]
func (h *TaxonomiaHandler) ListSubsecretarias(c echo.Context) error {
	subs, err := h.service.ListSubsecretarias(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// GetSubsecretaria handles GET /api/subsecretarias/:id.
//
// @Summary      Get a subsecretaría
// @Tags         subsecretarias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subsecretaría ID"
// @Success      200  {object}  domain.Subsecretaria
// @Failure      404  {object}  errorResponse
// @Router       /subsecretarias/{id} [get]
func (h *TaxonomiaHandler) GetSubsecretaria(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.service.GetSubsecretaria(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// CreateSubsecretaria handles POST /api/subsecretarias.
//
// @Summary      Create a subsecretaría
// @Tags         subsecretarias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taxonomiaRequest  true  "Subsecretaría"
// @Success      201   {object}  domain.Subsecretaria
// @Failure      400   {object}  errorResponse
// @Router       /subsecretarias [post]
func (h *TaxonomiaHandler) CreateSubsecretaria(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req taxonomiaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.CreateSubsecretaria(c.Request().Context(), actor, toTaxonomiaInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSubsecretaria handles PUT /api/subsecretarias/:id.
//
// @Summary      Update a subsecretaría
// @Tags         subsecretarias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Subsecretaría ID"
// @Param        body  body      taxonomiaRequest  true  "Subsecretaría"
// @Success      200   {object}  domain.Subsecretaria
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /subsecretarias/{id} [put]
func (h *TaxonomiaHandler) UpdateSubsecretaria(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req taxonomiaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.UpdateSubsecretaria(c.Request().Context(), actor, id, toTaxonomiaInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteSubsecretaria handles DELETE /api/subsecretarias/:id.
//
// @Summary      Delete a subsecretaría
// @Tags         subsecretarias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subsecretaría ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /subsecretarias/{id} [delete]
func (h *TaxonomiaHandler) DeleteSubsecretaria(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteSubsecretaria(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "subsecretaría eliminada"})
}

// ToggleSubsecretaria handles PATCH /api/subsecretarias/:id/toggle-activo.
//
// @Summary      Flip a subsecretaría's activo flag
// @Tags         subsecretarias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subsecretaría ID"
// @Success      200  {object}  domain.Subsecretaria
// @Failure      404  {object}  errorResponse
// @Router       /subsecretarias/{id}/toggle-activo [patch]
func (h *TaxonomiaHandler) ToggleSubsecretaria(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.service.ToggleSubsecretaria(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	metrics.TogglesTotal.WithLabelValues(domain.EntidadSubsecretaria).Inc()
	return c.JSON(http.StatusOK, s)
}

// SubsecretariaEventos handles GET /api/subsecretarias/:id/eventos.
//
// @Summary      Events of a subsecretaría
// @Tags         subsecretarias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subsecretaría ID"
// @Success      200  {array}   domain.Evento
// @Failure      404  {object}  errorResponse
// @Router       /subsecretarias/{id}/eventos [get]
func (h *TaxonomiaHandler) SubsecretariaEventos(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	eventos, err := h.service.SubsecretariaEventos(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventos)
}

// --- Tipos ---

// ListTipos handles GET /api/tipos.
//
// @Summary      List tipos
// @Tags         tipos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Tipo
// @Router       /tipos [get]
func (h *TaxonomiaHandler) ListTipos(c echo.Context) error {
	tipos, err := h.service.ListTipos(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tipos)
}

// GetTipo handles GET /api/tipos/:id.
//
// @Summary      Get a tipo
// @Tags         tipos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tipo ID"
// @Success      200  {object}  domain.Tipo
// @Failure      404  {object}  errorResponse
// @Router       /tipos/{id} [get]
func (h *TaxonomiaHandler) GetTipo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.service.GetTipo(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// CreateTipo handles POST /api/tipos.
//
// @Summary      Create a tipo
// @Tags         tipos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taxonomiaRequest  true  "Tipo"
// @Success      201   {object}  domain.Tipo
// @Failure      400   {object}  errorResponse
// @Router       /tipos [post]
func (h *TaxonomiaHandler) CreateTipo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req taxonomiaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.CreateTipo(c.Request().Context(), actor, toTaxonomiaInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateTipo handles PUT /api/tipos/:id.
//
// @Summary      Update a tipo
// @Tags         tipos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Tipo ID"
// @Param        body  body      taxonomiaRequest  true  "Tipo"
// @Success      200   {object}  domain.Tipo
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tipos/{id} [put]
func (h *TaxonomiaHandler) UpdateTipo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req taxonomiaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := h.service.UpdateTipo(c.Request().Context(), actor, id, toTaxonomiaInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTipo handles DELETE /api/tipos/:id. Its subtipos are removed too.
//
// @Summary      Delete a tipo and its subtipos
// @Tags         tipos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tipo ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /tipos/{id} [delete]
func (h *TaxonomiaHandler) DeleteTipo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteTipo(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "tipo eliminado"})
}

// TipoSubtipos handles GET /api/tipos/:id/subtipos.
//
// @Summary      Subtipos of a tipo
// @Tags         tipos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tipo ID"
// @Success      200  {array}   domain.Subtipo
// @Failure      404  {object}  errorResponse
// @Router       /tipos/{id}/subtipos [get]
func (h *TaxonomiaHandler) TipoSubtipos(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	subtipos, err := h.service.TipoSubtipos(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subtipos)
}

// --- Subtipos ---

// ListSubtipos handles GET /api/subtipos.
//
// @Summary      List subtipos
// @Tags         subtipos
// @Produce      json
// @Security     BearerAuth
// @Param        tipo_id  query     int  false  "Filter by tipo"
// @Success      200      {array}   domain.Subtipo
// @Failure      400      {object}  errorResponse
// @Router       /subtipos [get]
func (h *TaxonomiaHandler) ListSubtipos(c echo.Context) error {
	tipoID, err := queryInt64(c, "tipo_id")
	if err != nil {
		return err
	}
	subtipos, err := h.service.ListSubtipos(c.Request().Context(), deref64(tipoID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subtipos)
}

// GetSubtipo handles GET /api/subtipos/:id.
//
// @Summary      Get a subtipo
// @Tags         subtipos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subtipo ID"
// @Success      200  {object}  domain.Subtipo
// @Failure      404  {object}  errorResponse
// @Router       /subtipos/{id} [get]
func (h *TaxonomiaHandler) GetSubtipo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.service.GetSubtipo(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// CreateSubtipo handles POST /api/subtipos.
//
// @Summary      Create a subtipo
// @Tags         subtipos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      subtipoRequest  true  "Subtipo"
// @Success      201   {object}  domain.Subtipo
// @Failure      400   {object}  errorResponse
// @Router       /subtipos [post]
func (h *TaxonomiaHandler) CreateSubtipo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req subtipoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.CreateSubtipo(c.Request().Context(), actor, toSubtipoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

// UpdateSubtipo handles PUT /api/subtipos/:id.
//
// @Summary      Update a subtipo
// @Tags         subtipos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Subtipo ID"
// @Param        body  body      subtipoRequest  true  "Subtipo"
// @Success      200   {object}  domain.Subtipo
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /subtipos/{id} [put]
func (h *TaxonomiaHandler) UpdateSubtipo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req subtipoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.UpdateSubtipo(c.Request().Context(), actor, id, toSubtipoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteSubtipo handles DELETE /api/subtipos/:id.
//
// @Summary      Delete a subtipo
// @Tags         subtipos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Subtipo ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /subtipos/{id} [delete]
func (h *TaxonomiaHandler) DeleteSubtipo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteSubtipo(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "subtipo eliminado"})
}
