package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/api/metrics"
	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// EventoHandler handles HTTP requests for events.
type EventoHandler struct {
	service ports.EventoService
}

func NewEventoHandler(service ports.EventoService) *EventoHandler {
	return &EventoHandler{service: service}
}

// List handles GET /api/eventos.
//
// @Summary      List events
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        subsecretaria_id  query     int   false  "Filter by subsecretaría"
// @Param        tipo_id           query     int   false  "Filter by tipo"
// @Param        subtipo_id        query     int   false  "Filter by subtipo"
// @Param        activo            query     bool  false  "Filter by activo"
// @Success      200               {array}   domain.Evento
// @Failure      400               {object}  errorResponse
// @Router       /eventos [get]
func (h *EventoHandler) List(c echo.Context) error {
	var (
		f   domain.EventoFilter
		err error
	)
	if f.SubsecretariaID, err = queryInt64(c, "subsecretaria_id"); err != nil {
		return err
	}
	if f.TipoID, err = queryInt64(c, "tipo_id"); err != nil {
		return err
	}
	if f.SubtipoID, err = queryInt64(c, "subtipo_id"); err != nil {
		return err
	}
	if f.Activo, err = queryBool(c, "activo"); err != nil {
		return err
	}

	eventos, err := h.service.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventos)
}

// Get handles GET /api/eventos/:id.
//
// @Summary      Get an event
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Evento ID"
// @Success      200  {object}  domain.Evento
// @Failure      404  {object}  errorResponse
// @Router       /eventos/{id} [get]
func (h *EventoHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ev, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// Create handles POST /api/eventos. Subsecretaría users always create in
// their own subsecretaría.
//
// @Summary      Create an event
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventoRequest  true  "Event"
// @Success      201   {object}  domain.Evento
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /eventos [post]
func (h *EventoHandler) Create(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req eventoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ev, err := h.service.Create(c.Request().Context(), actor, toEventoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ev)
}

// Update handles PUT /api/eventos/:id.
//
// @Summary      Update an event
// @Tags         eventos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Evento ID"
// @Param        body  body      eventoRequest  true  "Event"
// @Success      200   {object}  domain.Evento
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /eventos/{id} [put]
func (h *EventoHandler) Update(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req eventoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ev, err := h.service.Update(c.Request().Context(), actor, id, toEventoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /api/eventos/:id.
//
// @Summary      Delete an event
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Evento ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /eventos/{id} [delete]
func (h *EventoHandler) Delete(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "evento eliminado"})
}

// ToggleActivo handles PATCH /api/eventos/:id/toggle-activo.
//
// @Summary      Flip an event's activo flag
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Evento ID"
// @Success      200  {object}  domain.Evento
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /eventos/{id}/toggle-activo [patch]
func (h *EventoHandler) ToggleActivo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ev, err := h.service.ToggleActivo(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	metrics.TogglesTotal.WithLabelValues(domain.EntidadEvento).Inc()
	return c.JSON(http.StatusOK, ev)
}

// Vecinos handles GET /api/eventos/:id/vecinos.
//
// @Summary      Residents registered in an event
// @Tags         eventos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Evento ID"
// @Success      200  {array}   domain.VecinoRegistrado
// @Failure      404  {object}  errorResponse
// @Router       /eventos/{id}/vecinos [get]
func (h *EventoHandler) Vecinos(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	vecinos, err := h.service.Vecinos(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vecinos)
}
