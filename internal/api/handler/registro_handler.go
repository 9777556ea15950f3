package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/api/metrics"
	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// RegistroHandler handles HTTP requests for registrations.
type RegistroHandler struct {
	service ports.RegistroService
}

func NewRegistroHandler(service ports.RegistroService) *RegistroHandler {
	return &RegistroHandler{service: service}
}

// List handles GET /api/registros.
//
// @Summary      List registrations
// @Tags         registros
// @Produce      json
// @Security     BearerAuth
// @Param        evento_id  query     int  false  "Filter by evento"
// @Param        vecino_id  query     int  false  "Filter by vecino"
// @Success      200        {array}   domain.RegistroDetalle
// @Failure      400        {object}  errorResponse
// @Router       /registros [get]
func (h *RegistroHandler) List(c echo.Context) error {
	eventoID, err := queryInt64(c, "evento_id")
	if err != nil {
		return err
	}
	vecinoID, err := queryInt64(c, "vecino_id")
	if err != nil {
		return err
	}

	registros, err := h.service.List(c.Request().Context(), domain.RegistroFilter{
		EventoID: deref64(eventoID),
		VecinoID: deref64(vecinoID),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, registros)
}

// Get handles GET /api/registros/:id.
//
// @Summary      Get a registration
// @Tags         registros
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Registro ID"
// @Success      200  {object}  domain.RegistroDetalle
// @Failure      404  {object}  errorResponse
// @Router       /registros/{id} [get]
func (h *RegistroHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	r, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Create handles POST /api/registros.
//
// @Summary      Register a resident in an event
// @Tags         registros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registroRequest  true  "Registration"
// @Success      201   {object}  domain.RegistroDetalle
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /registros [post]
func (h *RegistroHandler) Create(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req registroRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Create(c.Request().Context(), actor, ports.RegistroInput{
		VecinoID:      req.VecinoID,
		EventoID:      req.EventoID,
		Observaciones: req.Observaciones,
	})
	if err != nil {
		countRejected(err)
		return err
	}
	metrics.RegistrosCreatedTotal.WithLabelValues("vecino_id").Inc()
	return c.JSON(http.StatusCreated, r)
}

// CreateByDocumento handles POST /api/registros/documento.
//
// @Summary      Register a resident identified by documento
// @Tags         registros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registroDocumentoRequest  true  "Registration by documento"
// @Success      201   {object}  domain.RegistroDetalle
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /registros/documento [post]
func (h *RegistroHandler) CreateByDocumento(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req registroDocumentoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.RegisterByDocumento(c.Request().Context(), actor, ports.RegistroDocumentoInput{
		Documento:     req.Documento,
		EventoID:      req.EventoID,
		Observaciones: req.Observaciones,
	})
	if err != nil {
		countRejected(err)
		return err
	}
	metrics.RegistrosCreatedTotal.WithLabelValues("documento").Inc()
	return c.JSON(http.StatusCreated, r)
}

// Update handles PUT /api/registros/:id. Only observaciones can change.
//
// @Summary      Update registration notes
// @Tags         registros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Registro ID"
// @Param        body  body      registroUpdateRequest  true  "Observaciones"
// @Success      200   {object}  domain.RegistroDetalle
// @Failure      404   {object}  errorResponse
// @Router       /registros/{id} [put]
func (h *RegistroHandler) Update(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req registroUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.UpdateObservaciones(c.Request().Context(), actor, id, req.Observaciones)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /api/registros/:id.
//
// @Summary      Delete a registration
// @Tags         registros
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Registro ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /registros/{id} [delete]
func (h *RegistroHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, messageResponse{Message: "registro eliminado"})
}

func countRejected(err error) {
	reason := "error"
	switch {
	case errors.Is(err, domain.ErrAlreadyRegistered):
		reason = "already_registered"
	case errors.Is(err, domain.ErrResidentNotFound):
		reason = "resident_not_found"
	case errors.Is(err, domain.ErrEventoNotFound):
		reason = "event_not_found"
	}
	metrics.RegistrosRejectedTotal.WithLabelValues(reason).Inc()
}
