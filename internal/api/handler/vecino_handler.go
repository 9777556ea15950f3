package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/api/metrics"
	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// VecinoHandler handles HTTP requests for residents.
type VecinoHandler struct {
	service ports.VecinoService
}

func NewVecinoHandler(service ports.VecinoService) *VecinoHandler {
	return &VecinoHandler{service: service}
}

// List handles GET /api/vecinos.
//
// @Summary      List residents
// @Tags         vecinos
// @Produce      json
// @Security     BearerAuth
// @Param        activo  query     bool  false  "Filter by activo"
// @Success      200     {array}   domain.Vecino
// @Failure      400     {object}  errorResponse
// @Router       /vecinos [get]
func (h *VecinoHandler) List(c echo.Context) error {
	activo, err := queryBool(c, "activo")
	if err != nil {
		return err
	}
	vecinos, err := h.service.List(c.Request().Context(), activo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vecinos)
}

// Get handles GET /api/vecinos/:id.
//
// @Summary      Get a resident
// @Tags         vecinos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vecino ID"
// @Success      200  {object}  domain.Vecino
// @Failure      404  {object}  errorResponse
// @Router       /vecinos/{id} [get]
func (h *VecinoHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// GetByDocumento handles GET /api/vecinos/documento/:documento.
//
// @Summary      Find a resident by documento
// @Tags         vecinos
// @Produce      json
// @Security     BearerAuth
// @Param        documento  path      string  true  "Documento"
// @Success      200        {object}  domain.Vecino
// @Failure      404        {object}  errorResponse
// @Router       /vecinos/documento/{documento} [get]
func (h *VecinoHandler) GetByDocumento(c echo.Context) error {
	v, err := h.service.GetByDocumento(c.Request().Context(), c.Param("documento"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Search handles GET /api/vecinos/buscar?q=.
//
// @Summary      Search active residents
// @Tags         vecinos
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Substring of nombre, apellido, documento or email"
// @Success      200  {array}   domain.Vecino
// @Failure      400  {object}  errorResponse
// @Router       /vecinos/buscar [get]
func (h *VecinoHandler) Search(c echo.Context) error {
	vecinos, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vecinos)
}

// Create handles POST /api/vecinos.
//
// @Summary      Create a resident
// @Tags         vecinos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      vecinoRequest  true  "Resident"
// @Success      201   {object}  domain.Vecino
// @Failure      400   {object}  errorResponse
// @Router       /vecinos [post]
func (h *VecinoHandler) Create(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req vecinoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	v, err := h.service.Create(c.Request().Context(), actor, toVecinoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

// Update handles PUT /api/vecinos/:id.
//
// @Summary      Update a resident
// @Tags         vecinos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Vecino ID"
// @Param        body  body      vecinoRequest  true  "Resident"
// @Success      200   {object}  domain.Vecino
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /vecinos/{id} [put]
func (h *VecinoHandler) Update(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req vecinoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	v, err := h.service.Update(c.Request().Context(), actor, id, toVecinoInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Delete handles DELETE /api/vecinos/:id.
//
// @Summary      Delete a resident
// @Tags         vecinos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vecino ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /vecinos/{id} [delete]
func (h *VecinoHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, messageResponse{Message: "vecino eliminado"})
}

// ToggleActivo handles PATCH /api/vecinos/:id/toggle-activo.
//
// @Summary      Flip a resident's activo flag
// @Tags         vecinos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vecino ID"
// @Success      200  {object}  domain.Vecino
// @Failure      404  {object}  errorResponse
// @Router       /vecinos/{id}/toggle-activo [patch]
func (h *VecinoHandler) ToggleActivo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.service.ToggleActivo(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	metrics.TogglesTotal.WithLabelValues(domain.EntidadVecino).Inc()
	return c.JSON(http.StatusOK, v)
}

// Eventos handles GET /api/vecinos/:id/eventos.
//
// @Summary      Events a resident is registered in
// @Tags         vecinos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vecino ID"
// @Success      200  {array}   domain.EventoRegistrado
// @Failure      404  {object}  errorResponse
// @Router       /vecinos/{id}/eventos [get]
func (h *VecinoHandler) Eventos(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	eventos, err := h.service.Eventos(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventos)
}
