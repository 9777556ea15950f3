package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/api/metrics"
	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
)

// UsuarioHandler handles user management; every route is admin only.
type UsuarioHandler struct {
	service ports.UsuarioService
}

func NewUsuarioHandler(service ports.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

// List handles GET /api/usuarios.
//
// @Summary      List users
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Usuario
// @Router       /usuarios [get]
func (h *UsuarioHandler) List(c echo.Context) error {
	usuarios, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usuarios)
}

// Get handles GET /api/usuarios/:id.
//
// @Summary      Get a user
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Usuario ID"
// @Success      200  {object}  domain.Usuario
// @Failure      404  {object}  errorResponse
// @Router       /usuarios/{id} [get]
func (h *UsuarioHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Search handles GET /api/usuarios/buscar?q=.
//
// @Summary      Search active users
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Substring of nombre, apellido or email"
// @Success      200  {array}   domain.Usuario
// @Failure      400  {object}  errorResponse
// @Router       /usuarios/buscar [get]
func (h *UsuarioHandler) Search(c echo.Context) error {
	usuarios, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usuarios)
}

// Create handles POST /api/usuarios.
//
// @Summary      Create a user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      usuarioRequest  true  "User"
// @Success      201   {object}  domain.Usuario
// @Failure      400   {object}  errorResponse
// @Router       /usuarios [post]
func (h *UsuarioHandler) Create(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	var req usuarioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password es requerido")
	}

	u, err := h.service.Create(c.Request().Context(), actor, toUsuarioInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /api/usuarios/:id. An empty password keeps the current one.
//
// @Summary      Update a user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Usuario ID"
// @Param        body  body      usuarioRequest  true  "User"
// @Success      200   {object}  domain.Usuario
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /usuarios/{id} [put]
func (h *UsuarioHandler) Update(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req usuarioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := h.service.Update(c.Request().Context(), actor, id, toUsuarioInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /api/usuarios/:id.
//
// @Summary      Delete a user
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Usuario ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /usuarios/{id} [delete]
func (h *UsuarioHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, messageResponse{Message: "usuario eliminado"})
}

// ToggleActivo handles PATCH /api/usuarios/:id/toggle-activo.
//
// @Summary      Flip a user's activo flag
// @Tags         usuarios
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Usuario ID"
// @Success      200  {object}  domain.Usuario
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /usuarios/{id}/toggle-activo [patch]
func (h *UsuarioHandler) ToggleActivo(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.service.ToggleActivo(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	metrics.TogglesTotal.WithLabelValues(domain.EntidadUsuario).Inc()
	return c.JSON(http.StatusOK, u)
}
