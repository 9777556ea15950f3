package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/api/middleware"
	"github.com/municipio/registro-eventos/internal/core/domain"
)

// identity extracts the caller injected by the Auth middleware and performs a
// fast-fail check before any service call: a zero id or empty role means the
// middleware did not run or the token carried no usable identity.
func identity(c echo.Context) (domain.Identity, error) {
	id, _ := c.Get(middleware.CtxUserID).(int64)
	rol, _ := c.Get(middleware.CtxRol).(string)
	if id == 0 || rol == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token sin identidad")
	}
	email, _ := c.Get(middleware.CtxEmail).(string)
	nombre, _ := c.Get(middleware.CtxNombre).(string)
	return domain.Identity{UserID: id, Email: email, Rol: rol, Nombre: nombre}, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id inválido")
	}
	return id, nil
}

// queryInt64 parses an optional positive integer query parameter.
func queryInt64(c echo.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" inválido")
	}
	return &v, nil
}

// queryBool accepts true/false and the 1/0 the frontend sends.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" inválido")
	}
	return &v, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "datos inválidos")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func deref64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
