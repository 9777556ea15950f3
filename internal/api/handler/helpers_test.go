package handler

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/municipio/registro-eventos/internal/api/middleware"
)

type caller struct {
	id  int64
	rol string
}

var admin = &caller{id: 1, rol: "admin"}

// newContext builds an echo context with the validator installed and, when
// who is non-nil, the claims the Auth middleware would have set.
func newContext(method, target, body string, who *caller) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if who != nil {
		c.Set(middleware.CtxUserID, who.id)
		c.Set(middleware.CtxRol, who.rol)
		c.Set(middleware.CtxEmail, "admin@municipio.gob.ar")
		c.Set(middleware.CtxNombre, "Admin")
	}
	return c, rec
}

func withID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

// httpCode returns the status carried by an *echo.HTTPError, or 0.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

