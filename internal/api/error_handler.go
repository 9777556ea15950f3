package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/municipio/registro-eventos/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors and echoes their message with a 500.
//   - Renders a consistent JSON envelope: {"error": "<mensaje>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

var statusByError = []struct {
	err  error
	code int
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},

	{domain.ErrInactiveUser, http.StatusForbidden},
	{domain.ErrForbidden, http.StatusForbidden},

	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrResidentNotFound, http.StatusNotFound},
	{domain.ErrEventoNotFound, http.StatusNotFound},
	{domain.ErrRegistroNotFound, http.StatusNotFound},
	{domain.ErrSubsecretariaNotFound, http.StatusNotFound},
	{domain.ErrTipoNotFound, http.StatusNotFound},
	{domain.ErrSubtipoNotFound, http.StatusNotFound},

	{domain.ErrAlreadyRegistered, http.StatusBadRequest},
	{domain.ErrDuplicateDocumento, http.StatusBadRequest},
	{domain.ErrDuplicateEmail, http.StatusBadRequest},
	{domain.ErrDuplicateNombre, http.StatusBadRequest},
	{domain.ErrInUse, http.StatusBadRequest},
	{domain.ErrInvalidReference, http.StatusBadRequest},
	{domain.ErrSubtipoMismatch, http.StatusBadRequest},
	{domain.ErrSelfOperation, http.StatusBadRequest},
	{domain.ErrInvalidRole, http.StatusBadRequest},
	{domain.ErrSubsecretariaReq, http.StatusBadRequest},
	{domain.ErrEmptySearch, http.StatusBadRequest},
	{domain.ErrWeakPassword, http.StatusBadRequest},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.code, m.err.Error()
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}
