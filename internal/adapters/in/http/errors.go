package http

import (
	"errors"
	"net/http"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps the error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler replaces echo's default handler so every error leaves as an
// Error body. Internal failures are logged and hidden from the client.
func (s *Server) ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		code = statusOf(err)
		if code != http.StatusInternalServerError {
			message = err.Error()
		}
	}

	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, Error{Code: code, Message: message})
	}
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Failed to write error response", "error", err)
	}
}
