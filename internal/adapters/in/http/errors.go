package http

import (
	"context"
	"errors"
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/courier"
	"parcelhub/internal/core/domain/model/parcel"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrParcelNotFound),
		errors.Is(err, commands.ErrCourierNotFound):
		return http.StatusNotFound
	case errors.Is(err, parcel.ErrInvalidTransition),
		errors.Is(err, parcel.ErrAlreadyAssigned),
		errors.Is(err, courier.ErrCourierUnavailable),
		errors.Is(err, commands.ErrCourierAlreadyExists),
		errors.Is(err, errs.ErrObjectExists),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, parcel.ErrNotAssignedToCourier),
		errors.Is(err, parcel.ErrNotOwnedByCustomer):
		return http.StatusForbidden
	case errors.Is(err, parcel.ErrPreconditionFailed):
		return http.StatusPreconditionFailed
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleError is installed as echo's HTTPErrorHandler.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := http.StatusInternalServerError, "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = http.StatusText(code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
	} else if code = statusFor(err); code != http.StatusInternalServerError {
		message = err.Error()
	}

	ctx := c.Request().Context()
	if code >= http.StatusInternalServerError {
		if errors.Is(err, context.DeadlineExceeded) {
			message = "storage timeout"
		}
		s.logger.ErrorContext(ctx, "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, Error{Code: code, Message: message})
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to write error response", "error", err)
	}
}
