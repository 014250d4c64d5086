package server

import (
	"errors"
	"fmt"
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var errorStatus = []struct {
	kind   error
	status int
}{
	{model.ErrInvalidInput, http.StatusBadRequest},
	{model.ErrCouponUnavailable, http.StatusBadRequest},
	{model.ErrUnauthorized, http.StatusUnauthorized},
	{model.ErrForbidden, http.StatusForbidden},
	{model.ErrNotFound, http.StatusNotFound},
	{model.ErrAlreadyExists, http.StatusConflict},
	{model.ErrInUse, http.StatusConflict},
	{model.ErrInsufficientStock, http.StatusConflict},
	{model.ErrNotConfigured, http.StatusServiceUnavailable},
}

// statusFor maps an error returned by a handler to its HTTP status and the
// message the client sees. Unclassified errors become a generic 500.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.kind) {
			var domainErr *model.Error
			if errors.As(err, &domainErr) {
				return m.status, domainErr.Msg
			}
			return m.status, m.kind.Error()
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

func errorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := statusFor(err)
		event := log.Debug()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Int("status", status).
			Msg("request failed")

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, dto.Response{Success: false, Message: message})
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}
