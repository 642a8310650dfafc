package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	// --- 401: gates and credentials ---
	case errors.Is(err, domain.ErrAPIKeyMissing):
		return http.StatusUnauthorized, "API KEY is missing"
	case errors.Is(err, domain.ErrAPIKeyInvalid):
		return http.StatusUnauthorized, "Invalid API KEY"
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, "Token is missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Expired Session! Login Again"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid Token. Please Login Again"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect email or password"
	case errors.Is(err, domain.ErrPasswordNotSet):
		return http.StatusUnauthorized, "Password not set. Complete account setup"

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have permissions to perform this action"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Resource not found"

	// --- 409: state conflicts ---
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, domain.ErrHasDependents):
		return http.StatusConflict, "Resource is still referenced and cannot be deleted"
	case errors.Is(err, domain.ErrAlreadyActive):
		return http.StatusConflict, "Account already set up. Please login"

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()

	// --- 502: downstream dependencies ---
	case errors.Is(err, domain.ErrDeliveryFailed):
		return http.StatusBadGateway, "Email delivery failed. Please try again"
	case errors.Is(err, domain.ErrBridgeUnavailable):
		return http.StatusBadGateway, "Mobile app is unavailable. Please try again"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
