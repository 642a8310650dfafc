package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"api key missing", domain.ErrAPIKeyMissing, http.StatusUnauthorized, "API KEY is missing"},
		{"api key invalid", domain.ErrAPIKeyInvalid, http.StatusUnauthorized, "Invalid API KEY"},
		{"token missing", domain.ErrTokenMissing, http.StatusUnauthorized, "Token is missing"},
		{"token expired", domain.ErrTokenExpired, http.StatusUnauthorized, "Expired Session! Login Again"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, "Invalid Token. Please Login Again"},
		{"password not set", domain.ErrPasswordNotSet, http.StatusUnauthorized, "Password not set. Complete account setup"},
		{"wrapped forbidden", fmt.Errorf("update shop: %w", domain.ErrForbidden), http.StatusForbidden, ""},
		{"not found", domain.ErrNotFound, http.StatusNotFound, ""},
		{"conflict", domain.ErrConflict, http.StatusConflict, ""},
		{"has dependents", domain.ErrHasDependents, http.StatusConflict, ""},
		{"already active", domain.ErrAlreadyActive, http.StatusConflict, ""},
		{"validation", fmt.Errorf("%w: name is required", domain.ErrValidation), http.StatusBadRequest, "validation failed: name is required"},
		{"delivery", fmt.Errorf("%w: dial tcp", domain.ErrDeliveryFailed), http.StatusBadGateway, "Email delivery failed. Please try again"},
		{"bridge", domain.ErrBridgeUnavailable, http.StatusBadGateway, ""},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Message == "" {
				t.Fatalf("empty message")
			}
			if tt.msg != "" && resp.Message != tt.msg {
				t.Fatalf("expected %q, got %q", tt.msg, resp.Message)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusNoContent)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNotFound, c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected committed 204 to stand, got %d", rec.Code)
	}
}
