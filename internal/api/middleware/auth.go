package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
	"github.com/mykinyozi/kinyozi-api/internal/pkg/metrics"
)

const (
	HeaderAPIKey      = "X-API-KEY"
	HeaderAccessToken = "x-access-token"

	ctxShop      = "auth.shop"
	ctxEmployee  = "auth.employee"
	ctxPrincipal = "auth.principal"
)

// APIKey rejects requests whose X-API-KEY header does not match key.
func APIKey(key string) echo.MiddlewareFunc {
	expected := []byte(key)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(HeaderAPIKey)
			if got == "" {
				metrics.AuthFailuresTotal.WithLabelValues("api_key", "missing").Inc()
				return domain.ErrAPIKeyMissing
			}
			if subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				metrics.AuthFailuresTotal.WithLabelValues("api_key", "invalid").Inc()
				return domain.ErrAPIKeyInvalid
			}
			return next(c)
		}
	}
}

// ShopSession resolves the session token to a shop owner. Employee tokens are
// rejected as invalid.
func ShopSession(resolver ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := accessToken(c)
			if token == "" {
				return reject("shop", domain.ErrTokenMissing)
			}

			shop, err := resolver.ResolveShop(c.Request().Context(), token)
			if err != nil {
				return reject("shop", err)
			}

			c.Set(ctxShop, shop)
			c.Set(ctxPrincipal, domain.ShopPrincipal(shop))
			return next(c)
		}
	}
}

// EmployeeSession resolves the session token to an employee. Shop tokens are
// rejected as invalid.
func EmployeeSession(resolver ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := accessToken(c)
			if token == "" {
				return reject("employee", domain.ErrTokenMissing)
			}

			emp, err := resolver.ResolveEmployee(c.Request().Context(), token)
			if err != nil {
				return reject("employee", err)
			}

			c.Set(ctxEmployee, emp)
			c.Set(ctxPrincipal, domain.EmployeePrincipal(emp))
			return next(c)
		}
	}
}

func ShopFrom(c echo.Context) (*domain.Shop, bool) {
	shop, ok := c.Get(ctxShop).(*domain.Shop)
	return shop, ok && shop != nil
}

func EmployeeFrom(c echo.Context) (*domain.Employee, bool) {
	emp, ok := c.Get(ctxEmployee).(*domain.Employee)
	return emp, ok && emp != nil
}

// PrincipalFrom returns the identity stored by either session gate. A route
// mounted without a gate yields domain.ErrTokenMissing.
func PrincipalFrom(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(ctxPrincipal).(domain.Principal)
	if !ok {
		return domain.Principal{}, domain.ErrTokenMissing
	}
	return p, nil
}

// accessToken prefers x-access-token and falls back to a bearer header.
func accessToken(c echo.Context) string {
	h := c.Request().Header
	if tok := strings.TrimSpace(h.Get(HeaderAccessToken)); tok != "" {
		return tok
	}

	parts := strings.SplitN(h.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func reject(gate string, err error) error {
	reason := "error"
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		reason = "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		reason = "expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		reason = "invalid"
	}
	metrics.AuthFailuresTotal.WithLabelValues(gate, reason).Inc()
	return err
}
