package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/service"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// tokenResolver looks principals up in memory after validating tokens with
// the real token service.
type tokenResolver struct {
	tokens    *service.TokenService
	shops     map[string]*domain.Shop
	employees map[string]*domain.Employee
}

func (r *tokenResolver) ResolveShop(_ context.Context, token string) (*domain.Shop, error) {
	id, err := r.tokens.Validate(token, domain.PurposeShopSession)
	if err != nil {
		return nil, err
	}
	shop, ok := r.shops[id]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return shop, nil
}

func (r *tokenResolver) ResolveEmployee(_ context.Context, token string) (*domain.Employee, error) {
	id, err := r.tokens.Validate(token, domain.PurposeEmployeeSession)
	if err != nil {
		return nil, err
	}
	emp, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return emp, nil
}

func newResolver(now func() time.Time) *tokenResolver {
	return &tokenResolver{
		tokens: service.NewTokenService("secret", now),
		shops: map[string]*domain.Shop{
			"shop-a": {ID: 1, PublicID: "shop-a", Name: "Fade Masters"},
		},
		employees: map[string]*domain.Employee{
			"emp-1": {ID: 7, PublicID: "emp-1", ShopID: 1, ShopPublicID: "shop-a"},
		},
	}
}

func issue(t *testing.T, r *tokenResolver, id string, purpose domain.TokenPurpose) string {
	t.Helper()
	tok, err := r.tokens.Issue(id, purpose)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// run passes a request with headers through mw and returns the error the chain
// produced and whether the final handler was reached.
func run(mw echo.MiddlewareFunc, headers map[string]string, next echo.HandlerFunc) (error, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		if next != nil {
			return next(c)
		}
		return nil
	})(c)
	return err, called
}

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    error
	}{
		{"missing", nil, domain.ErrAPIKeyMissing},
		{"wrong", map[string]string{HeaderAPIKey: "nope"}, domain.ErrAPIKeyInvalid},
		{"prefix of key", map[string]string{HeaderAPIKey: "key-12"}, domain.ErrAPIKeyInvalid},
		{"valid", map[string]string{HeaderAPIKey: "key-123"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, called := run(APIKey("key-123"), tt.headers, nil)
			if err != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if called != (tt.want == nil) {
				t.Fatalf("next called = %v", called)
			}
		})
	}
}

func TestShopSession_ValidToken(t *testing.T) {
	r := newResolver(func() time.Time { return testNow })
	tok := issue(t, r, "shop-a", domain.PurposeShopSession)

	err, called := run(ShopSession(r), map[string]string{HeaderAccessToken: tok}, func(c echo.Context) error {
		shop, ok := ShopFrom(c)
		if !ok || shop.PublicID != "shop-a" {
			t.Fatalf("shop not stored on context")
		}
		p, err := PrincipalFrom(c)
		if err != nil || p.Role != domain.RoleShop || p.ShopID != 1 {
			t.Fatalf("unexpected principal %+v, %v", p, err)
		}
		if _, ok := EmployeeFrom(c); ok {
			t.Fatalf("employee must not be set by the shop gate")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestShopSession_BearerFallback(t *testing.T) {
	r := newResolver(func() time.Time { return testNow })
	tok := issue(t, r, "shop-a", domain.PurposeShopSession)

	err, called := run(ShopSession(r), map[string]string{"Authorization": "Bearer " + tok}, nil)
	if err != nil || !called {
		t.Fatalf("expected bearer token to pass, got %v", err)
	}
}

func TestShopSession_Rejections(t *testing.T) {
	r := newResolver(func() time.Time { return testNow })
	employeeTok := issue(t, r, "emp-1", domain.PurposeEmployeeSession)
	resetTok := issue(t, r, "shop-a", domain.PurposePasswordReset)
	unknownTok := issue(t, r, "shop-gone", domain.PurposeShopSession)

	tests := []struct {
		name    string
		headers map[string]string
		want    error
	}{
		{"missing", nil, domain.ErrTokenMissing},
		{"non-bearer authorization", map[string]string{"Authorization": "Basic abc"}, domain.ErrTokenMissing},
		{"garbage", map[string]string{HeaderAccessToken: "not.a.jwt"}, domain.ErrTokenInvalid},
		{"employee token", map[string]string{HeaderAccessToken: employeeTok}, domain.ErrTokenInvalid},
		{"reset token", map[string]string{HeaderAccessToken: resetTok}, domain.ErrTokenInvalid},
		{"deleted shop", map[string]string{HeaderAccessToken: unknownTok}, domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, called := run(ShopSession(r), tt.headers, nil)
			if err != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if called {
				t.Fatalf("next must not be called")
			}
		})
	}
}

func TestShopSession_ExpiredIsNeverInvalid(t *testing.T) {
	now := testNow
	r := newResolver(func() time.Time { return now })
	tok := issue(t, r, "shop-a", domain.PurposeShopSession)

	now = testNow.Add(domain.SessionTTL + time.Second)

	err, _ := run(ShopSession(r), map[string]string{HeaderAccessToken: tok}, nil)
	if err != domain.ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestEmployeeSession(t *testing.T) {
	r := newResolver(func() time.Time { return testNow })
	empTok := issue(t, r, "emp-1", domain.PurposeEmployeeSession)
	shopTok := issue(t, r, "shop-a", domain.PurposeShopSession)

	err, called := run(EmployeeSession(r), map[string]string{HeaderAccessToken: empTok}, func(c echo.Context) error {
		emp, ok := EmployeeFrom(c)
		if !ok || emp.PublicID != "emp-1" {
			t.Fatalf("employee not stored on context")
		}
		p, _ := PrincipalFrom(c)
		if p.Role != domain.RoleEmployee || p.ShopPublicID != "shop-a" {
			t.Fatalf("unexpected principal %+v", p)
		}
		return nil
	})
	if err != nil || !called {
		t.Fatalf("expected employee token to pass, got %v", err)
	}

	err, called = run(EmployeeSession(r), map[string]string{HeaderAccessToken: shopTok}, nil)
	if err != domain.ErrTokenInvalid || called {
		t.Fatalf("shop token must not resolve an employee, got %v", err)
	}
}

// The gate accepts exactly the tokens the token service validates.
func TestShopSession_MatchesTokenValidation(t *testing.T) {
	now := testNow
	r := newResolver(func() time.Time { return now })
	valid := issue(t, r, "shop-a", domain.PurposeShopSession)
	setup := issue(t, r, "shop-a", domain.PurposeEmployeeSetup)
	tampered := valid[:len(valid)-2] + "xx"

	for _, tok := range []string{valid, setup, tampered, "", "a.b.c"} {
		_, wantErr := r.tokens.Validate(tok, domain.PurposeShopSession)
		gotErr, called := run(ShopSession(r), map[string]string{HeaderAccessToken: tok}, nil)

		if (wantErr == nil) != called {
			t.Fatalf("token %q: validator err=%v, gate passed=%v", tok, wantErr, called)
		}
		if tok != "" && wantErr != gotErr {
			t.Fatalf("token %q: validator err=%v, gate err=%v", tok, wantErr, gotErr)
		}
	}
}

func TestPrincipalFrom_WithoutGate(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, err := PrincipalFrom(c); err != domain.ErrTokenMissing {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}
