package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

const createEmployeeBody = `{"firstName":"Amani","lastName":"Otieno","email":"amani@fade.co.ke","role":"barber","salary":20000}`

func TestEmployeeHandler_Create_Success(t *testing.T) {
	stub := &stubEmployeeService{
		createFn: func(ctx context.Context, p domain.Principal, shopPublicID string, in ports.CreateEmployeeInput) (*domain.Employee, error) {
			if shopPublicID != "shop-a" || in.Email != "amani@fade.co.ke" || in.Salary == nil || *in.Salary != 20000 {
				t.Fatalf("unexpected input: %s %+v", shopPublicID, in)
			}
			return &domain.Employee{PublicID: "emp-1"}, nil
		},
	}

	rec, err := serve(t, NewEmployeeHandler(stub).Create, request{
		method: http.MethodPost,
		target: "/API/employees/create/shop-a",
		body:   createEmployeeBody,
		params: map[string]string{"public_id": "shop-a"},
		owner:  true,
	})
	expectStatus(t, rec, err, http.StatusCreated)

	var resp createEmployeeResponse
	decode(t, rec, &resp)
	if resp.PublicID != "emp-1" {
		t.Fatalf("expected emp-1, got %q", resp.PublicID)
	}
}

// A failed onboarding email keeps the employee: 502 with the new id.
func TestEmployeeHandler_Create_MailFailureKeepsEmployee(t *testing.T) {
	stub := &stubEmployeeService{
		createFn: func(context.Context, domain.Principal, string, ports.CreateEmployeeInput) (*domain.Employee, error) {
			return &domain.Employee{PublicID: "emp-1"}, fmt.Errorf("%w: smtp down", domain.ErrDeliveryFailed)
		},
	}

	rec, err := serve(t, NewEmployeeHandler(stub).Create, request{
		method: http.MethodPost,
		target: "/API/employees/create/shop-a",
		body:   createEmployeeBody,
		params: map[string]string{"public_id": "shop-a"},
		owner:  true,
	})
	expectStatus(t, rec, err, http.StatusBadGateway)

	var resp createEmployeeResponse
	decode(t, rec, &resp)
	if resp.PublicID != "emp-1" || resp.Message == "" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestEmployeeHandler_Create_ConflictPassesThrough(t *testing.T) {
	stub := &stubEmployeeService{
		createFn: func(context.Context, domain.Principal, string, ports.CreateEmployeeInput) (*domain.Employee, error) {
			return nil, fmt.Errorf("create employee: %w", domain.ErrConflict)
		},
	}

	_, err := serve(t, NewEmployeeHandler(stub).Create, request{
		method: http.MethodPost,
		target: "/API/employees/create/shop-a",
		body:   createEmployeeBody,
		params: map[string]string{"public_id": "shop-a"},
		owner:  true,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestEmployeeHandler_Login_IncludesRole(t *testing.T) {
	stub := &stubEmployeeService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "tok", PublicID: "emp-1", ShopPublicID: "shop-a", Role: "barber"}, nil
		},
	}

	rec, err := serve(t, NewEmployeeHandler(stub).Login, request{
		method: http.MethodPost,
		target: "/API/employees/login",
		body:   `{"email":"amani@fade.co.ke","password":"secret1"}`,
	})
	expectStatus(t, rec, err, http.StatusOK)

	var resp loginResponse
	decode(t, rec, &resp)
	if resp.Role != "barber" || resp.ShopPublicID != "shop-a" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestEmployeeHandler_Login_PasswordNotSet(t *testing.T) {
	stub := &stubEmployeeService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrPasswordNotSet
		},
	}

	_, err := serve(t, NewEmployeeHandler(stub).Login, request{
		method: http.MethodPost,
		target: "/API/employees/login",
		body:   `{"email":"amani@fade.co.ke","password":"anything"}`,
	})
	if !errors.Is(err, domain.ErrPasswordNotSet) {
		t.Fatalf("expected ErrPasswordNotSet, got %v", err)
	}
}
