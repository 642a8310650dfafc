package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

func TestSessionService_ResolvesMatchingTable(t *testing.T) {
	shops := newStubShopRepo()
	shops.add("shop-a", "a@example.com")
	employees := newStubEmployeeRepo()
	_ = employees.Create(context.Background(), &domain.Employee{PublicID: "emp-a", ShopID: 1, ShopPublicID: "shop-a"})

	tokens := NewTokenService("secret", nil)
	svc := NewSessionService(tokens, shops, employees)

	shopToken, _ := tokens.Issue("shop-a", domain.PurposeShopSession)
	shop, err := svc.ResolveShop(context.Background(), shopToken)
	if err != nil {
		t.Fatalf("ResolveShop returned error: %v", err)
	}
	if shop.PublicID != "shop-a" {
		t.Fatalf("unexpected shop: %+v", shop)
	}

	empToken, _ := tokens.Issue("emp-a", domain.PurposeEmployeeSession)
	emp, err := svc.ResolveEmployee(context.Background(), empToken)
	if err != nil {
		t.Fatalf("ResolveEmployee returned error: %v", err)
	}
	if emp.ShopPublicID != "shop-a" {
		t.Fatalf("unexpected employee: %+v", emp)
	}

	if _, err := svc.ResolveEmployee(context.Background(), shopToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("shop token must not resolve an employee, got %v", err)
	}
	if _, err := svc.ResolveShop(context.Background(), empToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("employee token must not resolve a shop, got %v", err)
	}
}

func TestSessionService_SameIDInBothTables(t *testing.T) {
	shops := newStubShopRepo()
	shops.add("dup", "a@example.com")
	employees := newStubEmployeeRepo()
	_ = employees.Create(context.Background(), &domain.Employee{PublicID: "dup", ShopID: 9, ShopPublicID: "elsewhere"})

	tokens := NewTokenService("secret", nil)
	svc := NewSessionService(tokens, shops, employees)

	empToken, _ := tokens.Issue("dup", domain.PurposeEmployeeSession)
	if _, err := svc.ResolveShop(context.Background(), empToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSessionService_UnknownPrincipal(t *testing.T) {
	tokens := NewTokenService("secret", nil)
	svc := NewSessionService(tokens, newStubShopRepo(), newStubEmployeeRepo())

	token, _ := tokens.Issue("deleted-shop", domain.PurposeShopSession)
	if _, err := svc.ResolveShop(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
