package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

func TestNotificationService_Create(t *testing.T) {
	shops := newStubShopRepo()
	shop := shops.add("shop-a", "a@example.com")
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, shops, NewAuthorizer(newStubOwnership()))
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("EAT", 3*3600))
	svc.now = fixedClock(now)

	n, err := svc.Create(context.Background(), "shop-a", " Welcome ", "Your shop is live")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if n.ShopID != shop.ID || n.Title != "Welcome" || n.Read {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if n.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", n.CreatedAt)
	}
}

func TestNotificationService_Create_UnknownShop(t *testing.T) {
	svc := NewNotificationService(&stubNotificationRepo{}, newStubShopRepo(), NewAuthorizer(newStubOwnership()))

	if _, err := svc.Create(context.Background(), "missing", "t", "m"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotificationService_OtherShopForbidden(t *testing.T) {
	owners := newStubOwnership()
	owners.set(domain.KindNotification, 2, "shop-b")
	svc := NewNotificationService(&stubNotificationRepo{}, newStubShopRepo(), NewAuthorizer(owners))
	owner := domain.Principal{Role: domain.RoleShop, PublicID: "shop-a", ShopID: 1, ShopPublicID: "shop-a"}

	if _, err := svc.Get(context.Background(), owner, 2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on get, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), owner, 2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on mark read, got %v", err)
	}
	if _, err := svc.List(context.Background(), owner, "shop-b"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on list, got %v", err)
	}
}
