package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type inventoryFixture struct {
	shop          *domain.Shop
	owner         domain.Principal
	owners        *stubOwnership
	items         *stubInventoryRepo
	notifications *stubNotificationRepo
	mailer        *stubMailer
	sms           *stubSMS
	svc           *InventoryService
}

func newInventoryFixture() *inventoryFixture {
	shops := newStubShopRepo()
	shop := shops.add("shop-a", "owner@example.com")
	shop.Phone = "+254700000000"

	owners := newStubOwnership()
	items := newStubInventoryRepo()
	notifications := &stubNotificationRepo{}
	mailer := &stubMailer{}
	sms := &stubSMS{}
	svc := NewInventoryService(items, shops, notifications, NewAuthorizer(owners), mailer, sms, zerolog.Nop())

	return &inventoryFixture{
		shop:          shop,
		owner:         domain.ShopPrincipal(shop),
		owners:        owners,
		items:         items,
		notifications: notifications,
		mailer:        mailer,
		sms:           sms,
		svc:           svc,
	}
}

func TestInventoryService_Create_NormalLevelNoAlert(t *testing.T) {
	f := newInventoryFixture()

	if _, err := f.svc.Create(context.Background(), f.owner, f.shop.PublicID, "Aftershave", domain.LevelNormal); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(f.mailer.sent) != 0 || len(f.notifications.created) != 0 || len(f.sms.sent) != 0 {
		t.Fatalf("no alert expected for a normal level")
	}
}

func TestInventoryService_Create_LowLevelAlerts(t *testing.T) {
	f := newInventoryFixture()

	item, err := f.svc.Create(context.Background(), f.owner, f.shop.PublicID, "Clipper Oil", domain.LevelCriticallyLow)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if item.ID == 0 {
		t.Fatalf("expected stored item")
	}

	if len(f.notifications.created) != 1 || f.notifications.created[0].Title != "Low Stock Alert" {
		t.Fatalf("expected a low stock notification, got %+v", f.notifications.created)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(f.mailer.sent))
	}
	sent := f.mailer.sent[0]
	if sent.template != domain.TemplateLowInventory || sent.recipient != f.shop.Email || sent.vars["level"] != "CRITICALLY LOW" {
		t.Fatalf("unexpected email: %+v", sent)
	}
	if len(f.sms.sent) != 1 {
		t.Fatalf("expected one sms, got %d", len(f.sms.sent))
	}
}

func TestInventoryService_Create_MailFailureKeepsItem(t *testing.T) {
	f := newInventoryFixture()
	f.mailer.err = errBoom

	item, err := f.svc.Create(context.Background(), f.owner, f.shop.PublicID, "Clipper Oil", domain.LevelLow)
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}
	if item == nil {
		t.Fatalf("expected the stored item alongside the delivery error")
	}
	if _, findErr := f.items.FindByID(context.Background(), item.ID); findErr != nil {
		t.Fatalf("item should remain stored: %v", findErr)
	}
}

func TestInventoryService_Create_SMSFailureIsNotFatal(t *testing.T) {
	f := newInventoryFixture()
	f.sms.err = errBoom

	if _, err := f.svc.Create(context.Background(), f.owner, f.shop.PublicID, "Clipper Oil", domain.LevelLow); err != nil {
		t.Fatalf("sms failure must not fail the request: %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("email must still be sent")
	}
}

func TestInventoryService_UpdateLevel_AlertsOnlyOnChange(t *testing.T) {
	f := newInventoryFixture()
	ctx := context.Background()

	item, err := f.svc.Create(ctx, f.owner, f.shop.PublicID, "Clipper Oil", domain.LevelNormal)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	f.owners.set(domain.KindInventory, item.ID, f.shop.PublicID)

	if err := f.svc.UpdateLevel(ctx, f.owner, item.ID, domain.LevelLow); err != nil {
		t.Fatalf("UpdateLevel returned error: %v", err)
	}
	if err := f.svc.UpdateLevel(ctx, f.owner, item.ID, domain.LevelLow); err != nil {
		t.Fatalf("UpdateLevel returned error: %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one alert for one transition, got %d", len(f.mailer.sent))
	}
}

func TestInventoryService_UpdateLevel_ForeignItemForbidden(t *testing.T) {
	f := newInventoryFixture()
	f.owners.set(domain.KindInventory, 42, "shop-b")

	if err := f.svc.UpdateLevel(context.Background(), f.owner, 42, domain.LevelLow); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
