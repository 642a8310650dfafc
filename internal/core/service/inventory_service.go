package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

const lowStockTitle = "Low Stock Alert"

// InventoryService tracks product levels. Moving a product into a low level
// records a notification and alerts the owner by email, and by SMS when an
// SMS sender is configured.
type InventoryService struct {
	items         ports.InventoryRepository
	shops         ports.ShopRepository
	notifications ports.NotificationRepository
	authz         ports.Authorizer
	mailer        ports.Mailer
	sms           ports.SMSSender
	log           zerolog.Logger
	now           func() time.Time
}

// NewInventoryService wires the service. sms may be nil.
func NewInventoryService(
	items ports.InventoryRepository,
	shops ports.ShopRepository,
	notifications ports.NotificationRepository,
	authz ports.Authorizer,
	mailer ports.Mailer,
	sms ports.SMSSender,
	log zerolog.Logger,
) *InventoryService {
	return &InventoryService{
		items:         items,
		shops:         shops,
		notifications: notifications,
		authz:         authz,
		mailer:        mailer,
		sms:           sms,
		log:           log,
		now:           time.Now,
	}
}

// Create records a product. A delivery error is returned together with the
// stored item when the alert email fails.
func (s *InventoryService) Create(ctx context.Context, p domain.Principal, shopPublicID, productName string, level int) (*domain.Inventory, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := &domain.Inventory{
		ShopID:       p.ShopID,
		ProductName:  strings.TrimSpace(productName),
		ProductLevel: level,
		ModifiedAt:   &now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create inventory: %w", err)
	}

	if domain.IsLowStock(level) {
		if err := s.alert(ctx, shopPublicID, item); err != nil {
			return item, err
		}
	}
	return item, nil
}

func (s *InventoryService) List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Inventory, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	return s.items.ListByShop(ctx, p.ShopID)
}

func (s *InventoryService) UpdateLevel(ctx context.Context, p domain.Principal, id uint, level int) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindInventory, ID: id}); err != nil {
		return err
	}

	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	previous := item.ProductLevel

	now := s.now().UTC()
	if err := s.items.UpdateLevel(ctx, id, level, now); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	item.ProductLevel = level
	item.ModifiedAt = &now

	if level != previous && domain.IsLowStock(level) {
		return s.alert(ctx, p.ShopPublicID, item)
	}
	return nil
}

func (s *InventoryService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindInventory, ID: id}); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

func (s *InventoryService) alert(ctx context.Context, shopPublicID string, item *domain.Inventory) error {
	shop, err := s.shops.FindByPublicID(ctx, shopPublicID)
	if err != nil {
		return fmt.Errorf("low stock alert: %w", err)
	}

	label := domain.LevelLabel(item.ProductLevel)
	message := fmt.Sprintf("%s is running %s.", item.ProductName, strings.ToLower(label))

	if err := s.notifications.Create(ctx, &domain.Notification{
		ShopID:    shop.ID,
		Title:     lowStockTitle,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("low stock alert: %w", err)
	}

	if s.sms != nil && shop.Phone != "" {
		if err := s.sms.Send(ctx, shop.Phone, "KINYOZI APP ALERT: "+message); err != nil {
			s.log.Warn().Err(err).Str("shop", shop.PublicID).Msg("low stock sms failed")
		}
	}

	vars := map[string]any{
		"name":      shop.Name,
		"inventory": item.ProductName,
		"level":     label,
	}
	if err := s.mailer.Send(ctx, domain.TemplateLowInventory, shop.Email, vars); err != nil {
		s.log.Warn().Err(err).Str("shop", shop.PublicID).Msg("low stock email failed")
		return deliveryFailed(err)
	}

	s.log.Info().Str("shop", shop.PublicID).Str("product", item.ProductName).Str("level", label).Msg("low stock alert sent")
	return nil
}
