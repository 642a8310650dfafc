package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

type NotificationService struct {
	notifications ports.NotificationRepository
	shops         ports.ShopRepository
	authz         ports.Authorizer
	now           func() time.Time
}

func NewNotificationService(notifications ports.NotificationRepository, shops ports.ShopRepository, authz ports.Authorizer) *NotificationService {
	return &NotificationService{notifications: notifications, shops: shops, authz: authz, now: time.Now}
}

func (s *NotificationService) Create(ctx context.Context, shopPublicID, title, message string) (*domain.Notification, error) {
	shop, err := s.shops.FindByPublicID(ctx, shopPublicID)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	n := &domain.Notification{
		ShopID:    shop.ID,
		Title:     strings.TrimSpace(title),
		Message:   strings.TrimSpace(message),
		CreatedAt: s.now().UTC(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindNotification, ID: id}); err != nil {
		return err
	}
	return s.notifications.MarkRead(ctx, id)
}

func (s *NotificationService) List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Notification, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	return s.notifications.ListByShop(ctx, p.ShopID)
}

func (s *NotificationService) Get(ctx context.Context, p domain.Principal, id uint) (*domain.Notification, error) {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindNotification, ID: id}); err != nil {
		return nil, err
	}
	return s.notifications.FindByID(ctx, id)
}

func (s *NotificationService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindNotification, ID: id}); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}
