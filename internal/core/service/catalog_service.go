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

// CatalogService manages a shop's services and the sales recorded against them.
type CatalogService struct {
	shops    ports.ShopRepository
	services ports.ServiceRepository
	sales    ports.SaleRepository
	authz    ports.Authorizer
	log      zerolog.Logger
	now      func() time.Time
}

func NewCatalogService(
	shops ports.ShopRepository,
	services ports.ServiceRepository,
	sales ports.SaleRepository,
	authz ports.Authorizer,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{shops: shops, services: services, sales: sales, authz: authz, log: log, now: time.Now}
}

func (s *CatalogService) CreateServices(ctx context.Context, p domain.Principal, shopPublicID string, in []ports.ServiceInput) ([]string, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}

	current, err := s.services.ListByShop(ctx, p.ShopID)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}
	seen := make(map[string]struct{}, len(current)+len(in))
	for _, svc := range current {
		seen[strings.ToLower(svc.Name)] = struct{}{}
	}

	now := s.now().UTC()
	existing := []string{}
	batch := make([]domain.Service, 0, len(in))
	for _, item := range in {
		name := strings.TrimSpace(item.Name)
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			existing = append(existing, item.Name)
			continue
		}
		seen[key] = struct{}{}
		batch = append(batch, domain.Service{
			ShopID:      p.ShopID,
			Name:        name,
			Description: strings.TrimSpace(item.Description),
			Charges:     item.Charges,
			ModifiedAt:  &now,
		})
	}

	if len(batch) > 0 {
		if err := s.services.CreateBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("create services: %w", err)
		}
	}
	return existing, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, p domain.Principal, id uint, in ports.ServiceInput) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindService, ID: id}); err != nil {
		return err
	}

	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	now := s.now().UTC()
	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = strings.TrimSpace(in.Description)
	svc.Charges = in.Charges
	svc.ModifiedAt = &now
	return s.services.Update(ctx, svc)
}

func (s *CatalogService) DeleteService(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindService, ID: id}); err != nil {
		return err
	}
	return s.services.DeleteIfUnused(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, shopPublicID string) ([]domain.Service, error) {
	shop, err := s.shops.FindByPublicID(ctx, shopPublicID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return s.services.ListByShop(ctx, shop.ID)
}

// RecordSale stamps the sale with the current UTC month and year. Owners and
// employees both record into their own shop.
func (s *CatalogService) RecordSale(ctx context.Context, p domain.Principal, shopPublicID string, in ports.SaleInput) (*domain.Sale, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindService, ID: in.ServiceID}); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	serviceID := in.ServiceID
	sale := &domain.Sale{
		ShopID:        p.ShopID,
		ServiceID:     &serviceID,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Description:   strings.TrimSpace(in.Description),
		Month:         int(now.Month()),
		Year:          now.Year(),
		CreatedAt:     now,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	s.log.Debug().Str("shop", shopPublicID).Str("by", string(p.Role)).Uint("service", serviceID).Msg("sale recorded")
	return sale, nil
}

func (s *CatalogService) FetchSales(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.SaleView, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	return s.sales.ListByShop(ctx, p.ShopID, period)
}

func (s *CatalogService) DeleteSale(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindSale, ID: id}); err != nil {
		return err
	}
	return s.sales.Delete(ctx, id)
}
