package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

// DashboardService assembles the owner dashboard. Nothing is cached; every
// call recomputes from committed data.
type DashboardService struct {
	shops   ports.ShopRepository
	reports ports.ReportRepository
	authz   ports.Authorizer
	log     zerolog.Logger
	now     func() time.Time
}

func NewDashboardService(shops ports.ShopRepository, reports ports.ReportRepository, authz ports.Authorizer, log zerolog.Logger) *DashboardService {
	return &DashboardService{shops: shops, reports: reports, authz: authz, log: log, now: time.Now}
}

func (s *DashboardService) Get(ctx context.Context, p domain.Principal, shopPublicID string) (*domain.Dashboard, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}

	shop, err := s.shops.FindByPublicID(ctx, shopPublicID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	// Month boundaries follow UTC regardless of server locale.
	now := s.now().UTC()
	agg, err := s.reports.Aggregates(ctx, shop.ID, int(now.Month()), now.Year())
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	s.log.Debug().Str("shop", shop.PublicID).Msg("dashboard computed")

	return &domain.Dashboard{
		ShopInfo:             shop.Info(),
		Sales:                nonNil(agg.Sales),
		Notifications:        agg.UnreadNotifications,
		PaymentMethods:       nonNil(agg.PaymentMethods),
		Expenses:             nonNil(agg.Expenses),
		CurrentMonthExpenses: agg.CurrentMonthExpenses,
		CurrentMonthSales:    agg.CurrentMonthSales,
		PopularService:       agg.PopularService,
		EquipmentValue:       agg.EquipmentValue,
	}, nil
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
