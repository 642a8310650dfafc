package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

type BookingService struct {
	source ports.BookingSource
	authz  ports.Authorizer
}

func NewBookingService(source ports.BookingSource, authz ports.Authorizer) *BookingService {
	return &BookingService{source: source, authz: authz}
}

func (s *BookingService) Bookings(ctx context.Context, p domain.Principal, shopPublicID string) (json.RawMessage, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}

	raw, err := s.source.Bookings(ctx, shopPublicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrBridgeUnavailable, err)
	}
	return raw, nil
}
