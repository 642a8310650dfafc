package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

// SessionService resolves session tokens to principals.
type SessionService struct {
	tokens    ports.TokenService
	shops     ports.ShopRepository
	employees ports.EmployeeRepository
}

func NewSessionService(tokens ports.TokenService, shops ports.ShopRepository, employees ports.EmployeeRepository) *SessionService {
	return &SessionService{tokens: tokens, shops: shops, employees: employees}
}

func (s *SessionService) ResolveShop(ctx context.Context, token string) (*domain.Shop, error) {
	publicID, err := s.tokens.Validate(token, domain.PurposeShopSession)
	if err != nil {
		return nil, err
	}

	shop, err := s.shops.FindByPublicID(ctx, publicID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("resolve shop: %w", err)
	}
	return shop, nil
}

func (s *SessionService) ResolveEmployee(ctx context.Context, token string) (*domain.Employee, error) {
	publicID, err := s.tokens.Validate(token, domain.PurposeEmployeeSession)
	if err != nil {
		return nil, err
	}

	emp, err := s.employees.FindByPublicID(ctx, publicID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("resolve employee: %w", err)
	}
	return emp, nil
}
