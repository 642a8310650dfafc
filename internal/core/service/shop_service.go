package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

const shopSearchLimit = 10

// ShopService implements the shop owner account lifecycle.
type ShopService struct {
	shops        ports.ShopRepository
	tokens       ports.TokenService
	authz        ports.Authorizer
	mailer       ports.Mailer
	resetURLBase string
	log          zerolog.Logger
	now          func() time.Time
}

func NewShopService(
	shops ports.ShopRepository,
	tokens ports.TokenService,
	authz ports.Authorizer,
	mailer ports.Mailer,
	resetURLBase string,
	log zerolog.Logger,
) *ShopService {
	return &ShopService{
		shops:        shops,
		tokens:       tokens,
		authz:        authz,
		mailer:       mailer,
		resetURLBase: resetURLBase,
		log:          log,
		now:          time.Now,
	}
}

func (s *ShopService) Register(ctx context.Context, in ports.RegisterShopInput) (*domain.Shop, error) {
	hash, err := hashPassword(strings.TrimSpace(in.Password))
	if err != nil {
		return nil, err
	}

	shop := &domain.Shop{
		PublicID:     uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		County:       strings.TrimSpace(in.County),
		City:         strings.TrimSpace(in.City),
		Active:       true,
		JoinDate:     s.now().UTC(),
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("register shop: %w", err)
	}

	s.log.Info().Str("shop", shop.PublicID).Msg("shop registered")
	return shop, nil
}

func (s *ShopService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	shop, err := s.shops.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("shop login: %w", err)
	}
	if shop.PasswordHash == "" {
		return nil, domain.ErrPasswordNotSet
	}
	if err := checkPassword(shop.PasswordHash, strings.TrimSpace(password)); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(shop.PublicID, domain.PurposeShopSession)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		Token:        token,
		PublicID:     shop.PublicID,
		ShopPublicID: shop.PublicID,
		Email:        shop.Email,
		Name:         shop.Name,
	}, nil
}

func (s *ShopService) Search(ctx context.Context, name string) ([]domain.ShopInfo, error) {
	shops, err := s.shops.Search(ctx, strings.TrimSpace(name), shopSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search shops: %w", err)
	}

	out := make([]domain.ShopInfo, 0, len(shops))
	for i := range shops {
		out = append(out, shops[i].Info())
	}
	return out, nil
}

func (s *ShopService) Update(ctx context.Context, p domain.Principal, publicID string, in ports.UpdateShopInput) error {
	if err := s.authz.AuthorizeShop(p, publicID); err != nil {
		return err
	}

	shop, err := s.shops.FindByPublicID(ctx, publicID)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}

	now := s.now().UTC()
	shop.Name = strings.TrimSpace(in.Name)
	shop.Email = normalizeEmail(in.Email)
	shop.Phone = strings.TrimSpace(in.Phone)
	shop.County = strings.TrimSpace(in.County)
	shop.City = strings.TrimSpace(in.City)
	shop.ModifiedAt = &now

	if err := s.shops.Update(ctx, shop); err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

func (s *ShopService) Delete(ctx context.Context, p domain.Principal, publicID string) error {
	if err := s.authz.AuthorizeShop(p, publicID); err != nil {
		return err
	}
	if err := s.shops.Delete(ctx, publicID); err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}

	s.log.Info().Str("shop", publicID).Msg("shop deleted")
	return nil
}

func (s *ShopService) ChangePassword(ctx context.Context, p domain.Principal, publicID, oldPassword, newPassword string) error {
	if err := s.authz.AuthorizeShop(p, publicID); err != nil {
		return err
	}

	shop, err := s.shops.FindByPublicID(ctx, publicID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := checkPassword(shop.PasswordHash, strings.TrimSpace(oldPassword)); err != nil {
		return err
	}

	hash, err := hashPassword(strings.TrimSpace(newPassword))
	if err != nil {
		return err
	}
	return s.shops.UpdatePassword(ctx, publicID, hash)
}

// RequestPasswordReset mails a 30 minute reset link to the shop's address.
func (s *ShopService) RequestPasswordReset(ctx context.Context, email string) error {
	shop, err := s.shops.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("request reset: %w", err)
	}

	token, err := s.tokens.Issue(shop.PublicID, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	vars := map[string]any{
		"name": shop.Name,
		"url":  s.resetURLBase + token,
	}
	if err := s.mailer.Send(ctx, domain.TemplatePasswordReset, shop.Email, vars); err != nil {
		s.log.Warn().Err(err).Str("shop", shop.PublicID).Msg("reset email failed")
		return deliveryFailed(err)
	}
	return nil
}

// ResetPassword trusts the token alone: whoever holds a valid reset token for
// a shop may set that shop's password.
func (s *ShopService) ResetPassword(ctx context.Context, token, password string) error {
	publicID, err := s.tokens.Validate(token, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	if _, err := s.shops.FindByPublicID(ctx, publicID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := hashPassword(strings.TrimSpace(password))
	if err != nil {
		return err
	}
	if err := s.shops.UpdatePassword(ctx, publicID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("shop", publicID).Msg("password reset")
	return nil
}

func (s *ShopService) VerifyToken(_ context.Context, token string) error {
	_, err := s.tokens.Validate(token, domain.PurposeShopSession)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
