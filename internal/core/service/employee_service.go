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

// EmployeeService implements employee onboarding and login.
type EmployeeService struct {
	employees    ports.EmployeeRepository
	shops        ports.ShopRepository
	tokens       ports.TokenService
	authz        ports.Authorizer
	mailer       ports.Mailer
	setupURLBase string
	log          zerolog.Logger
	now          func() time.Time
}

func NewEmployeeService(
	employees ports.EmployeeRepository,
	shops ports.ShopRepository,
	tokens ports.TokenService,
	authz ports.Authorizer,
	mailer ports.Mailer,
	setupURLBase string,
	log zerolog.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:    employees,
		shops:        shops,
		tokens:       tokens,
		authz:        authz,
		mailer:       mailer,
		setupURLBase: setupURLBase,
		log:          log,
		now:          time.Now,
	}
}

// Create stores a new, uninitialized employee and mails the setup link. The
// employee is not rolled back when the email cannot be delivered.
func (s *EmployeeService) Create(ctx context.Context, p domain.Principal, shopPublicID string, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}

	shop, err := s.shops.FindByPublicID(ctx, shopPublicID)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	emp := &domain.Employee{
		PublicID:     uuid.NewString(),
		ShopID:       shop.ID,
		ShopPublicID: shop.PublicID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        normalizeEmail(in.Email),
		Role:         strings.TrimSpace(in.Role),
		Salary:       in.Salary,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.log.Info().Str("shop", shop.PublicID).Str("employee", emp.PublicID).Msg("employee created")

	if err := s.sendInvite(ctx, shop, emp); err != nil {
		return emp, err
	}
	return emp, nil
}

func (s *EmployeeService) List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Employee, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	return s.employees.ListByShop(ctx, p.ShopID)
}

func (s *EmployeeService) Delete(ctx context.Context, p domain.Principal, employeePublicID string) error {
	emp, err := s.employees.FindByPublicID(ctx, employeePublicID)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if err := s.authz.AuthorizeShop(p, emp.ShopPublicID); err != nil {
		return err
	}
	return s.employees.Delete(ctx, emp.ID)
}

func (s *EmployeeService) ResendInvite(ctx context.Context, p domain.Principal, employeePublicID string) error {
	emp, err := s.employees.FindByPublicID(ctx, employeePublicID)
	if err != nil {
		return fmt.Errorf("resend invite: %w", err)
	}
	if err := s.authz.AuthorizeShop(p, emp.ShopPublicID); err != nil {
		return err
	}
	if emp.State() == domain.CredentialActive {
		return domain.ErrAlreadyActive
	}

	shop, err := s.shops.FindByPublicID(ctx, emp.ShopPublicID)
	if err != nil {
		return fmt.Errorf("resend invite: %w", err)
	}
	return s.sendInvite(ctx, shop, emp)
}

// SetupPassword moves an employee from uninitialized to active. It can only
// happen once; later changes go through ChangePassword.
func (s *EmployeeService) SetupPassword(ctx context.Context, token, password string) error {
	publicID, err := s.tokens.Validate(token, domain.PurposeEmployeeSetup)
	if err != nil {
		return err
	}

	hash, err := hashPassword(strings.TrimSpace(password))
	if err != nil {
		return err
	}

	err = s.employees.InitializePassword(ctx, publicID, hash)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrTokenInvalid
	case errors.Is(err, domain.ErrAlreadyActive):
		return err
	default:
		return fmt.Errorf("setup password: %w", err)
	}

	s.log.Info().Str("employee", publicID).Msg("employee activated")
	return nil
}

func (s *EmployeeService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	emp, err := s.employees.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("employee login: %w", err)
	}
	if emp.State() == domain.CredentialUninitialized {
		return nil, domain.ErrPasswordNotSet
	}
	if err := checkPassword(*emp.PasswordHash, strings.TrimSpace(password)); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(emp.PublicID, domain.PurposeEmployeeSession)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		Token:        token,
		PublicID:     emp.PublicID,
		ShopPublicID: emp.ShopPublicID,
		Email:        emp.Email,
		Name:         strings.TrimSpace(emp.FirstName + " " + emp.LastName),
		Role:         emp.Role,
	}, nil
}

func (s *EmployeeService) ChangePassword(ctx context.Context, p domain.Principal, oldPassword, newPassword string) error {
	emp, err := s.employees.FindByPublicID(ctx, p.PublicID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if emp.State() == domain.CredentialUninitialized {
		return domain.ErrPasswordNotSet
	}
	if err := checkPassword(*emp.PasswordHash, strings.TrimSpace(oldPassword)); err != nil {
		return err
	}

	hash, err := hashPassword(strings.TrimSpace(newPassword))
	if err != nil {
		return err
	}
	return s.employees.UpdatePassword(ctx, emp.PublicID, hash)
}

func (s *EmployeeService) sendInvite(ctx context.Context, shop *domain.Shop, emp *domain.Employee) error {
	token, err := s.tokens.Issue(emp.PublicID, domain.PurposeEmployeeSetup)
	if err != nil {
		return err
	}

	vars := map[string]any{
		"name":      emp.FirstName,
		"url":       s.setupURLBase + token,
		"shop_name": shop.Name,
	}
	if err := s.mailer.Send(ctx, domain.TemplateEmployeeOnboard, emp.Email, vars); err != nil {
		s.log.Warn().Err(err).Str("employee", emp.PublicID).Msg("onboarding email failed")
		return deliveryFailed(err)
	}
	return nil
}
