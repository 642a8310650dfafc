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

type ExpenseService struct {
	accounts ports.ExpenseAccountRepository
	expenses ports.ExpenseRepository
	authz    ports.Authorizer
	log      zerolog.Logger
	now      func() time.Time
}

func NewExpenseService(
	accounts ports.ExpenseAccountRepository,
	expenses ports.ExpenseRepository,
	authz ports.Authorizer,
	log zerolog.Logger,
) *ExpenseService {
	return &ExpenseService{accounts: accounts, expenses: expenses, authz: authz, log: log, now: time.Now}
}

func (s *ExpenseService) CreateAccount(ctx context.Context, p domain.Principal, shopPublicID string, in ports.ExpenseAccountInput) (*domain.ExpenseAccount, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}

	acc := &domain.ExpenseAccount{
		ShopID:      p.ShopID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf("create expense account: %w", err)
	}
	return acc, nil
}

func (s *ExpenseService) ListAccounts(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.ExpenseAccount, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	return s.accounts.ListByShop(ctx, p.ShopID)
}

func (s *ExpenseService) UpdateAccount(ctx context.Context, p domain.Principal, id uint, in ports.ExpenseAccountInput) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindExpenseAccount, ID: id}); err != nil {
		return err
	}

	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update expense account: %w", err)
	}
	acc.Name = strings.TrimSpace(in.Name)
	acc.Description = strings.TrimSpace(in.Description)
	return s.accounts.Update(ctx, acc)
}

// DeleteAccount refuses while expenses still reference the account.
func (s *ExpenseService) DeleteAccount(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindExpenseAccount, ID: id}); err != nil {
		return err
	}
	return s.accounts.DeleteIfUnused(ctx, id)
}

func (s *ExpenseService) FetchExpenses(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.Expense, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	return s.expenses.ListByShop(ctx, p.ShopID, period)
}

func (s *ExpenseService) CreateExpense(ctx context.Context, p domain.Principal, shopPublicID string, in ports.ExpenseInput) (*domain.Expense, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindExpenseAccount, ID: in.AccountID}); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	accountID := in.AccountID
	exp := &domain.Expense{
		ShopID:      p.ShopID,
		AccountID:   &accountID,
		Name:        strings.TrimSpace(in.Name),
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Month:       int(now.Month()),
		Year:        now.Year(),
		CreatedAt:   now,
	}
	if err := s.expenses.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return exp, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, p domain.Principal, id uint, in ports.ExpenseInput) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindExpense, ID: id}); err != nil {
		return err
	}

	exp, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}

	if in.AccountID != 0 && (exp.AccountID == nil || *exp.AccountID != in.AccountID) {
		if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindExpenseAccount, ID: in.AccountID}); err != nil {
			return err
		}
		accountID := in.AccountID
		exp.AccountID = &accountID
	}

	now := s.now().UTC()
	exp.Name = strings.TrimSpace(in.Name)
	exp.Amount = in.Amount
	exp.Description = strings.TrimSpace(in.Description)
	exp.ModifiedAt = &now
	return s.expenses.Update(ctx, exp)
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindExpense, ID: id}); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, id)
}
