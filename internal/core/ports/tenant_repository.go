package ports

import (
	"context"
	"time"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type ServiceRepository interface {
	CreateBatch(ctx context.Context, services []domain.Service) error
	ListByShop(ctx context.Context, shopID uint) ([]domain.Service, error)
	FindByID(ctx context.Context, id uint) (*domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	// DeleteIfUnused returns domain.ErrHasDependents while sales reference it.
	DeleteIfUnused(ctx context.Context, id uint) error
}

type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) error
	// ListByShop joins each sale to its service's current charges, newest first.
	ListByShop(ctx context.Context, shopID uint, period domain.Period) ([]domain.SaleView, error)
	Delete(ctx context.Context, id uint) error
}

type ExpenseAccountRepository interface {
	// Create returns domain.ErrConflict when the shop already has an account
	// with the same name, compared case-insensitively.
	Create(ctx context.Context, a *domain.ExpenseAccount) error
	ListByShop(ctx context.Context, shopID uint) ([]domain.ExpenseAccount, error)
	FindByID(ctx context.Context, id uint) (*domain.ExpenseAccount, error)
	Update(ctx context.Context, a *domain.ExpenseAccount) error
	// DeleteIfUnused returns domain.ErrHasDependents while expenses reference it.
	DeleteIfUnused(ctx context.Context, id uint) error
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *domain.Expense) error
	ListByShop(ctx context.Context, shopID uint, period domain.Period) ([]domain.Expense, error)
	FindByID(ctx context.Context, id uint) (*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id uint) error
}

type InventoryRepository interface {
	Create(ctx context.Context, item *domain.Inventory) error
	ListByShop(ctx context.Context, shopID uint) ([]domain.Inventory, error)
	FindByID(ctx context.Context, id uint) (*domain.Inventory, error)
	UpdateLevel(ctx context.Context, id uint, level int, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	ListByShop(ctx context.Context, shopID uint) ([]domain.Equipment, error)
	MarkFaulty(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByShop(ctx context.Context, shopID uint) ([]domain.Notification, error)
	FindByID(ctx context.Context, id uint) (*domain.Notification, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// OwnershipRepository resolves any tenant-owned row to the public id of the
// shop at the root of its foreign-key chain.
type OwnershipRepository interface {
	OwnerShop(ctx context.Context, ref domain.EntityRef) (string, error)
}

// ReportRepository computes dashboard aggregates from a single consistent
// snapshot of the shop's data.
type ReportRepository interface {
	Aggregates(ctx context.Context, shopID uint, month, year int) (*domain.DashboardAggregates, error)
}
