package ports

import (
	"context"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// ShopRepository persists tenant roots.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	FindByPublicID(ctx context.Context, publicID string) (*domain.Shop, error)
	FindByEmail(ctx context.Context, email string) (*domain.Shop, error)
	// Search matches name case-insensitively, ordered by name descending.
	Search(ctx context.Context, name string, limit int) ([]domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
	UpdatePassword(ctx context.Context, publicID, hash string) error
	// Delete removes the shop and its whole tenant subtree.
	Delete(ctx context.Context, publicID string) error
}

// EmployeeRepository persists employees. Loaded employees always carry their
// shop's public id.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	FindByPublicID(ctx context.Context, publicID string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListByShop(ctx context.Context, shopID uint) ([]domain.Employee, error)
	Delete(ctx context.Context, id uint) error
	// InitializePassword stores the first password hash and activates the
	// employee. It returns domain.ErrAlreadyActive when a hash already exists.
	InitializePassword(ctx context.Context, publicID, hash string) error
	UpdatePassword(ctx context.Context, publicID, hash string) error
}
