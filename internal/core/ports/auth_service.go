package ports

import (
	"context"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// SessionResolver turns a session token into the principal record it names.
// Each method only looks in its own principal table.
type SessionResolver interface {
	ResolveShop(ctx context.Context, token string) (*domain.Shop, error)
	ResolveEmployee(ctx context.Context, token string) (*domain.Employee, error)
}

// Authorizer performs per-operation ownership matching.
type Authorizer interface {
	// AuthorizeShop checks that the principal's tenant is shopPublicID.
	AuthorizeShop(p domain.Principal, shopPublicID string) error
	// AuthorizeEntity resolves ref to its owning shop and compares it with
	// the principal's tenant.
	AuthorizeEntity(ctx context.Context, p domain.Principal, ref domain.EntityRef) error
}

// LoginResult is returned by both owner and employee login.
type LoginResult struct {
	Token        string
	PublicID     string
	ShopPublicID string
	Email        string
	Name         string
	Role         string
}

type RegisterShopInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	County   string
	City     string
}

type UpdateShopInput struct {
	Name   string
	Email  string
	Phone  string
	County string
	City   string
}

// ShopService covers the shop owner account lifecycle.
type ShopService interface {
	Register(ctx context.Context, in RegisterShopInput) (*domain.Shop, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Search(ctx context.Context, name string) ([]domain.ShopInfo, error)
	Update(ctx context.Context, p domain.Principal, publicID string, in UpdateShopInput) error
	Delete(ctx context.Context, p domain.Principal, publicID string) error
	ChangePassword(ctx context.Context, p domain.Principal, publicID, oldPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	VerifyToken(ctx context.Context, token string) error
}

type CreateEmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
	Salary    *int
	Phone     string
}

// EmployeeService covers employee onboarding and login.
type EmployeeService interface {
	// Create stores the employee and mails an onboarding link. When mailing
	// fails the employee is kept and an error wrapping
	// domain.ErrDeliveryFailed is returned alongside it.
	Create(ctx context.Context, p domain.Principal, shopPublicID string, in CreateEmployeeInput) (*domain.Employee, error)
	List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Employee, error)
	Delete(ctx context.Context, p domain.Principal, employeePublicID string) error
	ResendInvite(ctx context.Context, p domain.Principal, employeePublicID string) error
	SetupPassword(ctx context.Context, token, password string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, p domain.Principal, oldPassword, newPassword string) error
}

// DashboardService builds the shop dashboard.
type DashboardService interface {
	Get(ctx context.Context, p domain.Principal, shopPublicID string) (*domain.Dashboard, error)
}
