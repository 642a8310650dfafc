package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type ServiceInput struct {
	Name        string
	Description string
	Charges     int
}

type SaleInput struct {
	ServiceID     uint
	PaymentMethod string
	Description   string
}

// CatalogService manages services and the sales recorded against them.
type CatalogService interface {
	// CreateServices skips names the shop already has (case-insensitive) and
	// returns the skipped names.
	CreateServices(ctx context.Context, p domain.Principal, shopPublicID string, in []ServiceInput) ([]string, error)
	UpdateService(ctx context.Context, p domain.Principal, id uint, in ServiceInput) error
	DeleteService(ctx context.Context, p domain.Principal, id uint) error
	ListServices(ctx context.Context, shopPublicID string) ([]domain.Service, error)

	RecordSale(ctx context.Context, p domain.Principal, shopPublicID string, in SaleInput) (*domain.Sale, error)
	FetchSales(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.SaleView, error)
	DeleteSale(ctx context.Context, p domain.Principal, id uint) error
}

type ExpenseAccountInput struct {
	Name        string
	Description string
}

type ExpenseInput struct {
	AccountID   uint
	Name        string
	Amount      int
	Description string
}

// ExpenseService manages expense accounts and expenses.
type ExpenseService interface {
	CreateAccount(ctx context.Context, p domain.Principal, shopPublicID string, in ExpenseAccountInput) (*domain.ExpenseAccount, error)
	ListAccounts(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.ExpenseAccount, error)
	UpdateAccount(ctx context.Context, p domain.Principal, id uint, in ExpenseAccountInput) error
	DeleteAccount(ctx context.Context, p domain.Principal, id uint) error

	FetchExpenses(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, p domain.Principal, shopPublicID string, in ExpenseInput) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, p domain.Principal, id uint, in ExpenseInput) error
	DeleteExpense(ctx context.Context, p domain.Principal, id uint) error
}

// InventoryService tracks stock levels and raises low-stock alerts.
type InventoryService interface {
	Create(ctx context.Context, p domain.Principal, shopPublicID, productName string, level int) (*domain.Inventory, error)
	List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Inventory, error)
	UpdateLevel(ctx context.Context, p domain.Principal, id uint, level int) error
	Delete(ctx context.Context, p domain.Principal, id uint) error
}

type EquipmentInput struct {
	Name        string
	Description string
	Price       int
	BoughtOn    *time.Time
}

type EquipmentService interface {
	Create(ctx context.Context, p domain.Principal, shopPublicID string, in EquipmentInput) (*domain.Equipment, error)
	List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Equipment, error)
	MarkFaulty(ctx context.Context, p domain.Principal, id uint) error
	Delete(ctx context.Context, p domain.Principal, id uint) error
}

type NotificationService interface {
	// Create is used by trusted callers holding only the API key.
	Create(ctx context.Context, shopPublicID, title, message string) (*domain.Notification, error)
	MarkRead(ctx context.Context, p domain.Principal, id uint) error
	List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Notification, error)
	Get(ctx context.Context, p domain.Principal, id uint) (*domain.Notification, error)
	Delete(ctx context.Context, p domain.Principal, id uint) error
}

// BookingService proxies a shop's bookings from the barbers mobile app.
type BookingService interface {
	Bookings(ctx context.Context, p domain.Principal, shopPublicID string) (json.RawMessage, error)
}
