package postgres

import (
	"time"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// Row types own the table layout; the domain package never sees gorm tags.

type shopModel struct {
	ID           uint      `gorm:"primaryKey"`
	PublicID     string    `gorm:"size:50;uniqueIndex;not null"`
	Name         string    `gorm:"size:50;not null;index"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255"`
	Phone        string    `gorm:"size:20"`
	County       string    `gorm:"size:50"`
	City         string    `gorm:"size:50"`
	Active       bool      `gorm:"not null"`
	JoinDate     time.Time `gorm:"not null"`
	ModifiedAt   *time.Time
}

func (shopModel) TableName() string { return "barbershops" }

func newShopModel(s *domain.Shop) *shopModel {
	return &shopModel{
		ID:           s.ID,
		PublicID:     s.PublicID,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Phone:        s.Phone,
		County:       s.County,
		City:         s.City,
		Active:       s.Active,
		JoinDate:     s.JoinDate,
		ModifiedAt:   s.ModifiedAt,
	}
}

func (m *shopModel) toDomain() *domain.Shop {
	return &domain.Shop{
		ID:           m.ID,
		PublicID:     m.PublicID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		County:       m.County,
		City:         m.City,
		Active:       m.Active,
		JoinDate:     m.JoinDate,
		ModifiedAt:   m.ModifiedAt,
	}
}

type employeeModel struct {
	ID           uint      `gorm:"primaryKey"`
	PublicID     string    `gorm:"size:50;uniqueIndex;not null"`
	ShopID       uint      `gorm:"not null;index"`
	Shop         shopModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	FirstName    string    `gorm:"size:50;not null"`
	LastName     string    `gorm:"size:50"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	Role         string    `gorm:"size:30;not null"`
	PasswordHash *string   `gorm:"size:255"`
	Salary       *int
	Phone        string    `gorm:"size:20"`
	Active       bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (employeeModel) TableName() string { return "employees" }

func newEmployeeModel(e *domain.Employee) *employeeModel {
	return &employeeModel{
		ID:           e.ID,
		PublicID:     e.PublicID,
		ShopID:       e.ShopID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Role:         e.Role,
		PasswordHash: e.PasswordHash,
		Salary:       e.Salary,
		Phone:        e.Phone,
		Active:       e.Active,
		CreatedAt:    e.CreatedAt,
	}
}

// toDomain expects Shop to be preloaded.
func (m *employeeModel) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           m.ID,
		PublicID:     m.PublicID,
		ShopID:       m.ShopID,
		ShopPublicID: m.Shop.PublicID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		Salary:       m.Salary,
		Phone:        m.Phone,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
	}
}

type serviceModel struct {
	ID          uint      `gorm:"primaryKey"`
	ShopID      uint      `gorm:"not null;index"`
	Shop        shopModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Name        string    `gorm:"size:50;not null"`
	Description string    `gorm:"size:255"`
	Charges     int       `gorm:"not null"`
	ModifiedAt  *time.Time
}

func (serviceModel) TableName() string { return "services" }

func (m *serviceModel) toDomain() domain.Service {
	return domain.Service{
		ID:          m.ID,
		ShopID:      m.ShopID,
		Name:        m.Name,
		Description: m.Description,
		Charges:     m.Charges,
		ModifiedAt:  m.ModifiedAt,
	}
}

// saleModel stores no amount; reads join the service's current charges.
type saleModel struct {
	ID            uint          `gorm:"primaryKey"`
	ShopID        uint          `gorm:"not null;index"`
	Shop          shopModel     `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	ServiceID     *uint         `gorm:"index"`
	Service       *serviceModel `gorm:"foreignKey:ServiceID;constraint:OnDelete:SET NULL"`
	PaymentMethod string        `gorm:"size:30;not null"`
	Description   string        `gorm:"size:255"`
	Month         int           `gorm:"not null;index:idx_sales_period"`
	Year          int           `gorm:"not null;index:idx_sales_period"`
	CreatedAt     time.Time     `gorm:"not null"`
}

func (saleModel) TableName() string { return "sales" }

type expenseAccountModel struct {
	ID          uint      `gorm:"primaryKey"`
	ShopID      uint      `gorm:"not null;index"`
	Shop        shopModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Name        string    `gorm:"size:50;not null"`
	Description string    `gorm:"size:255"`
}

func (expenseAccountModel) TableName() string { return "expense_accounts" }

func (m *expenseAccountModel) toDomain() domain.ExpenseAccount {
	return domain.ExpenseAccount{ID: m.ID, ShopID: m.ShopID, Name: m.Name, Description: m.Description}
}

type expenseModel struct {
	ID          uint                 `gorm:"primaryKey"`
	ShopID      uint                 `gorm:"not null;index"`
	Shop        shopModel            `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	AccountID   *uint                `gorm:"index"`
	Account     *expenseAccountModel `gorm:"foreignKey:AccountID;constraint:OnDelete:SET NULL"`
	Name        string               `gorm:"size:50;not null"`
	Amount      int                  `gorm:"not null"`
	Description string               `gorm:"size:255"`
	Month       int                  `gorm:"not null;index:idx_expenses_period"`
	Year        int                  `gorm:"not null;index:idx_expenses_period"`
	CreatedAt   time.Time            `gorm:"not null"`
	ModifiedAt  *time.Time
}

func (expenseModel) TableName() string { return "expenses" }

func newExpenseModel(e *domain.Expense) *expenseModel {
	return &expenseModel{
		ID:          e.ID,
		ShopID:      e.ShopID,
		AccountID:   e.AccountID,
		Name:        e.Name,
		Amount:      e.Amount,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		CreatedAt:   e.CreatedAt,
		ModifiedAt:  e.ModifiedAt,
	}
}

func (m *expenseModel) toDomain() domain.Expense {
	return domain.Expense{
		ID:          m.ID,
		ShopID:      m.ShopID,
		AccountID:   m.AccountID,
		Name:        m.Name,
		Amount:      m.Amount,
		Description: m.Description,
		Month:       m.Month,
		Year:        m.Year,
		CreatedAt:   m.CreatedAt,
		ModifiedAt:  m.ModifiedAt,
	}
}

type inventoryModel struct {
	ID           uint      `gorm:"primaryKey"`
	ShopID       uint      `gorm:"not null;index"`
	Shop         shopModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	ProductName  string    `gorm:"size:50;not null"`
	ProductLevel int       `gorm:"not null"`
	ModifiedAt   *time.Time
}

func (inventoryModel) TableName() string { return "inventory" }

func (m *inventoryModel) toDomain() domain.Inventory {
	return domain.Inventory{
		ID:           m.ID,
		ShopID:       m.ShopID,
		ProductName:  m.ProductName,
		ProductLevel: m.ProductLevel,
		ModifiedAt:   m.ModifiedAt,
	}
}

type equipmentModel struct {
	ID          uint      `gorm:"primaryKey"`
	ShopID      uint      `gorm:"not null;index"`
	Shop        shopModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Name        string    `gorm:"size:50;not null"`
	Description string    `gorm:"size:255"`
	Price       int       `gorm:"not null"`
	BoughtOn    *time.Time
	Faulty      bool `gorm:"not null"`
}

func (equipmentModel) TableName() string { return "equipment" }

func (m *equipmentModel) toDomain() domain.Equipment {
	return domain.Equipment{
		ID:          m.ID,
		ShopID:      m.ShopID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		BoughtOn:    m.BoughtOn,
		Faulty:      m.Faulty,
	}
}

type notificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	ShopID    uint      `gorm:"not null;index"`
	Shop      shopModel `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Title     string    `gorm:"size:100;not null"`
	Message   string    `gorm:"size:255;not null"`
	Read      bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (notificationModel) TableName() string { return "notifications" }

func (m *notificationModel) toDomain() domain.Notification {
	return domain.Notification{
		ID:        m.ID,
		ShopID:    m.ShopID,
		Title:     m.Title,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}
