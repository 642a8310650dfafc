package domain

import "time"

// Service is something a shop charges for. Sales reference it and read
// Charges at query time.
type Service struct {
	ID          uint       `json:"id"`
	ShopID      uint       `json:"-"`
	Name        string     `json:"service"`
	Description string     `json:"description"`
	Charges     int        `json:"charges"`
	ModifiedAt  *time.Time `json:"modified_at"`
}

// Sale records one transaction. It stores no amount of its own.
type Sale struct {
	ID            uint      `json:"id"`
	ShopID        uint      `json:"-"`
	ServiceID     *uint     `json:"service_id"`
	PaymentMethod string    `json:"payment_method"`
	Description   string    `json:"description"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	CreatedAt     time.Time `json:"date_created"`
}

// SaleView is a Sale joined to its service's live charges.
type SaleView struct {
	Sale
	ServiceName string `json:"service"`
	Amount      int    `json:"amount"`
}

type ExpenseAccount struct {
	ID          uint   `json:"id"`
	ShopID      uint   `json:"-"`
	Name        string `json:"account_name"`
	Description string `json:"description"`
}

type Expense struct {
	ID          uint       `json:"id"`
	ShopID      uint       `json:"-"`
	AccountID   *uint      `json:"account_id"`
	Name        string     `json:"expense"`
	Amount      int        `json:"amount"`
	Description string     `json:"description"`
	Month       int        `json:"month"`
	Year        int        `json:"year"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  *time.Time `json:"modified_at"`
}

type Inventory struct {
	ID           uint       `json:"id"`
	ShopID       uint       `json:"-"`
	ProductName  string     `json:"product_name"`
	ProductLevel int        `json:"product_level"`
	ModifiedAt   *time.Time `json:"modified_at"`
}

type Equipment struct {
	ID          uint       `json:"id"`
	ShopID      uint       `json:"-"`
	Name        string     `json:"equipment_name"`
	Description string     `json:"description"`
	Price       int        `json:"price"`
	BoughtOn    *time.Time `json:"bought_on"`
	Faulty      bool       `json:"faulty"`
}

type Notification struct {
	ID        uint      `json:"id"`
	ShopID    uint      `json:"-"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// Period filters month/year columns. Zero means "all".
type Period struct {
	Month int
	Year  int
}
