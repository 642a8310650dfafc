package domain

// DailySales is the summed live charges of all sales on one calendar day.
type DailySales struct {
	Day   string `json:"day"`
	Sales int64  `json:"sales"`
}

type PaymentMethodCount struct {
	Method       string `json:"method"`
	Transactions int64  `json:"transactions"`
}

type AccountExpense struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
}

// DashboardAggregates is everything the reporting query computes for a shop.
type DashboardAggregates struct {
	Sales                []DailySales
	UnreadNotifications  int64
	PaymentMethods       []PaymentMethodCount
	Expenses             []AccountExpense
	CurrentMonthExpenses int64
	CurrentMonthSales    int64
	PopularService       *string
	EquipmentValue       int64
}

// Dashboard is the response body of the shop dashboard.
type Dashboard struct {
	ShopInfo             ShopInfo             `json:"shopInfo"`
	Sales                []DailySales         `json:"sales"`
	Notifications        int64                `json:"notifications"`
	PaymentMethods       []PaymentMethodCount `json:"payment_methods"`
	Expenses             []AccountExpense     `json:"expenses"`
	CurrentMonthExpenses int64                `json:"current_month_expenses"`
	CurrentMonthSales    int64                `json:"current_month_sales"`
	PopularService       *string              `json:"popular_service"`
	EquipmentValue       int64                `json:"equipment_value"`
}
