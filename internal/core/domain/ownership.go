package domain

// EntityKind names a tenant-owned table.
type EntityKind string

const (
	KindEmployee       EntityKind = "employee"
	KindService        EntityKind = "service"
	KindSale           EntityKind = "sale"
	KindExpenseAccount EntityKind = "expense_account"
	KindExpense        EntityKind = "expense"
	KindInventory      EntityKind = "inventory"
	KindEquipment      EntityKind = "equipment"
	KindNotification   EntityKind = "notification"
)

// EntityRef points at a single tenant-owned row by its internal id.
type EntityRef struct {
	Kind EntityKind
	ID   uint
}
