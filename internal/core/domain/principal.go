package domain

// Role identifies which principal table a session token is checked against.
type Role string

const (
	RoleShop     Role = "shop"
	RoleEmployee Role = "employee"
)

// Principal is an authenticated identity resolved from a session token.
type Principal struct {
	Role         Role
	PublicID     string
	ShopID       uint
	ShopPublicID string
}

// ShopPrincipal builds the principal for an authenticated shop owner.
func ShopPrincipal(s *Shop) Principal {
	return Principal{Role: RoleShop, PublicID: s.PublicID, ShopID: s.ID, ShopPublicID: s.PublicID}
}

// EmployeePrincipal builds the principal for an authenticated employee. Its
// tenant is the employee's parent shop.
func EmployeePrincipal(e *Employee) Principal {
	return Principal{Role: RoleEmployee, PublicID: e.PublicID, ShopID: e.ShopID, ShopPublicID: e.ShopPublicID}
}
