package domain

import "time"

// Shop is the tenant root. Every other entity resolves to exactly one Shop.
type Shop struct {
	ID           uint
	PublicID     string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	County       string
	City         string
	Active       bool
	JoinDate     time.Time
	ModifiedAt   *time.Time
}

// ShopInfo is the public projection of a Shop.
type ShopInfo struct {
	PublicID string `json:"public_id"`
	Name     string `json:"shop_name"`
	Email    string `json:"email"`
	County   string `json:"county"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}

func (s *Shop) Info() ShopInfo {
	return ShopInfo{
		PublicID: s.PublicID,
		Name:     s.Name,
		Email:    s.Email,
		County:   s.County,
		City:     s.City,
		Phone:    s.Phone,
		Active:   s.Active,
	}
}
