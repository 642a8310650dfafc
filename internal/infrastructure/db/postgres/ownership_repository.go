package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// ownerQueries walk each table's foreign-key chain up to its barbershop.
// Sales and expenses resolve through their service or account when one is
// set, falling back to the stamped shop id.
var ownerQueries = map[domain.EntityKind]string{
	domain.KindEmployee: `SELECT b.public_id FROM employees e
		JOIN barbershops b ON b.id = e.shop_id WHERE e.id = ?`,
	domain.KindService: `SELECT b.public_id FROM services sv
		JOIN barbershops b ON b.id = sv.shop_id WHERE sv.id = ?`,
	domain.KindSale: `SELECT b.public_id FROM sales s
		LEFT JOIN services sv ON sv.id = s.service_id
		JOIN barbershops b ON b.id = COALESCE(sv.shop_id, s.shop_id) WHERE s.id = ?`,
	domain.KindExpenseAccount: `SELECT b.public_id FROM expense_accounts ea
		JOIN barbershops b ON b.id = ea.shop_id WHERE ea.id = ?`,
	domain.KindExpense: `SELECT b.public_id FROM expenses x
		LEFT JOIN expense_accounts ea ON ea.id = x.account_id
		JOIN barbershops b ON b.id = COALESCE(ea.shop_id, x.shop_id) WHERE x.id = ?`,
	domain.KindInventory: `SELECT b.public_id FROM inventory i
		JOIN barbershops b ON b.id = i.shop_id WHERE i.id = ?`,
	domain.KindEquipment: `SELECT b.public_id FROM equipment q
		JOIN barbershops b ON b.id = q.shop_id WHERE q.id = ?`,
	domain.KindNotification: `SELECT b.public_id FROM notifications n
		JOIN barbershops b ON b.id = n.shop_id WHERE n.id = ?`,
}

type OwnershipRepository struct {
	db *gorm.DB
}

func NewOwnershipRepository(db *gorm.DB) *OwnershipRepository {
	return &OwnershipRepository{db: db}
}

func (r *OwnershipRepository) OwnerShop(ctx context.Context, ref domain.EntityRef) (string, error) {
	q, ok := ownerQueries[ref.Kind]
	if !ok {
		return "", fmt.Errorf("owner lookup: unknown entity kind %q", ref.Kind)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var publicID string
	err := r.db.WithContext(ctx).Raw(q, ref.ID).Row().Scan(&publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("owner lookup %s: %w", ref.Kind, err)
	}
	return publicID, nil
}
