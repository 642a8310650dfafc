package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type ExpenseAccountRepository struct {
	db *gorm.DB
}

func NewExpenseAccountRepository(db *gorm.DB) *ExpenseAccountRepository {
	return &ExpenseAccountRepository{db: db}
}

// Create leans on ux_expense_accounts_shop_name for the case-insensitive
// uniqueness check.
func (r *ExpenseAccountRepository) Create(ctx context.Context, a *domain.ExpenseAccount) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := &expenseAccountModel{ShopID: a.ShopID, Name: a.Name, Description: a.Description}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate("insert expense account", err)
	}
	a.ID = m.ID
	return nil
}

func (r *ExpenseAccountRepository) ListByShop(ctx context.Context, shopID uint) ([]domain.ExpenseAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []expenseAccountModel
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("name").Find(&rows).Error; err != nil {
		return nil, translate("list expense accounts", err)
	}

	out := make([]domain.ExpenseAccount, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *ExpenseAccountRepository) FindByID(ctx context.Context, id uint) (*domain.ExpenseAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m expenseAccountModel
	if err := r.db.WithContext(ctx).Take(&m, id).Error; err != nil {
		return nil, translate("find expense account", err)
	}
	a := m.toDomain()
	return &a, nil
}

func (r *ExpenseAccountRepository) Update(ctx context.Context, a *domain.ExpenseAccount) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&expenseAccountModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{"name": a.Name, "description": a.Description})
	return affected("update expense account", res)
}

func (r *ExpenseAccountRepository) DeleteIfUnused(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&expenseModel{}).Where("account_id = ?", id).Count(&refs).Error; err != nil {
			return translate("count account expenses", err)
		}
		if refs > 0 {
			return domain.ErrHasDependents
		}
		return affected("delete expense account", tx.Delete(&expenseAccountModel{}, id))
	})
}

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *domain.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := newExpenseModel(e)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate("insert expense", err)
	}
	e.ID = m.ID
	return nil
}

func (r *ExpenseRepository) ListByShop(ctx context.Context, shopID uint, period domain.Period) ([]domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Table("expenses AS e").Where("e.shop_id = ?", shopID)
	q = withPeriod(q, "e", period)

	var rows []expenseModel
	if err := q.Order("e.created_at DESC, e.id DESC").Find(&rows).Error; err != nil {
		return nil, translate("list expenses", err)
	}

	out := make([]domain.Expense, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id uint) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m expenseModel
	if err := r.db.WithContext(ctx).Take(&m, id).Error; err != nil {
		return nil, translate("find expense", err)
	}
	e := m.toDomain()
	return &e, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, e *domain.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&expenseModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"account_id":  e.AccountID,
			"name":        e.Name,
			"amount":      e.Amount,
			"description": e.Description,
			"modified_at": e.ModifiedAt,
		})
	return affected("update expense", res)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected("delete expense", r.db.WithContext(ctx).Delete(&expenseModel{}, id))
}
