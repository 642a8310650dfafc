package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := newEmployeeModel(e)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate("insert employee", err)
	}
	e.ID = m.ID
	return nil
}

func (r *EmployeeRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Employee, error) {
	return r.findOne(ctx, "employees.public_id = ?", publicID)
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, "employees.email = ?", email)
}

func (r *EmployeeRepository) findOne(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m employeeModel
	if err := r.db.WithContext(ctx).Joins("Shop").Where(query, arg).Take(&m).Error; err != nil {
		return nil, translate("find employee", err)
	}
	return m.toDomain(), nil
}

func (r *EmployeeRepository) ListByShop(ctx context.Context, shopID uint) ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []employeeModel
	err := r.db.WithContext(ctx).
		Joins("Shop").
		Where("employees.shop_id = ?", shopID).
		Order("employees.id").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list employees", err)
	}

	out := make([]domain.Employee, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toDomain())
	}
	return out, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected("delete employee", r.db.WithContext(ctx).Delete(&employeeModel{}, id))
}

// InitializePassword only matches rows whose hash is still NULL, so two
// concurrent setups cannot both succeed.
func (r *EmployeeRepository) InitializePassword(ctx context.Context, publicID, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	db := r.db.WithContext(ctx)
	res := db.Model(&employeeModel{}).
		Where("public_id = ? AND password_hash IS NULL", publicID).
		Updates(map[string]any{"password_hash": hash, "active": true})
	if res.Error != nil {
		return translate("initialize employee password", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := db.Model(&employeeModel{}).Where("public_id = ?", publicID).Count(&count).Error; err != nil {
		return translate("initialize employee password", err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyActive
}

func (r *EmployeeRepository) UpdatePassword(ctx context.Context, publicID, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&employeeModel{}).
		Where("public_id = ? AND password_hash IS NOT NULL", publicID).
		Update("password_hash", hash)
	return affected("update employee password", res)
}
