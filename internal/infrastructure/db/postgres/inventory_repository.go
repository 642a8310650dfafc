package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.Inventory) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := &inventoryModel{
		ShopID:       item.ShopID,
		ProductName:  item.ProductName,
		ProductLevel: item.ProductLevel,
		ModifiedAt:   item.ModifiedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate("insert inventory", err)
	}
	item.ID = m.ID
	return nil
}

func (r *InventoryRepository) ListByShop(ctx context.Context, shopID uint) ([]domain.Inventory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []inventoryModel
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("product_level, product_name").Find(&rows).Error; err != nil {
		return nil, translate("list inventory", err)
	}

	out := make([]domain.Inventory, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id uint) (*domain.Inventory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m inventoryModel
	if err := r.db.WithContext(ctx).Take(&m, id).Error; err != nil {
		return nil, translate("find inventory", err)
	}
	item := m.toDomain()
	return &item, nil
}

func (r *InventoryRepository) UpdateLevel(ctx context.Context, id uint, level int, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&inventoryModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"product_level": level, "modified_at": at})
	return affected("update inventory level", res)
}

func (r *InventoryRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected("delete inventory", r.db.WithContext(ctx).Delete(&inventoryModel{}, id))
}

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := &equipmentModel{
		ShopID:      eq.ShopID,
		Name:        eq.Name,
		Description: eq.Description,
		Price:       eq.Price,
		BoughtOn:    eq.BoughtOn,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate("insert equipment", err)
	}
	eq.ID = m.ID
	return nil
}

func (r *EquipmentRepository) ListByShop(ctx context.Context, shopID uint) ([]domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []equipmentModel
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("list equipment", err)
	}

	out := make([]domain.Equipment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *EquipmentRepository) MarkFaulty(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&equipmentModel{}).Where("id = ?", id).Update("faulty", true)
	return affected("mark equipment faulty", res)
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected("delete equipment", r.db.WithContext(ctx).Delete(&equipmentModel{}, id))
}
