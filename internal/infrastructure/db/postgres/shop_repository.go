package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := newShopModel(shop)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate("insert shop", err)
	}
	shop.ID = m.ID
	return nil
}

func (r *ShopRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Shop, error) {
	return r.findOne(ctx, "public_id = ?", publicID)
}

func (r *ShopRepository) FindByEmail(ctx context.Context, email string) (*domain.Shop, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *ShopRepository) findOne(ctx context.Context, query string, arg any) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m shopModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		return nil, translate("find shop", err)
	}
	return m.toDomain(), nil
}

func (r *ShopRepository) Search(ctx context.Context, name string, limit int) ([]domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []shopModel
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+escapeLike(name)+"%").
		Order("name DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translate("search shops", err)
	}

	out := make([]domain.Shop, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toDomain())
	}
	return out, nil
}

func (r *ShopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&shopModel{}).
		Where("public_id = ?", shop.PublicID).
		Updates(map[string]any{
			"name":        shop.Name,
			"email":       shop.Email,
			"phone":       shop.Phone,
			"county":      shop.County,
			"city":        shop.City,
			"modified_at": shop.ModifiedAt,
		})
	return affected("update shop", res)
}

func (r *ShopRepository) UpdatePassword(ctx context.Context, publicID, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&shopModel{}).
		Where("public_id = ?", publicID).
		Update("password_hash", hash)
	return affected("update shop password", res)
}

// Delete relies on ON DELETE CASCADE to remove the tenant subtree.
func (r *ShopRepository) Delete(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("public_id = ?", publicID).Delete(&shopModel{})
	return affected("delete shop", res)
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
