package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := &notificationModel{
		ShopID:    n.ShopID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate("insert notification", err)
	}
	n.ID = m.ID
	return nil
}

func (r *NotificationRepository) ListByShop(ctx context.Context, shopID uint) ([]domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []notificationModel
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("list notifications", err)
	}

	out := make([]domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m notificationModel
	if err := r.db.WithContext(ctx).Take(&m, id).Error; err != nil {
		return nil, translate("find notification", err)
	}
	n := m.toDomain()
	return &n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&notificationModel{}).Where("id = ?", id).Update("read", true)
	return affected("mark notification read", res)
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected("delete notification", r.db.WithContext(ctx).Delete(&notificationModel{}, id))
}
