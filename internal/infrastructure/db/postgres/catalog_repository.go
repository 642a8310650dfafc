package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) CreateBatch(ctx context.Context, services []domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows := make([]serviceModel, 0, len(services))
	for _, s := range services {
		rows = append(rows, serviceModel{
			ShopID:      s.ShopID,
			Name:        s.Name,
			Description: s.Description,
			Charges:     s.Charges,
			ModifiedAt:  s.ModifiedAt,
		})
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		return translate("insert services", err)
	}
	return nil
}

func (r *ServiceRepository) ListByShop(ctx context.Context, shopID uint) ([]domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []serviceModel
	if err := r.db.WithContext(ctx).Where("shop_id = ?", shopID).Order("id").Find(&rows).Error; err != nil {
		return nil, translate("list services", err)
	}

	out := make([]domain.Service, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint) (*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m serviceModel
	if err := r.db.WithContext(ctx).Take(&m, id).Error; err != nil {
		return nil, translate("find service", err)
	}
	s := m.toDomain()
	return &s, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&serviceModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":        s.Name,
			"description": s.Description,
			"charges":     s.Charges,
			"modified_at": s.ModifiedAt,
		})
	return affected("update service", res)
}

func (r *ServiceRepository) DeleteIfUnused(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&saleModel{}).Where("service_id = ?", id).Count(&refs).Error; err != nil {
			return translate("count service sales", err)
		}
		if refs > 0 {
			return domain.ErrHasDependents
		}
		return affected("delete service", tx.Delete(&serviceModel{}, id))
	})
}

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := &saleModel{
		ShopID:        s.ShopID,
		ServiceID:     s.ServiceID,
		PaymentMethod: s.PaymentMethod,
		Description:   s.Description,
		Month:         s.Month,
		Year:          s.Year,
		CreatedAt:     s.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return translate("insert sale", err)
	}
	s.ID = m.ID
	return nil
}

type saleRow struct {
	ID            uint
	ShopID        uint
	ServiceID     *uint
	PaymentMethod string
	Description   string
	Month         int
	Year          int
	CreatedAt     time.Time
	ServiceName   string
	Amount        int
}

// ListByShop prices every sale with the service's current charges.
func (r *SaleRepository) ListByShop(ctx context.Context, shopID uint, period domain.Period) ([]domain.SaleView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).
		Table("sales AS s").
		Select(`s.id, s.shop_id, s.service_id, s.payment_method, s.description, s.month, s.year, s.created_at,
			COALESCE(sv.name, '') AS service_name, COALESCE(sv.charges, 0) AS amount`).
		Joins("LEFT JOIN services sv ON sv.id = s.service_id").
		Where("s.shop_id = ?", shopID)
	q = withPeriod(q, "s", period)

	var rows []saleRow
	if err := q.Order("s.created_at DESC, s.id DESC").Scan(&rows).Error; err != nil {
		return nil, translate("list sales", err)
	}

	out := make([]domain.SaleView, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SaleView{
			Sale: domain.Sale{
				ID:            row.ID,
				ShopID:        row.ShopID,
				ServiceID:     row.ServiceID,
				PaymentMethod: row.PaymentMethod,
				Description:   row.Description,
				Month:         row.Month,
				Year:          row.Year,
				CreatedAt:     row.CreatedAt,
			},
			ServiceName: row.ServiceName,
			Amount:      row.Amount,
		})
	}
	return out, nil
}

func (r *SaleRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return affected("delete sale", r.db.WithContext(ctx).Delete(&saleModel{}, id))
}

// withPeriod filters month/year columns of alias; zero values match all.
func withPeriod(q *gorm.DB, alias string, p domain.Period) *gorm.DB {
	if p.Month != 0 {
		q = q.Where(alias+".month = ?", p.Month)
	}
	if p.Year != 0 {
		q = q.Where(alias+".year = ?", p.Year)
	}
	return q
}
