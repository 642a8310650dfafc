package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// Sale amounts are never stored; every figure reads the service's current
// charges.
const (
	qDailySales = `SELECT TO_CHAR(DATE(s.created_at), 'YYYY-MM-DD') AS day,
		COALESCE(SUM(sv.charges), 0) AS sales
		FROM sales s JOIN services sv ON sv.id = s.service_id
		WHERE sv.shop_id = ?
		GROUP BY DATE(s.created_at) ORDER BY DATE(s.created_at)`

	qUnread = `SELECT COUNT(*) FROM notifications WHERE shop_id = ? AND "read" = false`

	qPaymentMethods = `SELECT s.payment_method AS method, COUNT(*) AS transactions
		FROM sales s WHERE s.shop_id = ?
		GROUP BY s.payment_method ORDER BY s.payment_method`

	qExpensesByAccount = `SELECT ea.name AS account, COALESCE(SUM(x.amount), 0) AS amount
		FROM expenses x JOIN expense_accounts ea ON ea.id = x.account_id
		WHERE ea.shop_id = ?
		GROUP BY ea.name ORDER BY ea.name`

	qMonthExpenses = `SELECT COALESCE(SUM(x.amount), 0)
		FROM expenses x JOIN expense_accounts ea ON ea.id = x.account_id
		WHERE ea.shop_id = ? AND x.month = ? AND x.year = ?`

	qMonthSales = `SELECT COALESCE(SUM(sv.charges), 0)
		FROM sales s JOIN services sv ON sv.id = s.service_id
		WHERE sv.shop_id = ? AND s.month = ? AND s.year = ?`

	qPopularService = `SELECT sv.name
		FROM sales s JOIN services sv ON sv.id = s.service_id
		WHERE sv.shop_id = ?
		GROUP BY sv.id, sv.name ORDER BY COUNT(*) DESC, sv.id ASC LIMIT 1`

	qEquipmentValue = `SELECT COALESCE(SUM(price), 0) FROM equipment WHERE shop_id = ?`
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Aggregates runs every dashboard query inside one read-only REPEATABLE READ
// transaction so all figures describe the same snapshot.
func (r *ReportRepository) Aggregates(ctx context.Context, shopID uint, month, year int) (*domain.DashboardAggregates, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	agg := &domain.DashboardAggregates{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(qDailySales, shopID).Scan(&agg.Sales).Error; err != nil {
			return fmt.Errorf("daily sales: %w", err)
		}
		if err := tx.Raw(qUnread, shopID).Scan(&agg.UnreadNotifications).Error; err != nil {
			return fmt.Errorf("unread notifications: %w", err)
		}
		if err := tx.Raw(qPaymentMethods, shopID).Scan(&agg.PaymentMethods).Error; err != nil {
			return fmt.Errorf("payment methods: %w", err)
		}
		if err := tx.Raw(qExpensesByAccount, shopID).Scan(&agg.Expenses).Error; err != nil {
			return fmt.Errorf("expenses by account: %w", err)
		}
		if err := tx.Raw(qMonthExpenses, shopID, month, year).Scan(&agg.CurrentMonthExpenses).Error; err != nil {
			return fmt.Errorf("month expenses: %w", err)
		}
		if err := tx.Raw(qMonthSales, shopID, month, year).Scan(&agg.CurrentMonthSales).Error; err != nil {
			return fmt.Errorf("month sales: %w", err)
		}

		var popular []string
		if err := tx.Raw(qPopularService, shopID).Scan(&popular).Error; err != nil {
			return fmt.Errorf("popular service: %w", err)
		}
		if len(popular) > 0 {
			agg.PopularService = &popular[0]
		}

		if err := tx.Raw(qEquipmentValue, shopID).Scan(&agg.EquipmentValue).Error; err != nil {
			return fmt.Errorf("equipment value: %w", err)
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("dashboard aggregates: %w", err)
	}
	return agg, nil
}
