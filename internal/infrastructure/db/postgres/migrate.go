package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// expressionIndexes cannot be declared through struct tags.
var expressionIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_expense_accounts_shop_name ON expense_accounts (shop_id, LOWER(name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_services_shop_name ON services (shop_id, LOWER(name))`,
}

// Migrate creates or updates every table in foreign-key order.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&shopModel{},
		&employeeModel{},
		&serviceModel{},
		&saleModel{},
		&expenseAccountModel{},
		&expenseModel{},
		&inventoryModel{},
		&equipmentModel{},
		&notificationModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range expressionIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
