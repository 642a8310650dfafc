package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// stringDataRightTruncation is raised when a value overflows a varchar column.
const stringDataRightTruncation = "22001"

// translate maps gorm sentinels onto domain errors and wraps everything else
// with op for context.
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrHasDependents
	case errors.As(err, &pgErr) && pgErr.Code == stringDataRightTruncation:
		return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Message)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// affected turns a zero-row write into domain.ErrNotFound.
func affected(op string, res *gorm.DB) error {
	if res.Error != nil {
		return translate(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
