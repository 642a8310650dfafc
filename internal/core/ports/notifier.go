package ports

import (
	"context"
	"encoding/json"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// Mailer sends a named template to one recipient.
type Mailer interface {
	Send(ctx context.Context, template, recipient string, vars map[string]any) error
}

// MailAuditRepository stores one record per delivery attempt.
type MailAuditRepository interface {
	Record(ctx context.Context, d *domain.MailDelivery) error
}

// SMSSender delivers short text alerts.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// BookingSource reads a shop's bookings from the barbers mobile app.
type BookingSource interface {
	Bookings(ctx context.Context, shopPublicID string) (json.RawMessage, error)
}
