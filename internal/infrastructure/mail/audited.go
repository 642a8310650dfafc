package mail

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
	"github.com/mykinyozi/kinyozi-api/internal/pkg/metrics"
)

// Audited records every send attempt made through next. Audit failures are
// logged and never change the send result.
type Audited struct {
	next  ports.Mailer
	audit ports.MailAuditRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewAudited(next ports.Mailer, audit ports.MailAuditRepository, log zerolog.Logger) *Audited {
	return &Audited{next: next, audit: audit, log: log, now: time.Now}
}

func (a *Audited) Send(ctx context.Context, template, recipient string, vars map[string]any) error {
	sendErr := a.next.Send(ctx, template, recipient, vars)

	d := &domain.MailDelivery{
		Template:  template,
		Recipient: recipient,
		Status:    domain.DeliverySent,
		SentAt:    a.now().UTC(),
	}
	if sendErr != nil {
		d.Status = domain.DeliveryFailed
		d.Error = sendErr.Error()
	}
	metrics.MailDeliveriesTotal.WithLabelValues(template, d.Status).Inc()

	// Audit writes outlive a cancelled request.
	if err := a.audit.Record(context.WithoutCancel(ctx), d); err != nil {
		a.log.Warn().Err(err).Str("template", template).Msg("mail audit write failed")
	}
	return sendErr
}
