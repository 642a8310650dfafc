package domain

import "time"

// Mail templates known to the notifier.
const (
	TemplatePasswordReset   = "reset"
	TemplateLowInventory    = "inventory"
	TemplateEmployeeOnboard = "create_employee_email"
)

// MailDelivery is the audit record written for every send attempt.
type MailDelivery struct {
	Template  string
	Recipient string
	Status    string
	Error     string
	SentAt    time.Time
}

const (
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
)
