package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationConfirmationEmailData holds data for the registration confirmation email.
type RegistrationConfirmationEmailData struct {
	Email    string
	Name     string
	ID       string
	Currency string
	Amount   int
}

// PaymentReceivedEmailData holds data for the payment received email.
type PaymentReceivedEmailData struct {
	Email  string
	Name   string
	ID     string
	PaidAt time.Time
}

// EmailService defines the contract for sending domain-level emails.
// Sends are best-effort: callers log failures and carry on.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationConfirmationEmailData) error
	SendPaymentReceived(ctx context.Context, data *PaymentReceivedEmailData) error
}
