package services

import (
	"context"
	"fmt"
	"log"

	"confregistry/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRegistrationConfirmation sends the post-registration email using the
// "registration_confirmation" template and the given data.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render registration_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Registration confirmation sent to %s", data.Email)
	return nil
}

// SendPaymentReceived sends the payment acknowledgement email using the
// "payment_received" template.
func (s *emailService) SendPaymentReceived(ctx context.Context, data *domain.PaymentReceivedEmailData) error {
	if data == nil {
		return fmt.Errorf("payment received data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("payment_received", data)
	if err != nil {
		return fmt.Errorf("failed to render payment_received template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send payment received email: %w", err)
	}
	log.Printf("[EMAIL] Payment received email sent to %s", data.Email)
	return nil
}
