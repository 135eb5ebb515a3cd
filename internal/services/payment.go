package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"confregistry/internal/domain"
)

// PaymentConfig carries the payment service knobs. RequireProof switches the
// confirmation contract: when set, a proof upload is mandatory and the
// transaction fields become optional; when unset, transactionId and method
// are mandatory and the proof is optional.
type PaymentConfig struct {
	BaseURL      string
	RequireProof bool
}

type paymentService struct {
	repo           domain.RegistrationRepository
	files          domain.FileStore
	refs           domain.PaymentReferenceIssuer
	emailService   domain.EmailService
	baseURL        string
	requireProof   bool
	contextTimeout time.Duration
}

func NewPaymentService(repo domain.RegistrationRepository,
	files domain.FileStore,
	refs domain.PaymentReferenceIssuer,
	emailService domain.EmailService,
	cfg PaymentConfig,
	timeout time.Duration,
) domain.PaymentService {
	return &paymentService{
		repo:           repo,
		files:          files,
		refs:           refs,
		emailService:   emailService,
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		requireProof:   cfg.RequireProof,
		contextTimeout: timeout,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, id string) (*domain.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ref, err := s.refs.Issue(reg.ID, reg.Currency, reg.Amount)
	if err != nil {
		return nil, fmt.Errorf("issue payment reference: %w", err)
	}
	return &domain.PaymentIntent{
		URL:      fmt.Sprintf("%s/checkout/%s?ref=%s", s.baseURL, reg.ID, ref),
		Amount:   reg.Amount,
		Currency: reg.Currency,
	}, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, id string, input domain.ConfirmInput, proof *domain.FileUpload) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// An empty submitted email is just a mismatch: stored emails are never
	// empty, registration requires one.
	if !strings.EqualFold(strings.TrimSpace(input.Email), reg.Email) {
		return nil, domain.ErrEmailMismatch
	}

	if err := s.validateConfirmInput(input, proof); err != nil {
		return nil, err
	}

	if proof != nil {
		proof.Kind = domain.UploadProof
		stored, err := s.files.Save(ctx, *proof)
		if err != nil {
			return nil, fmt.Errorf("store payment proof: %w", err)
		}
		reg.PaymentProofFilename = &stored.Filename
		reg.PaymentProofOriginal = &stored.Original
	}

	now := time.Now().UTC()
	reg.Paid = true
	reg.PaidAt = &now
	if v := strings.TrimSpace(input.TransactionID); v != "" {
		reg.TransactionID = &v
	}
	if v := strings.TrimSpace(input.Method); v != "" {
		reg.PaymentMethod = &v
	}
	payer := strings.TrimSpace(input.Email)
	reg.PayerEmail = &payer

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("persist payment: %w", err)
	}

	if err := s.emailService.SendPaymentReceived(ctx, &domain.PaymentReceivedEmailData{
		Email:  reg.Email,
		Name:   reg.Name,
		ID:     reg.ID,
		PaidAt: now,
	}); err != nil {
		log.Printf("[EMAIL] Failed to send payment received email for %s: %v", reg.ID, err)
	}

	return reg, nil
}

func (s *paymentService) validateConfirmInput(input domain.ConfirmInput, proof *domain.FileUpload) error {
	if s.requireProof {
		if proof == nil {
			return fmt.Errorf("%w: screenshot", domain.ErrMissingField)
		}
		return nil
	}
	for _, f := range []struct{ name, value string }{
		{"transactionId", input.TransactionID},
		{"method", input.Method},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingField, f.name)
		}
	}
	return nil
}
