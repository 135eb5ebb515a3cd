package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"confregistry/internal/domain"
)

type registrationService struct {
	repo           domain.RegistrationRepository
	files          domain.FileStore
	codes          domain.CodeGenerator
	emailService   domain.EmailService
	contextTimeout time.Duration
}

func NewRegistrationService(repo domain.RegistrationRepository,
	files domain.FileStore,
	codes domain.CodeGenerator,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		repo:           repo,
		files:          files,
		codes:          codes,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, input domain.RegisterInput, paper *domain.FileUpload) (*domain.RegisterResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}
	fee, err := domain.LookupFee(input.Category, input.Region)
	if err != nil {
		return nil, err
	}

	id, err := s.codes.NewCode()
	if err != nil {
		return nil, fmt.Errorf("generate registration id: %w", err)
	}

	reg := &domain.Registration{
		ID:           id,
		CreatedAt:    time.Now().UTC(),
		Category:     input.Category,
		Region:       input.Region,
		Currency:     fee.Currency,
		Amount:       fee.Amount,
		PaperID:      strings.TrimSpace(input.PaperID),
		Name:         strings.TrimSpace(input.Name),
		Organization: strings.TrimSpace(input.Organization),
		Email:        strings.TrimSpace(input.Email),
		Mobile:       strings.TrimSpace(input.Mobile),
	}

	// The paper is written before the record referencing it is persisted. A
	// crash in between orphans the file but never leaves a record pointing
	// at a missing one.
	var fileURL *string
	if paper != nil {
		paper.Kind = domain.UploadPaper
		stored, err := s.files.Save(ctx, *paper)
		if err != nil {
			return nil, fmt.Errorf("store paper: %w", err)
		}
		reg.PaperFilename = &stored.Filename
		reg.PaperOriginal = &stored.Original
		url := "/uploads/" + stored.Filename
		fileURL = &url
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("persist registration: %w", err)
	}

	if err := s.emailService.SendRegistrationConfirmation(ctx, &domain.RegistrationConfirmationEmailData{
		Email:    reg.Email,
		Name:     reg.Name,
		ID:       reg.ID,
		Currency: reg.Currency,
		Amount:   reg.Amount,
	}); err != nil {
		log.Printf("[EMAIL] Failed to send registration confirmation for %s: %v", reg.ID, err)
	}

	return &domain.RegisterResult{
		ID:       reg.ID,
		Currency: reg.Currency,
		Amount:   reg.Amount,
		FileURL:  fileURL,
	}, nil
}

func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func validateRegisterInput(input domain.RegisterInput) error {
	for _, f := range []struct{ name, value string }{
		{"category", input.Category},
		{"region", input.Region},
		{"name", input.Name},
		{"email", input.Email},
		{"mobile", input.Mobile},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingField, f.name)
		}
	}
	return nil
}
