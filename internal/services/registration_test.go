package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confregistry/internal/domain"
)

// fakeRegistrationRepo implements domain.RegistrationRepository in memory.
type fakeRegistrationRepo struct {
	records   []*domain.Registration
	createErr error
	getErr    error
	listErr   error
	updateErr error
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, reg)
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) List(ctx context.Context) ([]*domain.Registration, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeRegistrationRepo) Update(ctx context.Context, reg *domain.Registration) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.records {
		if f.records[i].ID == reg.ID {
			f.records[i] = reg
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeFileStore implements domain.FileStore for tests.
type fakeFileStore struct {
	saved []domain.FileUpload
	name  string
	err   error
}

func (f *fakeFileStore) Save(ctx context.Context, upload domain.FileUpload) (*domain.StoredFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, upload)
	name := f.name
	if name == "" {
		name = "GENERATED01.pdf"
	}
	return &domain.StoredFile{Filename: name, Original: upload.Filename}, nil
}

// fakeCodeGenerator implements domain.CodeGenerator for tests.
type fakeCodeGenerator struct {
	next int
	err  error
}

func (f *fakeCodeGenerator) NewCode() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.next++
	return "CODE" + strconv.Itoa(f.next), nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	confirmations []*domain.RegistrationConfirmationEmailData
	payments      []*domain.PaymentReceivedEmailData
	err           error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}

func (f *fakeEmailService) SendPaymentReceived(ctx context.Context, data *domain.PaymentReceivedEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.payments = append(f.payments, data)
	return nil
}

func validInput() domain.RegisterInput {
	return domain.RegisterInput{
		Category: "Academia",
		Region:   "ASIA",
		PaperID:  "P-42",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Mobile:   "+6512345678",
	}
}

func newRegistrationService(repo *fakeRegistrationRepo, files *fakeFileStore, emails *fakeEmailService) domain.RegistrationService {
	return NewRegistrationService(repo, files, &fakeCodeGenerator{}, emails, 2*time.Second)
}

func TestRegisterComputesFeeForEveryTablePair(t *testing.T) {
	for category, regions := range domain.FeeTable() {
		for region, fee := range regions {
			t.Run(category+"/"+region, func(t *testing.T) {
				repo := &fakeRegistrationRepo{}
				svc := newRegistrationService(repo, &fakeFileStore{}, &fakeEmailService{})

				input := validInput()
				input.Category = category
				input.Region = region

				res, err := svc.Register(context.Background(), input, nil)
				require.NoError(t, err)
				assert.Equal(t, fee.Currency, res.Currency)
				assert.Equal(t, fee.Amount, res.Amount)

				require.Len(t, repo.records, 1)
				assert.Equal(t, fee.Currency, repo.records[0].Currency)
				assert.Equal(t, fee.Amount, repo.records[0].Amount)
			})
		}
	}
}

func TestRegisterMissingFieldLeavesStoreUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RegisterInput)
	}{
		{"category", func(in *domain.RegisterInput) { in.Category = "" }},
		{"region", func(in *domain.RegisterInput) { in.Region = "" }},
		{"name", func(in *domain.RegisterInput) { in.Name = "   " }},
		{"email", func(in *domain.RegisterInput) { in.Email = "" }},
		{"mobile", func(in *domain.RegisterInput) { in.Mobile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRegistrationRepo{}
			files := &fakeFileStore{}
			svc := newRegistrationService(repo, files, &fakeEmailService{})

			input := validInput()
			tt.mutate(&input)

			paper := &domain.FileUpload{Reader: strings.NewReader("x"), Filename: "p.pdf", ContentType: "application/pdf", Size: 1}
			_, err := svc.Register(context.Background(), input, paper)
			require.ErrorIs(t, err, domain.ErrMissingField)
			assert.Empty(t, repo.records, "no record may be persisted")
			assert.Empty(t, files.saved, "no file may be written")
		})
	}
}

func TestRegisterUnknownSelectionFails(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.RegisterInput)
	}{
		{"unknown category", func(in *domain.RegisterInput) { in.Category = "Sponsor" }},
		{"unknown region", func(in *domain.RegisterInput) { in.Region = "ANTARCTICA" }},
		{"case sensitive category", func(in *domain.RegisterInput) { in.Category = "academia" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRegistrationRepo{}
			svc := newRegistrationService(repo, &fakeFileStore{}, &fakeEmailService{})

			input := validInput()
			tt.mutate(&input)

			_, err := svc.Register(context.Background(), input, nil)
			require.ErrorIs(t, err, domain.ErrInvalidSelection)
			assert.Empty(t, repo.records)
		})
	}
}

func TestRegisterStoresPaperAndReturnsFileURL(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	files := &fakeFileStore{name: "AB12CD34EF.pdf"}
	svc := newRegistrationService(repo, files, &fakeEmailService{})

	paper := &domain.FileUpload{Reader: strings.NewReader("x"), Filename: "final.pdf", ContentType: "application/pdf", Size: 1}
	res, err := svc.Register(context.Background(), validInput(), paper)
	require.NoError(t, err)

	require.NotNil(t, res.FileURL)
	assert.Equal(t, "/uploads/AB12CD34EF.pdf", *res.FileURL)

	require.Len(t, files.saved, 1)
	assert.Equal(t, domain.UploadPaper, files.saved[0].Kind)

	require.Len(t, repo.records, 1)
	reg := repo.records[0]
	require.NotNil(t, reg.PaperFilename)
	assert.Equal(t, "AB12CD34EF.pdf", *reg.PaperFilename)
	require.NotNil(t, reg.PaperOriginal)
	assert.Equal(t, "final.pdf", *reg.PaperOriginal)
}

func TestRegisterWithoutPaper(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	svc := newRegistrationService(repo, &fakeFileStore{}, &fakeEmailService{})

	res, err := svc.Register(context.Background(), validInput(), nil)
	require.NoError(t, err)
	assert.Nil(t, res.FileURL)

	require.Len(t, repo.records, 1)
	reg := repo.records[0]
	assert.Nil(t, reg.PaperFilename)
	assert.Nil(t, reg.PaperOriginal)
	assert.False(t, reg.Paid)
	assert.Nil(t, reg.PaidAt)
	assert.False(t, reg.CreatedAt.IsZero())
}

func TestRegisterRejectedUploadPropagates(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	files := &fakeFileStore{err: domain.ErrUnsupportedMedia}
	svc := newRegistrationService(repo, files, &fakeEmailService{})

	paper := &domain.FileUpload{Reader: strings.NewReader("x"), Filename: "notes.txt", ContentType: "text/plain", Size: 1}
	_, err := svc.Register(context.Background(), validInput(), paper)
	require.ErrorIs(t, err, domain.ErrUnsupportedMedia)
	assert.Empty(t, repo.records)
}

func TestRegisterSendsConfirmationEmail(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	emails := &fakeEmailService{}
	svc := newRegistrationService(repo, &fakeFileStore{}, emails)

	res, err := svc.Register(context.Background(), validInput(), nil)
	require.NoError(t, err)

	require.Len(t, emails.confirmations, 1)
	assert.Equal(t, res.ID, emails.confirmations[0].ID)
	assert.Equal(t, "jane@example.com", emails.confirmations[0].Email)
	assert.Equal(t, 150, emails.confirmations[0].Amount)
}

func TestRegisterSucceedsWhenEmailFails(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	emails := &fakeEmailService{err: errors.New("smtp down")}
	svc := newRegistrationService(repo, &fakeFileStore{}, emails)

	_, err := svc.Register(context.Background(), validInput(), nil)
	require.NoError(t, err)
	require.Len(t, repo.records, 1)
}

func TestGetByID(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	svc := newRegistrationService(repo, &fakeFileStore{}, &fakeEmailService{})

	res, err := svc.Register(context.Background(), validInput(), nil)
	require.NoError(t, err)

	reg, err := svc.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", reg.Name)

	_, err = svc.GetByID(context.Background(), "ZZZZZZZZZZ")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
