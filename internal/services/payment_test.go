package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confregistry/internal/domain"
)

// fakeReferenceIssuer implements domain.PaymentReferenceIssuer for tests.
type fakeReferenceIssuer struct {
	token string
	err   error
}

func (f *fakeReferenceIssuer) Issue(registrationID, currency string, amount int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func seedRegistration(t *testing.T, repo *fakeRegistrationRepo) *domain.Registration {
	t.Helper()
	created := time.Now().UTC().Add(-time.Hour)
	reg := &domain.Registration{
		ID:        "REG1234567",
		CreatedAt: created,
		Category:  "Academia",
		Region:    "ASIA",
		Currency:  "USD",
		Amount:    150,
		Name:      "Jane Doe",
		Email:     "Jane@Example.com",
		Mobile:    "+6512345678",
	}
	require.NoError(t, repo.Create(context.Background(), reg))
	return reg
}

func newPaymentService(repo *fakeRegistrationRepo, files *fakeFileStore, emails *fakeEmailService, cfg PaymentConfig) domain.PaymentService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://pay.example.com/"
	}
	return NewPaymentService(repo, files, &fakeReferenceIssuer{token: "signed-ref"}, emails, cfg, 2*time.Second)
}

func TestCreatePayment(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	seedRegistration(t, repo)
	svc := newPaymentService(repo, &fakeFileStore{}, &fakeEmailService{}, PaymentConfig{})

	intent, err := svc.CreatePayment(context.Background(), "REG1234567")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/checkout/REG1234567?ref=signed-ref", intent.URL)
	assert.Equal(t, 150, intent.Amount)
	assert.Equal(t, "USD", intent.Currency)
}

func TestCreatePaymentUnknownID(t *testing.T) {
	svc := newPaymentService(&fakeRegistrationRepo{}, &fakeFileStore{}, &fakeEmailService{}, PaymentConfig{})

	_, err := svc.CreatePayment(context.Background(), "NOPE")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmPaymentEmailMatchIsCaseInsensitive(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	seed := seedRegistration(t, repo)
	svc := newPaymentService(repo, &fakeFileStore{}, &fakeEmailService{}, PaymentConfig{})

	input := domain.ConfirmInput{TransactionID: "TXN-1", Method: "bank", Email: "jane@EXAMPLE.com"}
	reg, err := svc.ConfirmPayment(context.Background(), seed.ID, input, nil)
	require.NoError(t, err)

	assert.True(t, reg.Paid)
	require.NotNil(t, reg.PaidAt)
	assert.False(t, reg.PaidAt.Before(reg.CreatedAt), "paid_at may not precede created_at")
	require.NotNil(t, reg.TransactionID)
	assert.Equal(t, "TXN-1", *reg.TransactionID)
	require.NotNil(t, reg.PaymentMethod)
	assert.Equal(t, "bank", *reg.PaymentMethod)
	require.NotNil(t, reg.PayerEmail)
	assert.Equal(t, "jane@EXAMPLE.com", *reg.PayerEmail)
}

func TestConfirmPaymentEmailMismatch(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"different address", "mallory@example.com"},
		{"extra character", "jane@example.comm"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRegistrationRepo{}
			seed := seedRegistration(t, repo)
			svc := newPaymentService(repo, &fakeFileStore{}, &fakeEmailService{}, PaymentConfig{})

			input := domain.ConfirmInput{TransactionID: "TXN-1", Method: "bank", Email: tt.email}
			_, err := svc.ConfirmPayment(context.Background(), seed.ID, input, nil)
			require.ErrorIs(t, err, domain.ErrEmailMismatch)

			stored, getErr := repo.GetByID(context.Background(), seed.ID)
			require.NoError(t, getErr)
			assert.False(t, stored.Paid)
			assert.Nil(t, stored.PaidAt)
		})
	}
}

func TestConfirmPaymentUnknownID(t *testing.T) {
	svc := newPaymentService(&fakeRegistrationRepo{}, &fakeFileStore{}, &fakeEmailService{}, PaymentConfig{})

	input := domain.ConfirmInput{TransactionID: "TXN-1", Method: "bank", Email: "jane@example.com"}
	_, err := svc.ConfirmPayment(context.Background(), "NOPE", input, nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmPaymentMissingTransactionFields(t *testing.T) {
	tests := []struct {
		name  string
		input domain.ConfirmInput
	}{
		{"no transaction id", domain.ConfirmInput{Method: "bank", Email: "jane@example.com"}},
		{"no method", domain.ConfirmInput{TransactionID: "TXN-1", Email: "jane@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRegistrationRepo{}
			seed := seedRegistration(t, repo)
			svc := newPaymentService(repo, &fakeFileStore{}, &fakeEmailService{}, PaymentConfig{})

			_, err := svc.ConfirmPayment(context.Background(), seed.ID, tt.input, nil)
			require.ErrorIs(t, err, domain.ErrMissingField)

			stored, getErr := repo.GetByID(context.Background(), seed.ID)
			require.NoError(t, getErr)
			assert.False(t, stored.Paid)
		})
	}
}

func TestConfirmPaymentStoresOptionalProof(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	seed := seedRegistration(t, repo)
	files := &fakeFileStore{name: "PROOF00001.png"}
	svc := newPaymentService(repo, files, &fakeEmailService{}, PaymentConfig{})

	proof := &domain.FileUpload{Reader: strings.NewReader("x"), Filename: "receipt.png", ContentType: "image/png", Size: 1}
	input := domain.ConfirmInput{TransactionID: "TXN-1", Method: "bank", Email: "jane@example.com"}
	reg, err := svc.ConfirmPayment(context.Background(), seed.ID, input, proof)
	require.NoError(t, err)

	require.Len(t, files.saved, 1)
	assert.Equal(t, domain.UploadProof, files.saved[0].Kind)
	require.NotNil(t, reg.PaymentProofFilename)
	assert.Equal(t, "PROOF00001.png", *reg.PaymentProofFilename)
	require.NotNil(t, reg.PaymentProofOriginal)
	assert.Equal(t, "receipt.png", *reg.PaymentProofOriginal)
}

func TestConfirmPaymentProofRequiredVariant(t *testing.T) {
	t.Run("missing proof fails", func(t *testing.T) {
		repo := &fakeRegistrationRepo{}
		seed := seedRegistration(t, repo)
		svc := newPaymentService(repo, &fakeFileStore{}, &fakeEmailService{}, PaymentConfig{RequireProof: true})

		input := domain.ConfirmInput{Email: "jane@example.com"}
		_, err := svc.ConfirmPayment(context.Background(), seed.ID, input, nil)
		require.ErrorIs(t, err, domain.ErrMissingField)
	})

	t.Run("proof alone suffices", func(t *testing.T) {
		repo := &fakeRegistrationRepo{}
		seed := seedRegistration(t, repo)
		files := &fakeFileStore{name: "PROOF00002.pdf"}
		svc := newPaymentService(repo, files, &fakeEmailService{}, PaymentConfig{RequireProof: true})

		proof := &domain.FileUpload{Reader: strings.NewReader("x"), Filename: "slip.pdf", ContentType: "application/pdf", Size: 1}
		reg, err := svc.ConfirmPayment(context.Background(), seed.ID, domain.ConfirmInput{Email: "jane@example.com"}, proof)
		require.NoError(t, err)

		assert.True(t, reg.Paid)
		assert.Nil(t, reg.TransactionID)
		assert.Nil(t, reg.PaymentMethod)
		require.NotNil(t, reg.PaymentProofFilename)
	})
}

func TestConfirmPaymentSendsReceivedEmail(t *testing.T) {
	repo := &fakeRegistrationRepo{}
	seed := seedRegistration(t, repo)
	emails := &fakeEmailService{}
	svc := newPaymentService(repo, &fakeFileStore{}, emails, PaymentConfig{})

	input := domain.ConfirmInput{TransactionID: "TXN-1", Method: "bank", Email: "jane@example.com"}
	_, err := svc.ConfirmPayment(context.Background(), seed.ID, input, nil)
	require.NoError(t, err)

	require.Len(t, emails.payments, 1)
	assert.Equal(t, seed.ID, emails.payments[0].ID)
	assert.Equal(t, "Jane@Example.com", emails.payments[0].Email)
}
