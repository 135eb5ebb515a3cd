package domain

import (
	"context"
	"time"
)

// Registration is the sole entity: one participant's full registration state.
// Pointer fields are null until the corresponding event happens (paper upload,
// payment confirmation, proof upload).
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Category string `json:"category"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`

	PaperID      string `json:"paper_id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`

	PaperFilename *string `json:"paper_filename"`
	PaperOriginal *string `json:"paper_original"`

	Paid   bool       `json:"paid"`
	PaidAt *time.Time `json:"paid_at"`

	TransactionID        *string `json:"transaction_id"`
	PaymentMethod        *string `json:"payment_method"`
	PayerEmail           *string `json:"payer_email"`
	PaymentProofFilename *string `json:"payment_proof_filename"`
	PaymentProofOriginal *string `json:"payment_proof_original"`
}

// RegistrationRepository defines storage operations for registration records.
// List returns records in insertion order.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	List(ctx context.Context) ([]*Registration, error)
	Update(ctx context.Context, reg *Registration) error
}

// CodeGenerator produces short unique codes, used for record IDs and for
// generated upload filenames.
type CodeGenerator interface {
	NewCode() (string, error)
}

// RegisterInput carries the submitted registration form fields.
type RegisterInput struct {
	Category     string
	Region       string
	PaperID      string
	Name         string
	Organization string
	Email        string
	Mobile       string
}

// RegisterResult is returned to the client after a successful registration.
// FileURL is null when no paper was uploaded.
// swagger:model RegisterResult
type RegisterResult struct {
	ID       string  `json:"id"`
	Currency string  `json:"currency"`
	Amount   int     `json:"amount"`
	FileURL  *string `json:"file"`
}

// RegistrationService validates and creates registration records.
type RegistrationService interface {
	// Register creates a new record from the form fields and optional paper
	// upload. Nothing is persisted when validation fails.
	Register(ctx context.Context, input RegisterInput, paper *FileUpload) (*RegisterResult, error)
	GetByID(ctx context.Context, id string) (*Registration, error)
}
