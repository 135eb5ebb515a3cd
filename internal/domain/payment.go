package domain

import "context"

// PaymentIntent is the mock payment-initiation response. URL points at the
// configured checkout base with a signed payment reference; no gateway call
// is made.
// swagger:model PaymentIntent
type PaymentIntent struct {
	URL      string `json:"url"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

// ConfirmInput carries a payment-confirmation submission. Which fields are
// mandatory depends on service configuration; Email is always required.
type ConfirmInput struct {
	TransactionID string
	Method        string
	Email         string
}

// PaymentReferenceIssuer signs the short-lived reference embedded in
// checkout URLs.
type PaymentReferenceIssuer interface {
	Issue(registrationID, currency string, amount int) (string, error)
}

// PaymentService applies payment state transitions to existing records.
type PaymentService interface {
	CreatePayment(ctx context.Context, id string) (*PaymentIntent, error)
	// ConfirmPayment marks the record paid and stores the transaction fields
	// and optional proof upload. One-way: there is no unconfirm here.
	ConfirmPayment(ctx context.Context, id string, input ConfirmInput, proof *FileUpload) (*Registration, error)
}
