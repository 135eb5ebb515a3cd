package domain

import (
	"context"
	"io"
)

// AdminRegistration is a record augmented with derived file URLs for the
// admin listing. URLs are null when the corresponding file was never uploaded.
// swagger:model AdminRegistration
type AdminRegistration struct {
	*Registration
	PaperURL        *string `json:"paper_url"`
	PaymentProofURL *string `json:"payment_proof_url"`
}

// AdminService lists, exports, and force-mutates registration records.
// Caller authentication happens at the delivery layer before any of these run.
type AdminService interface {
	// List returns all records newest first. A non-empty query keeps only
	// records whose id, name, and paper id concatenation contains it,
	// case-insensitively.
	List(ctx context.Context, query string) ([]*AdminRegistration, error)
	// ExportCSV streams all records newest first as CSV rows to w.
	ExportCSV(ctx context.Context, w io.Writer) error
	// MarkPaid force-sets the paid flag. Unpaying clears paid_at but leaves
	// the recorded transaction fields untouched.
	MarkPaid(ctx context.Context, id string, paid bool) (*Registration, error)
}
