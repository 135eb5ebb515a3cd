package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"confregistry/internal/domain"
)

// exportColumns is the fixed CSV header row, in export order.
var exportColumns = []string{
	"id", "created_at", "name", "organization", "email", "mobile",
	"category", "region", "currency", "amount",
	"paper_id", "paper_original",
	"paid", "paid_at",
	"transaction_id", "payment_method", "payer_email",
}

type adminService struct {
	repo           domain.RegistrationRepository
	contextTimeout time.Duration
}

func NewAdminService(repo domain.RegistrationRepository, timeout time.Duration) domain.AdminService {
	return &adminService{
		repo:           repo,
		contextTimeout: timeout,
	}
}

func (s *adminService) List(ctx context.Context, query string) ([]*domain.AdminRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*domain.AdminRegistration, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- { // newest first
		reg := records[i]
		if q != "" {
			haystack := strings.ToLower(reg.ID + reg.Name + reg.PaperID)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		out = append(out, withFileURLs(reg))
	}
	return out, nil
}

func (s *adminService) ExportCSV(ctx context.Context, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	records, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}

	// Rows go out one at a time so the caller can stream them; the export is
	// never assembled in memory.
	if _, err := io.WriteString(w, csvLine(exportColumns)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := len(records) - 1; i >= 0; i-- { // newest first
		if _, err := io.WriteString(w, csvLine(exportRow(records[i]))); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

func (s *adminService) MarkPaid(ctx context.Context, id string, paid bool) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Force-set only the flag and timestamp. Transaction fields survive an
	// unpay so the payment history is not erased.
	reg.Paid = paid
	if paid {
		now := time.Now().UTC()
		reg.PaidAt = &now
	} else {
		reg.PaidAt = nil
	}

	if err := s.repo.Update(ctx, reg); err != nil {
		return nil, fmt.Errorf("persist paid status: %w", err)
	}
	return reg, nil
}

func withFileURLs(reg *domain.Registration) *domain.AdminRegistration {
	a := &domain.AdminRegistration{Registration: reg}
	if reg.PaperFilename != nil {
		url := "/uploads/" + *reg.PaperFilename
		a.PaperURL = &url
	}
	if reg.PaymentProofFilename != nil {
		url := "/uploads/" + *reg.PaymentProofFilename
		a.PaymentProofURL = &url
	}
	return a
}

func exportRow(reg *domain.Registration) []string {
	return []string{
		reg.ID,
		reg.CreatedAt.Format(time.RFC3339),
		reg.Name,
		reg.Organization,
		reg.Email,
		reg.Mobile,
		reg.Category,
		reg.Region,
		reg.Currency,
		strconv.Itoa(reg.Amount),
		reg.PaperID,
		strOrEmpty(reg.PaperOriginal),
		strconv.FormatBool(reg.Paid),
		timeOrEmpty(reg.PaidAt),
		strOrEmpty(reg.TransactionID),
		strOrEmpty(reg.PaymentMethod),
		strOrEmpty(reg.PayerEmail),
	}
}

// csvLine renders one row with every field double-quoted and embedded
// quotes doubled.
func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
