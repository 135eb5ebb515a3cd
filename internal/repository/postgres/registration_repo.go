package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confregistry/internal/domain"
)

// registrationColumns is the select list shared by every query. The table
// also carries a bigserial seq column that preserves insertion order; it is
// never scanned into the entity.
const registrationColumns = `
	id, created_at, category, region, currency, amount,
	paper_id, name, organization, email, mobile,
	paper_filename, paper_original,
	paid, paid_at,
	transaction_id, payment_method, payer_email,
	payment_proof_filename, payment_proof_original`

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := r.DB.ExecContext(ctx, query,
		reg.ID, reg.CreatedAt, reg.Category, reg.Region, reg.Currency, reg.Amount,
		reg.PaperID, reg.Name, reg.Organization, reg.Email, reg.Mobile,
		reg.PaperFilename, reg.PaperOriginal,
		reg.Paid, reg.PaidAt,
		reg.TransactionID, reg.PaymentMethod, reg.PayerEmail,
		reg.PaymentProofFilename, reg.PaymentProofOriginal,
	)
	return err
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = $1
	`
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) List(ctx context.Context) ([]*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY seq ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE registrations
		SET category = $1, region = $2, currency = $3, amount = $4,
			paper_id = $5, name = $6, organization = $7, email = $8, mobile = $9,
			paper_filename = $10, paper_original = $11,
			paid = $12, paid_at = $13,
			transaction_id = $14, payment_method = $15, payer_email = $16,
			payment_proof_filename = $17, payment_proof_original = $18
		WHERE id = $19
	`
	result, err := r.DB.ExecContext(ctx, query,
		reg.Category, reg.Region, reg.Currency, reg.Amount,
		reg.PaperID, reg.Name, reg.Organization, reg.Email, reg.Mobile,
		reg.PaperFilename, reg.PaperOriginal,
		reg.Paid, reg.PaidAt,
		reg.TransactionID, reg.PaymentMethod, reg.PayerEmail,
		reg.PaymentProofFilename, reg.PaymentProofOriginal,
		reg.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRegistration(s interface{ Scan(dest ...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := s.Scan(
		&reg.ID, &reg.CreatedAt, &reg.Category, &reg.Region, &reg.Currency, &reg.Amount,
		&reg.PaperID, &reg.Name, &reg.Organization, &reg.Email, &reg.Mobile,
		&reg.PaperFilename, &reg.PaperOriginal,
		&reg.Paid, &reg.PaidAt,
		&reg.TransactionID, &reg.PaymentMethod, &reg.PayerEmail,
		&reg.PaymentProofFilename, &reg.PaymentProofOriginal,
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}
