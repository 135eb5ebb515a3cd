package payment

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"confregistry/internal/domain"
)

// referenceTTL bounds how long a checkout link stays valid.
const referenceTTL = 30 * time.Minute

type referenceClaims struct {
	jwt.RegisteredClaims
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
}

type jwtIssuer struct {
	secret []byte
}

// NewJWTIssuer returns a PaymentReferenceIssuer that signs references with
// HS256 using the given secret. The registration ID becomes the subject and
// the fee snapshot travels in the claims, so the checkout page can render
// the charge without another lookup.
func NewJWTIssuer(secret string) domain.PaymentReferenceIssuer {
	return &jwtIssuer{secret: []byte(secret)}
}

func (i *jwtIssuer) Issue(registrationID, currency string, amount int) (string, error) {
	now := time.Now()
	claims := referenceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   registrationID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(referenceTTL)),
		},
		Currency: currency,
		Amount:   amount,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign payment reference: %w", err)
	}
	return tokenString, nil
}
