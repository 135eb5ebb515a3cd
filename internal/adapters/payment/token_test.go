package payment

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("AB12CD34EF", "USD", 150)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &referenceClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*referenceClaims)
	require.True(t, ok)
	assert.Equal(t, "AB12CD34EF", claims.Subject)
	assert.Equal(t, "USD", claims.Currency)
	assert.Equal(t, 150, claims.Amount)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(referenceTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("right-secret")
	token, err := issuer.Issue("AB12CD34EF", "USD", 150)
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &referenceClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	require.Error(t, err)
}
