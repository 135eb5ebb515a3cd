package idgen

import (
	"crypto/rand"
	"math/big"

	"confregistry/internal/domain"
)

const codeLength = 10

// codeAlphabet leaves out visually ambiguous characters: no 0, I, or O.
// Codes double as record IDs and upload filenames, so they must stay
// filesystem and URL safe.
var codeAlphabet = []rune("123456789ABCDEFGHJKLMNPQRSTUVWXYZ")

type generator struct{}

// New returns a CodeGenerator producing 10-character random codes.
// Issued codes are not tracked; the keyspace (33^10) makes collisions
// negligible, not impossible.
func New() domain.CodeGenerator {
	return &generator{}
}

func (g *generator) NewCode() (string, error) {
	b := make([]rune, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
