// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

// CodeLength is the fixed length of a printed product code.
const CodeLength = 12

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode draws a product code from the uppercase+digit alphabet using
// a cryptographically secure source, so codes are not guessable from earlier
// batches.
func GenerateCode() (string, error) {
	return GenerateRandomString(CodeLength)
}

func GenerateRandomString(length int) (string, error) {
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[n.Int64()]
	}

	return string(b), nil
}
