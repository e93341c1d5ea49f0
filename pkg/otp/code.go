package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a signup code.
const CodeLength = 6

// Generate returns a zero-padded random numeric code.
func Generate() (string, error) {
	max := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(CodeLength), nil)
	value, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, value.Int64()), nil
}
