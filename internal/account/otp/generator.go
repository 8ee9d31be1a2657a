// Package otp generates, stores, and checks the six-digit email passcodes
// used to confirm address ownership during registration.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// Generate returns a uniformly random six-digit code in [100000, 999999],
// rendered as a string so leading semantics never depend on integer
// formatting.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
