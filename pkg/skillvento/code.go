package skillvento

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	verificationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	verificationCodeLength   = 8
)

// GenerateVerificationCode returns a short human-shareable code.
// Uniqueness is not guaranteed by construction; the record store is
// responsible for rejecting collisions if it needs them unique.
func GenerateVerificationCode() (string, error) {
	return gonanoid.Generate(verificationCodeAlphabet, verificationCodeLength)
}
