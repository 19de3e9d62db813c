package skillvento

import (
	"strings"
	"testing"
)

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatalf("GenerateVerificationCode() error = %v", err)
		}

		if len(code) != verificationCodeLength {
			t.Fatalf("GenerateVerificationCode() length = %d, want %d", len(code), verificationCodeLength)
		}

		for _, r := range code {
			if !strings.ContainsRune(verificationCodeAlphabet, r) {
				t.Fatalf("GenerateVerificationCode() = %s, contains %q outside alphabet", code, r)
			}
		}
	}
}
