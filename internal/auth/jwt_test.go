package auth

import (
	"testing"

	"github.com/skillvento/skillvento/internal/config"
	"github.com/skillvento/skillvento/internal/constant"
)

func TestGenerateAndVerifyJwtToken(t *testing.T) {
	j := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)

	payload := JWTPayload{
		ID:        "user-1",
		Email:     "test@example.com",
		Username:  "test",
		FirstName: "Test",
		LastName:  "User",
	}

	refresh, access, err := j.GenerateRefreshAndAccessToken(payload)
	if err != nil {
		t.Fatalf("GenerateRefreshAndAccessToken() error = %v", err)
	}

	accessClaims, err := j.VerifyJwtToken(*access)
	if err != nil {
		t.Fatalf("VerifyJwtToken(access) error = %v", err)
	}
	if accessClaims.Type != constant.JWT_TYPE_ACCESS {
		t.Errorf("access token type = %s, want %s", accessClaims.Type, constant.JWT_TYPE_ACCESS)
	}
	if accessClaims.User != payload {
		t.Errorf("access token user = %+v, want %+v", accessClaims.User, payload)
	}

	refreshClaims, err := j.VerifyJwtToken(*refresh)
	if err != nil {
		t.Fatalf("VerifyJwtToken(refresh) error = %v", err)
	}
	if refreshClaims.Type != constant.JWT_TYPE_REFRESH {
		t.Errorf("refresh token type = %s, want %s", refreshClaims.Type, constant.JWT_TYPE_REFRESH)
	}
}

func TestVerifyJwtTokenWrongSecret(t *testing.T) {
	issuer := NewJwt(config.AuthConfig{JWT_SECRET: "secret-a"}, nil)
	verifier := NewJwt(config.AuthConfig{JWT_SECRET: "secret-b"}, nil)

	_, access, err := issuer.GenerateRefreshAndAccessToken(JWTPayload{ID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateRefreshAndAccessToken() error = %v", err)
	}

	if _, err := verifier.VerifyJwtToken(*access); err == nil {
		t.Error("VerifyJwtToken() expected error for token signed with another secret")
	}
}
