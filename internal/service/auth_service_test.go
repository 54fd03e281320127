package service

import (
	"strings"
	"testing"
)

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService("admin", "secret", "test-signing-key")

	if _, err := svc.Login("admin", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("nobody", "secret"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("admin", "secret", "test-signing-key")

	resp, err := svc.Login("admin", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.AdminID, "admin_") {
		t.Fatalf("unexpected admin ID: %s", resp.AdminID)
	}

	claims, err := svc.ValidateAdminToken(resp.Token)
	if err != nil {
		t.Fatalf("token did not validate: %v", err)
	}
	if claims.AdminID != resp.AdminID {
		t.Fatalf("claims admin ID mismatch: %s vs %s", claims.AdminID, resp.AdminID)
	}
}

func TestValidateAdminTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewAuthService("admin", "secret", "key-one")
	verifier := NewAuthService("admin", "secret", "key-two")

	resp, err := issuer.Login("admin", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ValidateAdminToken(resp.Token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
