package auth

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	keys, err := NewKeys("test-secret")
	if err != nil {
		t.Fatal(err)
	}

	token, err := keys.GenerateToken("user-1", []string{RoleUser, RoleAdmin})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := keys.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %q", claims.Subject)
	}
	if !claims.HasRole(RoleUser) || !claims.IsAdmin() {
		t.Errorf("expected both roles, got %v", claims.Roles)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signer, err := NewKeys("secret-a")
	if err != nil {
		t.Fatal(err)
	}
	verifier, err := NewKeys("secret-b")
	if err != nil {
		t.Fatal(err)
	}

	token, err := signer.GenerateToken("user-1", []string{RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	keys, err := NewKeys("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := keys.ValidateToken("not.a.token"); err == nil {
		t.Error("expected validation to fail")
	}
}

func TestNewKeysRequiresSecret(t *testing.T) {
	if _, err := NewKeys(""); err == nil || !strings.Contains(err.Error(), "secret") {
		t.Errorf("expected missing-secret error, got %v", err)
	}
}

func TestRoleChecks(t *testing.T) {
	c := Claims{Roles: []string{RoleUser}}
	if c.IsAdmin() {
		t.Error("user role must not grant admin")
	}
	if !c.HasRole(RoleUser) {
		t.Error("expected user role")
	}
	if (Claims{}).HasRole(RoleUser) {
		t.Error("empty claims must have no roles")
	}
}
