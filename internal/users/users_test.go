package users

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/auth"
)

func newTestConf(t *testing.T) *Conf {
	t.Helper()
	c, err := NewConf(NewMemoryStore())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSignupNormalizesEmail(t *testing.T) {
	c := newTestConf(t)
	ctx := context.Background()

	user, err := c.Signup(ctx, NewUser{Name: " Asha ", Email: "  Asha@Example.COM ", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "asha@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Name != "Asha" {
		t.Errorf("expected trimmed name, got %q", user.Name)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestSignupRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	c := newTestConf(t)
	ctx := context.Background()

	if _, err := c.Signup(ctx, NewUser{Name: "Asha", Email: "asha@example.com", Password: "hunter22"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Signup(ctx, NewUser{Name: "Imposter", Email: "ASHA@example.com", Password: "other"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	c := newTestConf(t)
	ctx := context.Background()

	created, err := c.Signup(ctx, NewUser{Name: "Asha", Email: "asha@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}

	user, err := c.Login(ctx, LoginRequest{Email: "Asha@Example.com", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != created.ID {
		t.Errorf("expected login to return the registered account")
	}

	// Wrong password and unknown email are indistinguishable to the caller.
	if _, err := c.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := c.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "hunter22"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRoles(t *testing.T) {
	regular := Roles(User{})
	if len(regular) != 1 || regular[0] != auth.RoleUser {
		t.Errorf("expected only the user role, got %v", regular)
	}

	admin := Roles(User{IsAdmin: true})
	if len(admin) != 2 || admin[1] != auth.RoleAdmin {
		t.Errorf("expected user and admin roles, got %v", admin)
	}
}
