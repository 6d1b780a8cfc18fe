// Package users handles registration and credential checks for the
// storefront's accounts. Passwords are stored bcrypt-hashed, emails are
// normalized to lower case and unique.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/auth"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Store interface {
	InsertUser(ctx context.Context, user User) error
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type Conf struct {
	store Store
}

func NewConf(store Store) (*Conf, error) {
	if store == nil {
		return nil, fmt.Errorf("store is nil")
	}
	return &Conf{store: store}, nil
}

func (c *Conf) Signup(ctx context.Context, nu NewUser) (User, error) {
	email := strings.ToLower(strings.TrimSpace(nu.Email))
	if _, err := c.store.GetUserByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, fmt.Errorf("checking existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(nu.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.store.InsertUser(ctx, user); err != nil {
		return User{}, fmt.Errorf("inserting user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the account. An unknown email
// and a wrong password both come back as ErrInvalidCredentials.
func (c *Conf) Login(ctx context.Context, req LoginRequest) (User, error) {
	user, err := c.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("fetching user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (c *Conf) GetByID(ctx context.Context, id string) (User, error) {
	return c.store.GetUserByID(ctx, id)
}

// Roles maps the account's admin flag onto the role set carried in tokens.
func Roles(u User) []string {
	roles := []string{auth.RoleUser}
	if u.IsAdmin {
		roles = append(roles, auth.RoleAdmin)
	}
	return roles
}
