package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/bagoloot/bagoloot/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialChecker decides whether a username/password pair may obtain a
// token. Every rejection is ErrInvalidCredentials so callers cannot tell a
// missing user from a wrong password.
type CredentialChecker interface {
	Check(ctx context.Context, username, password string) (Identity, error)
}

// StructuralChecker accepts any non-empty username that differs from the
// password. It performs no lookup and exists for demo deployments only.
type StructuralChecker struct {
	Role string
}

func (c StructuralChecker) Check(_ context.Context, username, password string) (Identity, error) {
	if username == "" || username == password {
		return Identity{}, ErrInvalidCredentials
	}

	id := Identity{Username: username}
	if c.Role != "" {
		id.Roles = []string{c.Role}
	}

	return id, nil
}

// StoreChecker verifies the password against the bcrypt hash of the
// matching user row.
type StoreChecker struct {
	DB *gorm.DB
}

func (c StoreChecker) Check(ctx context.Context, username, password string) (Identity, error) {
	if username == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	var user models.User

	err := c.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{Username: user.Username, Roles: user.RoleNames()}, nil
}
