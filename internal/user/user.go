package user

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an account holder. PasswordHash is a bcrypt hash and never
// leaves this package.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
}
