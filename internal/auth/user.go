package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const minPasswordLength = 6

var (
	ErrWrongCredentials = errors.New("invalid email or password")
	ErrUserExists       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidInput     = errors.New("invalid credentials input")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	PasswordHash string    `json:"-"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Normalize lower-cases and trims the email, which is the account key.
func (c Credentials) Normalize() Credentials {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Name = strings.TrimSpace(c.Name)
	return c
}

func (c Credentials) validate(forRegister bool) error {
	if c.Email == "" || c.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if forRegister && len(c.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	return nil
}

// Session is what a successful register or login hands back to the client.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
