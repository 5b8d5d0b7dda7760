package models

import (
	"regexp"
	"strings"
	"time"

	"codetrek/internal/common"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DateJoined   time.Time `db:"date_joined" json:"date_joined"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.Username == "" {
		return common.NewValidationError("username", "username cannot be empty")
	}
	if len(r.Username) < 3 || len(r.Username) > 50 {
		return common.NewValidationError("username", "username must be between 3 and 50 characters")
	}
	if !emailRegex.MatchString(r.Email) {
		return common.NewValidationError("email", "invalid email format")
	}
	if len(r.Password) < 8 {
		return common.NewValidationError("password", "password must be at least 8 characters long")
	}
	return nil
}

// LoginRequest accepts a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
