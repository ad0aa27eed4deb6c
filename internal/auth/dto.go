package auth

import (
	"strings"

	"github.com/tiendaqr/backend/internal/users"
)

// RegisterRequest carries the signup form for a storefront customer.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest rotates a refresh session. The access token may be expired;
// it is only inspected for its jti.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ResetPasswordRequest asks for a password reset link.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse is returned by register, login, and refresh.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

func (r *RegisterRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Phone != nil {
		trimmed := strings.TrimSpace(*r.Phone)
		if trimmed == "" {
			r.Phone = nil
		} else {
			r.Phone = &trimmed
		}
	}
}

func (r *LoginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *ResetPasswordRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
