package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Rev       string    `json:"_rev,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"` // bcrypt hash; cleared before leaving the service layer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	AuthToken string `json:"authtoken"`
}

type LoginResponse struct {
	Success      bool   `json:"success"`
	AuthToken    string `json:"authtoken"`
	RefreshToken string `json:"refreshtoken,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshtoken" validate:"required"`
}

type TokenResponse struct {
	AuthToken string `json:"authtoken"`
	ExpiresIn int64  `json:"expires_in"`
}
