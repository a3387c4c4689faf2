package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"parent@example.com"`
	Password string `json:"password" binding:"required" example:"Abc123"`
}

// RegisterResponse is returned after a successful applicant registration
type RegisterResponse struct {
	Success bool      `json:"success" example:"true"`
	Token   string    `json:"token"`
	Msg     string    `json:"msg" example:"User registered successfully"`
	UserID  uuid.UUID `json:"userId"`
}

// LoginData identifies the logged-in applicant
type LoginData struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

// LoginResponse is returned after a successful applicant login
type LoginResponse struct {
	Msg  string    `json:"msg" example:"Login successful"`
	Data LoginData `json:"data"`
}

// AdminRegisterRequest represents the administrator registration body.
// Field presence and length are checked by the service so the client sees
// the same messages regardless of which field is missing.
type AdminRegisterRequest struct {
	Email         string `json:"email" example:"office@pioneer.edu"`
	Password      string `json:"password" example:"secret1"`
	PasswordCheck string `json:"passwordCheck" example:"secret1"`
	Name          string `json:"name,omitempty"`
	Surname       string `json:"surname,omitempty"`
}

// AdminData is the public part of an administrator account
type AdminData struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Surname string    `json:"surname,omitempty"`
	Email   string    `json:"email"`
}

// AdminLoginResult carries the issued token with the administrator
type AdminLoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Admin     AdminData `json:"admin"`
}

// TokenValidationResponse reports whether a presented token is usable
type TokenValidationResponse struct {
	Valid bool       `json:"valid" example:"true"`
	Admin *AdminData `json:"admin,omitempty"`
}
