package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Age             int    `json:"age" validate:"required,gte=1,lte=120"`
	Gender          string `json:"gender" validate:"required,oneof=male female other"`
	Mobile          string `json:"mobile" validate:"required,min=10,max=20"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required,min=5"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	// Identifier is the patient's mobile number or patient code.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientCode string    `json:"patient_code"`
	Name        string    `json:"name"`
	Mobile      string    `json:"mobile"`
	Email       string    `json:"email,omitempty"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AuthResponse is returned by register and login: the identity plus the
// session token pair.
type AuthResponse struct {
	Patient *PatientResponse `json:"patient"`
	Tokens  TokenResponse    `json:"tokens"`
}

// AdminSession is the persisted admin-session identity shape.
type AdminSession struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	LoginTime   time.Time `json:"login_time"`
}

type AdminLoginResponse struct {
	Session AdminSession  `json:"session"`
	Tokens  TokenResponse `json:"tokens"`
}
