package dto

import (
	"time"

	"medicore/internal/domain/entity"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,oneof=patient doctor lab_assistant admin"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`

	// Doctor specific
	HospitalEmail  string `json:"hospital_email" validate:"omitempty,email"`
	Specialization string `json:"specialization" validate:"omitempty,max=255"`
	LicenseNumber  string `json:"license_number" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserResponse struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	FullName       string      `json:"full_name"`
	Role           entity.Role `json:"role"`
	Phone          string      `json:"phone,omitempty"`
	IsActive       bool        `json:"is_active"`
	IsVerified     bool        `json:"is_verified"`
	HospitalEmail  string      `json:"hospital_email,omitempty"`
	Specialization string      `json:"specialization,omitempty"`
	LicenseNumber  string      `json:"license_number,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}
