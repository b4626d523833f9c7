package dto

import (
	"time"

	"github.com/atomicsystems/atomic-backend/internal/models"
	"github.com/atomicsystems/atomic-backend/internal/validation"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsPremium bool      `json:"isPremium"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

func UserResponseFrom(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsPremium: u.IsPremium,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UpdateProfileRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.Name != nil {
		if msg := validation.ValidateName(*r.Name); msg != "" {
			errs = append(errs, validation.FieldError{Field: "name", Message: msg})
		}
	}
	if r.Email != nil && !validation.IsValidEmail(*r.Email) {
		errs = append(errs, validation.FieldError{Field: "email", Message: "invalid email format"})
	}
	return errs
}
