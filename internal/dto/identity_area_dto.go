package dto

import (
	"time"

	"github.com/atomicsystems/atomic-backend/internal/models"
	"github.com/atomicsystems/atomic-backend/internal/validation"
	"github.com/google/uuid"
)

type CreateIdentityAreaRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
}

type UpdateIdentityAreaRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Order       *int    `json:"order"`
}

// ReorderItem pairs a row with its new position.
type ReorderItem struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

type ReorderAreasRequest struct {
	Areas []ReorderItem `json:"areas"`
}

// SystemSummary is the denormalized child view embedded in area responses.
type SystemSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsActive bool      `json:"isActive"`
}

type IdentityAreaResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color"`
	Order       int             `json:"order"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Systems     []SystemSummary `json:"systems"`
	SystemCount int             `json:"systemCount"`
}

// IdentityAreaResponseFrom expects a.Systems preloaded with active children.
func IdentityAreaResponseFrom(a models.IdentityArea) IdentityAreaResponse {
	systems := make([]SystemSummary, len(a.Systems))
	for i, s := range a.Systems {
		systems[i] = SystemSummary{ID: s.ID, Name: s.Name, IsActive: s.IsActive}
	}
	return IdentityAreaResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		Description: a.Description,
		Color:       a.Color,
		Order:       a.Order,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Systems:     systems,
		SystemCount: len(systems),
	}
}

func IdentityAreaResponsesFrom(areas []models.IdentityArea) []IdentityAreaResponse {
	out := make([]IdentityAreaResponse, len(areas))
	for i, a := range areas {
		out[i] = IdentityAreaResponseFrom(a)
	}
	return out
}

func (r *CreateIdentityAreaRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.Name == "" {
		errs = append(errs, validation.FieldError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validation.FieldError{Field: "name", Message: "name must be less than 100 characters"})
	}
	if r.Color != nil && !validation.IsValidHexColor(*r.Color) {
		errs = append(errs, validation.FieldError{Field: "color", Message: "color must be a valid hex color"})
	}
	if r.Order != nil && *r.Order < 0 {
		errs = append(errs, validation.FieldError{Field: "order", Message: "order must not be negative"})
	}
	return errs
}

func (r *UpdateIdentityAreaRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.Name != nil {
		if *r.Name == "" {
			errs = append(errs, validation.FieldError{Field: "name", Message: "name is required"})
		} else if len(*r.Name) > 100 {
			errs = append(errs, validation.FieldError{Field: "name", Message: "name must be less than 100 characters"})
		}
	}
	if r.Color != nil && !validation.IsValidHexColor(*r.Color) {
		errs = append(errs, validation.FieldError{Field: "color", Message: "color must be a valid hex color"})
	}
	if r.Order != nil && *r.Order < 0 {
		errs = append(errs, validation.FieldError{Field: "order", Message: "order must not be negative"})
	}
	return errs
}

func (r *ReorderAreasRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if len(r.Areas) == 0 {
		errs = append(errs, validation.FieldError{Field: "areas", Message: "at least one area is required"})
	}
	for _, item := range r.Areas {
		if item.Order < 0 {
			errs = append(errs, validation.FieldError{Field: "areas", Message: "order must not be negative"})
			break
		}
	}
	return errs
}
