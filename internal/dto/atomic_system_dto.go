package dto

import (
	"time"

	"github.com/atomicsystems/atomic-backend/internal/models"
	"github.com/atomicsystems/atomic-backend/internal/validation"
	"github.com/google/uuid"
)

type CreateAtomicSystemRequest struct {
	IdentityAreaID uuid.UUID `json:"identityAreaId"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	Cue            string    `json:"cue"`
	Craving        string    `json:"craving"`
	Response       string    `json:"response"`
	Reward         string    `json:"reward"`
	Frequency      *string   `json:"frequency"`
	TimeOfDay      *string   `json:"timeOfDay"`
	EstimatedMin   *int      `json:"estimatedMin"`
	Difficulty     *int      `json:"difficulty"`
	Order          *int      `json:"order"`
}

// UpdateAtomicSystemRequest is the create schema relaxed to all-optional.
// A system cannot move between identity areas, so the parent id is absent.
type UpdateAtomicSystemRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Cue          *string `json:"cue"`
	Craving      *string `json:"craving"`
	Response     *string `json:"response"`
	Reward       *string `json:"reward"`
	Frequency    *string `json:"frequency"`
	TimeOfDay    *string `json:"timeOfDay"`
	EstimatedMin *int    `json:"estimatedMin"`
	Difficulty   *int    `json:"difficulty"`
	Order        *int    `json:"order"`
}

type ExecuteSystemRequest struct {
	Quality             *int    `json:"quality"`
	Notes               *string `json:"notes"`
	StrengthensIdentity *bool   `json:"strengthensIdentity"`
}

// AreaSummary is the denormalized parent view embedded in child responses.
type AreaSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type AtomicSystemResponse struct {
	ID             uuid.UUID                `json:"id"`
	UserID         uuid.UUID                `json:"userId"`
	IdentityAreaID uuid.UUID                `json:"identityAreaId"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description,omitempty"`
	Cue            string                   `json:"cue"`
	Craving        string                   `json:"craving"`
	Response       string                   `json:"response"`
	Reward         string                   `json:"reward"`
	Frequency      string                   `json:"frequency"`
	TimeOfDay      string                   `json:"timeOfDay,omitempty"`
	EstimatedMin   *int                     `json:"estimatedMin,omitempty"`
	Difficulty     int                      `json:"difficulty"`
	Order          int                      `json:"order"`
	IsActive       bool                     `json:"isActive"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
	IdentityArea   AreaSummary              `json:"identityArea"`
	ExecutionCount int64                    `json:"executionCount"`
	Executions     []models.SystemExecution `json:"executions,omitempty"`
}

// AtomicSystemResponseFrom expects s.IdentityArea preloaded; executions are
// attached only by the single-row fetch.
func AtomicSystemResponseFrom(s models.AtomicSystem, executionCount int64) AtomicSystemResponse {
	return AtomicSystemResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		IdentityAreaID: s.IdentityAreaID,
		Name:           s.Name,
		Description:    s.Description,
		Cue:            s.Cue,
		Craving:        s.Craving,
		Response:       s.Response,
		Reward:         s.Reward,
		Frequency:      s.Frequency,
		TimeOfDay:      s.TimeOfDay,
		EstimatedMin:   s.EstimatedMin,
		Difficulty:     s.Difficulty,
		Order:          s.Order,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		IdentityArea: AreaSummary{
			ID:    s.IdentityArea.ID,
			Name:  s.IdentityArea.Name,
			Color: s.IdentityArea.Color,
		},
		ExecutionCount: executionCount,
		Executions:     s.Executions,
	}
}

func (r *CreateAtomicSystemRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.IdentityAreaID == uuid.Nil {
		errs = append(errs, validation.FieldError{Field: "identityAreaId", Message: "identity area id is required"})
	}
	if r.Name == "" {
		errs = append(errs, validation.FieldError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 100 {
		errs = append(errs, validation.FieldError{Field: "name", Message: "name must be less than 100 characters"})
	}
	if r.Cue == "" {
		errs = append(errs, validation.FieldError{Field: "cue", Message: "cue is required (1st Law: Make it Obvious)"})
	}
	if r.Craving == "" {
		errs = append(errs, validation.FieldError{Field: "craving", Message: "craving is required (2nd Law: Make it Attractive)"})
	}
	if r.Response == "" {
		errs = append(errs, validation.FieldError{Field: "response", Message: "response is required (3rd Law: Make it Easy)"})
	}
	if r.Reward == "" {
		errs = append(errs, validation.FieldError{Field: "reward", Message: "reward is required (4th Law: Make it Satisfying)"})
	}
	if r.Frequency != nil && !validation.OneOf(*r.Frequency, models.Frequencies) {
		errs = append(errs, validation.FieldError{Field: "frequency", Message: "frequency must be one of DAILY, WEEKLY, CUSTOM"})
	}
	if r.EstimatedMin != nil && (*r.EstimatedMin < 1 || *r.EstimatedMin > 480) {
		errs = append(errs, validation.FieldError{Field: "estimatedMin", Message: "estimated minutes must be between 1 and 480"})
	}
	if r.Difficulty != nil && (*r.Difficulty < 1 || *r.Difficulty > 5) {
		errs = append(errs, validation.FieldError{Field: "difficulty", Message: "difficulty must be between 1 and 5"})
	}
	if r.Order != nil && *r.Order < 0 {
		errs = append(errs, validation.FieldError{Field: "order", Message: "order must not be negative"})
	}
	return errs
}

func (r *UpdateAtomicSystemRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.Name != nil {
		if *r.Name == "" {
			errs = append(errs, validation.FieldError{Field: "name", Message: "name is required"})
		} else if len(*r.Name) > 100 {
			errs = append(errs, validation.FieldError{Field: "name", Message: "name must be less than 100 characters"})
		}
	}
	for field, v := range map[string]*string{"cue": r.Cue, "craving": r.Craving, "response": r.Response, "reward": r.Reward} {
		if v != nil && *v == "" {
			errs = append(errs, validation.FieldError{Field: field, Message: field + " must not be empty"})
		}
	}
	if r.Frequency != nil && !validation.OneOf(*r.Frequency, models.Frequencies) {
		errs = append(errs, validation.FieldError{Field: "frequency", Message: "frequency must be one of DAILY, WEEKLY, CUSTOM"})
	}
	if r.EstimatedMin != nil && (*r.EstimatedMin < 1 || *r.EstimatedMin > 480) {
		errs = append(errs, validation.FieldError{Field: "estimatedMin", Message: "estimated minutes must be between 1 and 480"})
	}
	if r.Difficulty != nil && (*r.Difficulty < 1 || *r.Difficulty > 5) {
		errs = append(errs, validation.FieldError{Field: "difficulty", Message: "difficulty must be between 1 and 5"})
	}
	if r.Order != nil && *r.Order < 0 {
		errs = append(errs, validation.FieldError{Field: "order", Message: "order must not be negative"})
	}
	return errs
}

func (r *ExecuteSystemRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.Quality != nil && (*r.Quality < 1 || *r.Quality > 5) {
		errs = append(errs, validation.FieldError{Field: "quality", Message: "quality must be between 1 and 5"})
	}
	return errs
}
