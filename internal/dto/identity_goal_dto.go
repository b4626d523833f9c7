package dto

import (
	"time"

	"github.com/atomicsystems/atomic-backend/internal/models"
	"github.com/atomicsystems/atomic-backend/internal/validation"
	"github.com/google/uuid"
)

type CreateIdentityGoalRequest struct {
	IdentityAreaID uuid.UUID  `json:"identityAreaId"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	TargetValue    *float64   `json:"targetValue"`
	CurrentValue   *float64   `json:"currentValue"`
	Unit           *string    `json:"unit"`
	GoalType       *string    `json:"goalType"`
	TargetDate     *time.Time `json:"targetDate"`
	Color          *string    `json:"color"`
	Order          *int       `json:"order"`
}

type UpdateIdentityGoalRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	TargetValue  *float64   `json:"targetValue"`
	CurrentValue *float64   `json:"currentValue"`
	Unit         *string    `json:"unit"`
	GoalType     *string    `json:"goalType"`
	TargetDate   *time.Time `json:"targetDate"`
	Color        *string    `json:"color"`
	Order        *int       `json:"order"`
}

type UpdateGoalProgressRequest struct {
	CurrentValue *float64 `json:"currentValue"`
	IsAchieved   *bool    `json:"isAchieved"`
}

// ReorderGoalsRequest carries a plain ordered id list; position implies order.
type ReorderGoalsRequest struct {
	GoalIDs []uuid.UUID `json:"goalIds"`
}

type IdentityGoalResponse struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"userId"`
	IdentityAreaID uuid.UUID   `json:"identityAreaId"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	TargetValue    *float64    `json:"targetValue,omitempty"`
	CurrentValue   *float64    `json:"currentValue,omitempty"`
	Unit           string      `json:"unit,omitempty"`
	GoalType       string      `json:"goalType"`
	TargetDate     *time.Time  `json:"targetDate,omitempty"`
	IsAchieved     bool        `json:"isAchieved"`
	AchievedAt     *time.Time  `json:"achievedAt,omitempty"`
	Color          string      `json:"color"`
	Order          int         `json:"order"`
	IsActive       bool        `json:"isActive"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	IdentityArea   AreaSummary `json:"identityArea"`
}

// IdentityGoalResponseFrom expects g.IdentityArea preloaded.
func IdentityGoalResponseFrom(g models.IdentityGoal) IdentityGoalResponse {
	return IdentityGoalResponse{
		ID:             g.ID,
		UserID:         g.UserID,
		IdentityAreaID: g.IdentityAreaID,
		Title:          g.Title,
		Description:    g.Description,
		TargetValue:    g.TargetValue,
		CurrentValue:   g.CurrentValue,
		Unit:           g.Unit,
		GoalType:       g.GoalType,
		TargetDate:     g.TargetDate,
		IsAchieved:     g.IsAchieved,
		AchievedAt:     g.AchievedAt,
		Color:          g.Color,
		Order:          g.Order,
		IsActive:       g.IsActive,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
		IdentityArea: AreaSummary{
			ID:    g.IdentityArea.ID,
			Name:  g.IdentityArea.Name,
			Color: g.IdentityArea.Color,
		},
	}
}

func IdentityGoalResponsesFrom(goals []models.IdentityGoal) []IdentityGoalResponse {
	out := make([]IdentityGoalResponse, len(goals))
	for i, g := range goals {
		out[i] = IdentityGoalResponseFrom(g)
	}
	return out
}

func (r *CreateIdentityGoalRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.IdentityAreaID == uuid.Nil {
		errs = append(errs, validation.FieldError{Field: "identityAreaId", Message: "identity area id is required"})
	}
	if r.Title == "" {
		errs = append(errs, validation.FieldError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > 200 {
		errs = append(errs, validation.FieldError{Field: "title", Message: "title must be less than 200 characters"})
	}
	if r.Unit != nil && len(*r.Unit) > 50 {
		errs = append(errs, validation.FieldError{Field: "unit", Message: "unit must be less than 50 characters"})
	}
	if r.GoalType != nil && !validation.OneOf(*r.GoalType, models.GoalTypes) {
		errs = append(errs, validation.FieldError{Field: "goalType", Message: "goal type must be one of ABOVE, BELOW, EXACT, QUALITATIVE"})
	}
	if r.Color != nil && !validation.IsValidHexColor(*r.Color) {
		errs = append(errs, validation.FieldError{Field: "color", Message: "color must be a valid hex color"})
	}
	if r.Order != nil && *r.Order < 0 {
		errs = append(errs, validation.FieldError{Field: "order", Message: "order must not be negative"})
	}
	return errs
}

func (r *UpdateIdentityGoalRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.Title != nil {
		if *r.Title == "" {
			errs = append(errs, validation.FieldError{Field: "title", Message: "title is required"})
		} else if len(*r.Title) > 200 {
			errs = append(errs, validation.FieldError{Field: "title", Message: "title must be less than 200 characters"})
		}
	}
	if r.Unit != nil && len(*r.Unit) > 50 {
		errs = append(errs, validation.FieldError{Field: "unit", Message: "unit must be less than 50 characters"})
	}
	if r.GoalType != nil && !validation.OneOf(*r.GoalType, models.GoalTypes) {
		errs = append(errs, validation.FieldError{Field: "goalType", Message: "goal type must be one of ABOVE, BELOW, EXACT, QUALITATIVE"})
	}
	if r.Color != nil && !validation.IsValidHexColor(*r.Color) {
		errs = append(errs, validation.FieldError{Field: "color", Message: "color must be a valid hex color"})
	}
	if r.Order != nil && *r.Order < 0 {
		errs = append(errs, validation.FieldError{Field: "order", Message: "order must not be negative"})
	}
	return errs
}

func (r *UpdateGoalProgressRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if r.CurrentValue == nil {
		errs = append(errs, validation.FieldError{Field: "currentValue", Message: "current value is required"})
	}
	return errs
}

func (r *ReorderGoalsRequest) Validate() []validation.FieldError {
	var errs []validation.FieldError
	if len(r.GoalIDs) == 0 {
		errs = append(errs, validation.FieldError{Field: "goalIds", Message: "at least one goal id is required"})
	}
	return errs
}
