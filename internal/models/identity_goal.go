package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal types. ABOVE/BELOW/EXACT compare CurrentValue against TargetValue;
// QUALITATIVE goals are binary. Progress percentage is computed client-side.
const (
	GoalTypeAbove       = "ABOVE"
	GoalTypeBelow       = "BELOW"
	GoalTypeExact       = "EXACT"
	GoalTypeQualitative = "QUALITATIVE"
)

var GoalTypes = []string{GoalTypeAbove, GoalTypeBelow, GoalTypeExact, GoalTypeQualitative}

type IdentityGoal struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	IdentityAreaID uuid.UUID  `gorm:"type:uuid;not null;index" json:"identityAreaId"`
	Title          string     `gorm:"not null;size:200" json:"title"`
	Description    string     `gorm:"type:text" json:"description,omitempty"`
	TargetValue    *float64   `json:"targetValue,omitempty"`
	CurrentValue   *float64   `json:"currentValue,omitempty"`
	Unit           string     `gorm:"size:50" json:"unit,omitempty"`
	GoalType       string     `gorm:"size:15;not null;default:'EXACT'" json:"goalType"`
	TargetDate     *time.Time `json:"targetDate,omitempty"`
	IsAchieved     bool       `gorm:"not null;default:false" json:"isAchieved"`
	AchievedAt     *time.Time `json:"achievedAt,omitempty"`
	Color          string     `gorm:"size:7;not null;default:'#3B82F6'" json:"color"`
	Order          int        `gorm:"column:order;not null;default:0" json:"order"`
	IsActive       bool       `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	IdentityArea IdentityArea `gorm:"foreignKey:IdentityAreaID" json:"-"`
}
