package models

import (
	"time"

	"github.com/google/uuid"
)

// Habit frequency.
const (
	FrequencyDaily  = "DAILY"
	FrequencyWeekly = "WEEKLY"
	FrequencyCustom = "CUSTOM"
)

var Frequencies = []string{FrequencyDaily, FrequencyWeekly, FrequencyCustom}

// AtomicSystem is one habit loop: the four narrative fields follow the
// cue/craving/response/reward model and are all required.
type AtomicSystem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	IdentityAreaID uuid.UUID `gorm:"type:uuid;not null;index" json:"identityAreaId"`
	Name           string    `gorm:"not null;size:100" json:"name"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	Cue            string    `gorm:"type:text;not null" json:"cue"`
	Craving        string    `gorm:"type:text;not null" json:"craving"`
	Response       string    `gorm:"type:text;not null" json:"response"`
	Reward         string    `gorm:"type:text;not null" json:"reward"`
	Frequency      string    `gorm:"size:10;not null;default:'DAILY'" json:"frequency"`
	TimeOfDay      string    `gorm:"size:50" json:"timeOfDay,omitempty"`
	EstimatedMin   *int      `json:"estimatedMin,omitempty"`
	Difficulty     int       `gorm:"not null;default:3" json:"difficulty"`
	Order          int       `gorm:"column:order;not null;default:0" json:"order"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	IdentityArea IdentityArea      `gorm:"foreignKey:IdentityAreaID" json:"-"`
	Executions   []SystemExecution `gorm:"foreignKey:SystemID" json:"executions,omitempty"`
}
