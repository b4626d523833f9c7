package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemExecution is an append-only log entry. Rows are never updated or
// deleted, and multiple executions per day are allowed on purpose.
type SystemExecution struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SystemID            uuid.UUID `gorm:"type:uuid;not null;index" json:"systemId"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ExecutedAt          time.Time `gorm:"not null;index" json:"executedAt"`
	Quality             int       `gorm:"not null;default:3" json:"quality"`
	Notes               string    `gorm:"type:text" json:"notes,omitempty"`
	StrengthensIdentity bool      `gorm:"not null;default:true" json:"strengthensIdentity"`
	CreatedAt           time.Time `json:"createdAt"`
}
