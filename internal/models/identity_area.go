package models

import (
	"time"

	"github.com/google/uuid"
)

// IdentityArea groups atomic systems and goals under one identity ("I am a
// healthy person"). Soft-deleted rows keep IsActive=false and stay in the
// table; name uniqueness is only enforced among a user's active areas, so a
// plain bool is used instead of gorm.DeletedAt.
type IdentityArea struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Name        string    `gorm:"not null;size:100" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Color       string    `gorm:"size:7;not null;default:'#3B82F6'" json:"color"`
	Order       int       `gorm:"column:order;not null;default:0" json:"order"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Systems []AtomicSystem `gorm:"foreignKey:IdentityAreaID" json:"systems,omitempty"`
	Goals   []IdentityGoal `gorm:"foreignKey:IdentityAreaID" json:"goals,omitempty"`
}
