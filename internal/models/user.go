package models

import (
	"time"

	"github.com/google/uuid"
)

// User owns every other entity transitively. Suspension flips IsActive
// instead of deleting the row so owned data survives it.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name      string    `gorm:"not null;size:50" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	IsPremium bool      `gorm:"not null;default:false" json:"isPremium"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
