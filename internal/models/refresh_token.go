package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken holds one live refresh grant. A refresh rotates the row in
// place (new token value, new expiry) rather than appending a second record;
// logout or expiry cleanup deletes it.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null;size:512" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
