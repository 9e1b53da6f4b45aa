package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationDraft persists an in-progress registration form between browser
// sessions. Keyed by an opaque client token; one writer per token is assumed,
// last write wins. The payload is the raw form JSON.
type RegistrationDraft struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Token       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	Payload     string    `gorm:"type:jsonb;not null" json:"payload"`
	CurrentStep int       `gorm:"not null;default:1" json:"current_step"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`
}
