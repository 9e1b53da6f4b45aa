package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionVendorRegistered = "VENDOR_REGISTERED"
	ActionVendorUpdated    = "VENDOR_UPDATED"
	ActionVendorDeleted    = "VENDOR_DELETED"

	// Approval workflow actions
	ActionVendorApproved   = "VENDOR_APPROVED"
	ActionVendorRejected   = "VENDOR_REJECTED"
	ActionChangesRequested = "CHANGES_REQUESTED"

	ActionDocumentUploaded = "DOCUMENT_UPLOADED"
	ActionDocumentReviewed = "DOCUMENT_REVIEWED"
	ActionDocumentDeleted  = "DOCUMENT_DELETED"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for unauthenticated public registration
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/vendor code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
