package model

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStatus enum constants
const (
	ApprovalPending             = "pending"
	ApprovalApproved            = "approved"
	ApprovalRejected            = "rejected"
	ApprovalReturnedForRevision = "returned_for_revision"
)

// ApprovalLevel enum constants
const (
	ApprovalLevel1     = "level_1"
	ApprovalLevel2     = "level_2"
	ApprovalLevel3     = "level_3"
	ApprovalLevelFinal = "final"
)

// VendorApproval is one reviewer decision on a vendor application. The set of
// decisions per vendor is append-only history; a level may be re-decided but
// records of other levels are never touched.
type VendorApproval struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"vendor_id"`
	ApproverID      *uuid.UUID `gorm:"type:uuid;index" json:"approver_id"`
	Approver        *User      `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
	Level           string     `gorm:"type:varchar(20);not null;index" json:"level"`
	Status          string     `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	Comments        string     `gorm:"type:text" json:"comments"`
	RejectionReason string     `gorm:"type:varchar(30)" json:"rejection_reason,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
