package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType enum constants
const (
	DocTypeGSTCertificate       = "gst_certificate"
	DocTypePANCard              = "pan_card"
	DocTypeBankStatement        = "bank_statement"
	DocTypeMSMECertificate      = "msme_certificate"
	DocTypeCompanyRegistration  = "company_registration"
	DocTypeBusinessLicense      = "business_license"
	DocTypeInsuranceCertificate = "insurance_certificate"
	DocTypeQualityCertificate   = "quality_certificate"
	DocTypeTaxCertificate       = "tax_certificate"
	DocTypeOther                = "other"
)

// DocumentTypes lists every accepted document type.
var DocumentTypes = []string{
	DocTypeGSTCertificate,
	DocTypePANCard,
	DocTypeBankStatement,
	DocTypeMSMECertificate,
	DocTypeCompanyRegistration,
	DocTypeBusinessLicense,
	DocTypeInsuranceCertificate,
	DocTypeQualityCertificate,
	DocTypeTaxCertificate,
	DocTypeOther,
}

// DocumentStatus enum constants
const (
	DocStatusPending  = "pending"
	DocStatusApproved = "approved"
	DocStatusRejected = "rejected"
	DocStatusExpired  = "expired"
)

// VendorDocument stores metadata for an uploaded supporting document.
type VendorDocument struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"vendor_id"`
	DocumentType   string     `gorm:"type:varchar(30);not null;index" json:"document_type"`
	FileName       string     `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath       string     `gorm:"type:varchar(500);not null" json:"file_path"`
	FileSize       int64      `gorm:"not null" json:"file_size"`
	MimeType       string     `gorm:"type:varchar(100);not null" json:"mime_type"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	UploadedBy     *uuid.UUID `gorm:"type:uuid" json:"uploaded_by"`
	ReviewedBy     *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	ReviewComments string     `gorm:"type:text" json:"review_comments"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
