package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendorStatus enum constants
const (
	VendorStatusDraft         = "draft"
	VendorStatusPending       = "pending"
	VendorStatusPendingLevel1 = "pending_level_1" // changes requested, returned to vendor
	VendorStatusUnderReview   = "under_review"
	VendorStatusApproved      = "approved"
	VendorStatusRejected      = "rejected"
	VendorStatusSuspended     = "suspended"
)

// SupplierType enum constants
const (
	SupplierTypeManufacturer    = "manufacturer"
	SupplierTypeSupplier        = "supplier"
	SupplierTypeServiceProvider = "service_provider"
	SupplierTypeDistributor     = "distributor"
)

// MSMEStatus enum constants
const (
	MSMEStatusMSME    = "msme"
	MSMEStatusNonMSME = "non_msme"
	MSMEStatusPending = "pending"
)

// VendorAddressType enum constants
const (
	AddressTypeRegistered = "registered"
	AddressTypeSupply     = "supply"
)

// Vendor is the central vendor application record. It is created by the
// public registration endpoint with status "pending" and afterwards moves
// exclusively through approval decisions.
type Vendor struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorCode string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"vendor_code"`

	// Company information
	BusinessVertical               string `gorm:"type:varchar(100);not null" json:"business_vertical"`
	CompanyName                    string `gorm:"type:varchar(255);not null" json:"company_name"`
	CountryOrigin                  string `gorm:"type:varchar(5);not null;index" json:"country_origin"`
	RegistrationNumber             string `gorm:"type:varchar(100)" json:"registration_number"`                // Indian companies
	IncorporationCertificatePath   string `gorm:"type:varchar(500)" json:"incorporation_certificate_path"`    // everyone else
	ContactPersonName              string `gorm:"type:varchar(255);not null" json:"contact_person_name"`
	Designation                    string `gorm:"type:varchar(100)" json:"designation"`
	Email                          string `gorm:"type:varchar(255);not null;index" json:"email"`
	PhoneNumber                    string `gorm:"type:varchar(50);not null" json:"phone_number"`
	Website                        string `gorm:"type:varchar(255)" json:"website"`
	YearEstablished                *int   `json:"year_established"`
	BusinessDescription            string `gorm:"type:text" json:"business_description"`

	// Categorization
	SupplierType     string           `gorm:"type:varchar(30);index" json:"supplier_type"`
	SupplierGroup    string           `gorm:"type:varchar(50)" json:"supplier_group"`
	SupplierCategory string           `gorm:"type:varchar(50);index" json:"supplier_category"`
	AnnualTurnover   *decimal.Decimal `gorm:"type:numeric(18,2)" json:"annual_turnover"`
	ProductsServices string           `gorm:"type:text" json:"products_services"`
	MSMEStatus       string           `gorm:"type:varchar(20);default:'pending';index" json:"msme_status"`
	MSMECategory     string           `gorm:"type:varchar(20)" json:"msme_category"` // Micro, Small, Medium
	MSMENumber       string           `gorm:"type:varchar(50)" json:"msme_number"`
	IndustrySector   string           `gorm:"type:varchar(100)" json:"industry_sector"`
	EmployeeCount    string           `gorm:"type:varchar(20)" json:"employee_count"`
	Certifications   string           `gorm:"type:text" json:"certifications"`

	// Status and metadata
	Status     string     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ApprovedAt *time.Time `json:"approved_at"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid" json:"approved_by"`
	Approver   *User      `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`

	Addresses  []VendorAddress   `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"addresses"`
	BankInfo   *VendorBankInfo   `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"bank_info,omitempty"`
	Compliance *VendorCompliance `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"compliance,omitempty"`
	Agreements *VendorAgreement  `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"agreements,omitempty"`
	Documents  []VendorDocument  `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	Approvals  []VendorApproval  `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"approvals,omitempty"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// VendorAddress holds the registered or supply address of a vendor.
type VendorAddress struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	AddressType string    `gorm:"type:varchar(20);not null" json:"address_type"` // registered, supply
	Address     string    `gorm:"type:text;not null" json:"address"`
	City        string    `gorm:"type:varchar(100);not null" json:"city"`
	State       string    `gorm:"type:varchar(100);not null" json:"state"`
	Country     string    `gorm:"type:varchar(100);not null" json:"country"`
	Pincode     string    `gorm:"type:varchar(20);not null" json:"pincode"`
	CreatedAt   time.Time `json:"created_at"`
}

// VendorBankInfo holds bank routing data. Indian vendors carry an IFSC code,
// foreign vendors a Swift code.
type VendorBankInfo struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_id"`
	BankName      string    `gorm:"type:varchar(255);not null" json:"bank_name"`
	BranchName    string    `gorm:"type:varchar(255)" json:"branch_name"`
	AccountNumber string    `gorm:"type:varchar(50);not null" json:"account_number"`
	AccountType   string    `gorm:"type:varchar(30)" json:"account_type"`
	IFSCCode      string    `gorm:"type:varchar(11)" json:"ifsc_code"`
	SwiftCode     string    `gorm:"type:varchar(11)" json:"swift_code"`
	BankAddress   string    `gorm:"type:text" json:"bank_address"`
	Currency      string    `gorm:"type:varchar(10)" json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VendorCompliance holds tax and regulatory identifiers.
type VendorCompliance struct {
	ID                    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_id"`
	PreferredCurrency     string    `gorm:"type:varchar(10);default:'INR'" json:"preferred_currency"`
	TaxRegistrationNumber string    `gorm:"type:varchar(50)" json:"tax_registration_number"`
	PANNumber             string    `gorm:"type:varchar(10)" json:"pan_number"`
	GSTNumber             string    `gorm:"type:varchar(15)" json:"gst_number"`
	VATNumber             string    `gorm:"type:varchar(50)" json:"vat_number"`
	BusinessLicense       string    `gorm:"type:varchar(100)" json:"business_license"`
	GTARegistration       string    `gorm:"type:varchar(20)" json:"gta_registration"`
	ComplianceNotes       string    `gorm:"type:text" json:"compliance_notes"`
	CreditRating          string    `gorm:"type:varchar(20)" json:"credit_rating"`
	InsuranceCoverage     string    `gorm:"type:varchar(100)" json:"insurance_coverage"`
	SpecialCertifications string    `gorm:"type:text" json:"special_certifications"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// VendorAgreement records which legal agreements the vendor accepted during
// step 6. Which of these must be true depends on the agreement visibility
// resolver, not on this table.
type VendorAgreement struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"vendor_id"`
	NDA                 bool      `gorm:"default:false" json:"nda"`
	SQA                 bool      `gorm:"default:false" json:"sqa"`
	FourM               bool      `gorm:"column:four_m;default:false" json:"four_m"`
	CodeOfConduct       bool      `gorm:"default:false" json:"code_of_conduct"`
	ComplianceAgreement bool      `gorm:"default:false" json:"compliance_agreement"`
	SelfDeclaration     bool      `gorm:"default:false" json:"self_declaration"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
