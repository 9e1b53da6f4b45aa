package workflow

// Form is the in-memory draft of a vendor registration as the applicant works
// through the six wizard steps. Field names mirror the public registration
// payload; empty string means the field has not been provided yet.
type Form struct {
	// Step 1: company information
	BusinessVertical         string `json:"business_vertical"`
	CompanyName              string `json:"company_name"`
	CountryOrigin            string `json:"country_origin"`
	RegistrationNumber       string `json:"registration_number"`
	IncorporationCertificate string `json:"incorporation_certificate"`
	ContactPersonName        string `json:"contact_person_name"`
	Designation              string `json:"designation"`
	Email                    string `json:"email"`
	PhoneNumber              string `json:"phone_number"`
	Website                  string `json:"website"`
	YearEstablished          string `json:"year_established"`
	BusinessDescription      string `json:"business_description"`

	// Step 2: address details
	RegisteredAddress string `json:"registered_address"`
	RegisteredCity    string `json:"registered_city"`
	RegisteredState   string `json:"registered_state"`
	RegisteredCountry string `json:"registered_country"`
	RegisteredPincode string `json:"registered_pincode"`
	SupplyAddress     string `json:"supply_address"`
	SupplyCity        string `json:"supply_city"`
	SupplyState       string `json:"supply_state"`
	SupplyCountry     string `json:"supply_country"`
	SupplyPincode     string `json:"supply_pincode"`

	// Step 3: bank information
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	BranchName    string `json:"branch_name"`
	BankAddress   string `json:"bank_address"`
	BankProof     string `json:"bank_proof"`
	IFSCCode      string `json:"ifsc_code"`
	SwiftCode     string `json:"swift_code"`

	// Step 4: supplier categorization
	SupplierType     string `json:"supplier_type"`
	SupplierGroup    string `json:"supplier_group"`
	SupplierCategory string `json:"supplier_category"`
	AnnualTurnover   string `json:"annual_turnover"`
	IndustrySector   string `json:"industry_sector"`
	ProductsServices string `json:"products_services"`
	EmployeeCount    string `json:"employee_count"`
	MSMEStatus       string `json:"msme_status"` // "registered", "not-registered" or empty
	MSMECategory     string `json:"msme_category"`
	MSMENumber       string `json:"msme_number"`
	MSMECertificate  string `json:"msme_certificate"`
	MSMEDeclaration  bool   `json:"msme_declaration"`

	// Step 5: compliance
	PreferredCurrency     string `json:"preferred_currency"`
	TaxRegistrationNumber string `json:"tax_registration_number"`
	PANNumber             string `json:"pan_number"`
	GSTNumber             string `json:"gst_number"`
	VATNumber             string `json:"vat_number"`
	BusinessLicense       string `json:"business_license"`
	GTARegistration       string `json:"gta_registration"`
	ComplianceNotes       string `json:"compliance_notes"`
	CreditRating          string `json:"credit_rating"`
	InsuranceCoverage     string `json:"insurance_coverage"`
	SpecialCertifications string `json:"special_certifications"`

	// Step 6: agreements, keyed by agreement id
	Agreements map[string]bool `json:"agreements"`
}

// MSME status values as submitted by the wizard.
const (
	MSMERegistered    = "registered"
	MSMENotRegistered = "not-registered"
)

// AgreementAccepted reports whether a given agreement id has been accepted.
// An absent entry counts as not accepted, never as an error.
func (f *Form) AgreementAccepted(id string) bool {
	if f.Agreements == nil {
		return false
	}
	return f.Agreements[id]
}
