package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validIndianForm returns a form that passes all six steps under the Indian
// rule set. Tests mutate individual fields to break specific checks.
func validIndianForm() *Form {
	return &Form{
		BusinessVertical:      "Manufacturing",
		CompanyName:           "Acme Components Pvt Ltd",
		CountryOrigin:         "IN",
		RegistrationNumber:    "U12345MH2010PTC123456",
		ContactPersonName:     "Asha Rao",
		Email:                 "asha@acme.example",
		PhoneNumber:           "+91 9876543210",
		RegisteredAddress:     "12 Industrial Estate",
		RegisteredCity:        "Pune",
		RegisteredState:       "Maharashtra",
		RegisteredCountry:     "India",
		RegisteredPincode:     "411001",
		SupplyAddress:         "Plot 4, MIDC",
		SupplyCity:            "Pune",
		SupplyState:           "Maharashtra",
		SupplyCountry:         "India",
		SupplyPincode:         "411019",
		BankName:              "HDFC Bank",
		AccountNumber:         "50100123456789",
		AccountType:           "current",
		BranchName:            "Pune Camp",
		BankAddress:           "MG Road, Pune",
		BankProof:             "cancelled_cheque.pdf",
		IFSCCode:              "HDFC0001234",
		SupplierType:          "manufacturer",
		SupplierGroup:         "raw-material",
		SupplierCategory:      "category-a",
		AnnualTurnover:        "25000000",
		IndustrySector:        "electronics",
		ProductsServices:      "Heat exchanger coils",
		EmployeeCount:         "51-200",
		MSMEStatus:            MSMERegistered,
		MSMECategory:          "small",
		MSMENumber:            "UDYAM-MH-26-0012345",
		MSMECertificate:       "udyam.pdf",
		PreferredCurrency:     "INR",
		TaxRegistrationNumber: "TRN-001",
		PANNumber:             "ABCDE1234F",
		GSTNumber:             "27ABCDE1234F1Z5",
		GTARegistration:       "registered",
		Agreements: map[string]bool{
			AgreementNDA:           true,
			AgreementSQA:           true,
			AgreementFourM:         true,
			AgreementCodeOfConduct: true,
			AgreementCompliance:    true,
			AgreementSelfDecl:      true,
		},
	}
}

// validForeignForm returns a form that passes all six steps for a non-Indian
// vendor.
func validForeignForm() *Form {
	return &Form{
		BusinessVertical:         "Trading",
		CompanyName:              "Nordwind GmbH",
		CountryOrigin:            "DE",
		IncorporationCertificate: "handelsregister.pdf",
		ContactPersonName:        "Jonas Keller",
		Email:                    "jonas@nordwind.example",
		PhoneNumber:              "+49 30 1234567",
		RegisteredAddress:        "Hauptstrasse 1",
		RegisteredCity:           "Berlin",
		RegisteredState:          "Berlin",
		RegisteredCountry:        "Germany",
		RegisteredPincode:        "10115",
		SupplyAddress:            "Hafenweg 9",
		SupplyCity:               "Hamburg",
		SupplyState:              "Hamburg",
		SupplyCountry:            "Germany",
		SupplyPincode:            "20457",
		BankName:                 "Deutsche Bank",
		AccountNumber:            "DE89370400440532013000",
		AccountType:              "current",
		BranchName:               "Berlin Mitte",
		BankAddress:              "Unter den Linden 13",
		BankProof:                "bank_letter.pdf",
		SwiftCode:                "DEUTDEBBXXX",
		SupplierType:             "trader",
		SupplierGroup:            "raw-material",
		AnnualTurnover:           "4000000",
		IndustrySector:           "metals",
		ProductsServices:         "Aluminium coil",
		EmployeeCount:            "11-50",
		PreferredCurrency:        "EUR",
		TaxRegistrationNumber:    "TRN-DE-99",
		VATNumber:                "DE811234567",
		BusinessLicense:          "gewerbeschein.pdf",
		GTARegistration:          "not-applicable",
		Agreements: map[string]bool{
			AgreementNDA:           true,
			AgreementFourM:         true,
			AgreementCodeOfConduct: true,
			AgreementSelfDecl:      true,
		},
	}
}

func TestValidateStepAllStepsValid(t *testing.T) {
	for _, f := range []*Form{validIndianForm(), validForeignForm()} {
		for step := FirstStep; step <= LastStep; step++ {
			assert.Empty(t, ValidateStep(step, f), "step %d", step)
		}
		assert.Empty(t, ValidateAll(f))
	}
}

func TestValidateStepEmailFormat(t *testing.T) {
	f := validIndianForm()
	f.Email = "not-an-email"
	errs := ValidateStep(1, f)
	assert.Equal(t, "Invalid email format", errs["email"])

	f.Email = ""
	errs = ValidateStep(1, f)
	assert.Equal(t, "Email is required", errs["email"])
}

func TestValidateStepIFSCFormat(t *testing.T) {
	cases := []struct {
		code string
		msg  string
	}{
		{"HDFC0001234", ""},
		{"SBIN0ABC123", ""},
		{"hdfc0001234", "Invalid IFSC code format"},
		{"HDFC1234567", "Invalid IFSC code format"},
		{"HDF0001234", "Invalid IFSC code format"},
		{"HDFC000123", "Invalid IFSC code format"},
		{"", "IFSC code is required"},
	}
	for _, tc := range cases {
		f := validIndianForm()
		f.IFSCCode = tc.code
		errs := ValidateStep(3, f)
		if tc.msg == "" {
			assert.NotContains(t, errs, "ifsc_code", "code %q", tc.code)
		} else {
			assert.Equal(t, tc.msg, errs["ifsc_code"], "code %q", tc.code)
		}
	}
}

func TestValidateStepForeignBankUsesSwift(t *testing.T) {
	f := validForeignForm()
	f.SwiftCode = ""
	errs := ValidateStep(3, f)
	assert.Equal(t, "Swift code is required", errs["swift_code"])
	assert.NotContains(t, errs, "ifsc_code")

	// A foreign vendor never needs an IFSC code even when one is absent.
	f = validForeignForm()
	f.IFSCCode = ""
	assert.Empty(t, ValidateStep(3, f))
}

func TestValidateStepPANAndGST(t *testing.T) {
	f := validIndianForm()
	f.PANNumber = "ABC1234567"
	f.GSTNumber = "INVALID"
	errs := ValidateStep(5, f)
	assert.Equal(t, "Invalid PAN number format", errs["pan_number"])
	assert.Equal(t, "Invalid GST number format", errs["gst_number"])

	f = validForeignForm()
	errs = ValidateStep(5, f)
	assert.NotContains(t, errs, "pan_number")
	assert.NotContains(t, errs, "gst_number")

	f.VATNumber = ""
	f.BusinessLicense = ""
	errs = ValidateStep(5, f)
	assert.Equal(t, "VAT number is required", errs["vat_number"])
	assert.Equal(t, "Business license is required", errs["business_license"])
}

func TestValidateStepCountrySwitchesDocumentRequirements(t *testing.T) {
	f := validIndianForm()
	f.RegistrationNumber = ""
	errs := ValidateStep(1, f)
	assert.Contains(t, errs, "registration_number")
	assert.NotContains(t, errs, "incorporation_certificate")

	f = validForeignForm()
	f.IncorporationCertificate = ""
	errs = ValidateStep(1, f)
	assert.Contains(t, errs, "incorporation_certificate")
	assert.NotContains(t, errs, "registration_number")
}

func TestValidateStepMSMEBranch(t *testing.T) {
	// Registered MSME vendors must provide category, UDYAM number and the
	// certificate.
	f := validIndianForm()
	f.MSMECategory = ""
	f.MSMENumber = ""
	f.MSMECertificate = ""
	errs := ValidateStep(4, f)
	assert.Contains(t, errs, "msme_category")
	assert.Contains(t, errs, "msme_number")
	assert.Contains(t, errs, "msme_certificate")

	// Unregistered vendors must tick the declaration instead.
	f = validIndianForm()
	f.MSMEStatus = MSMENotRegistered
	f.MSMEDeclaration = false
	errs = ValidateStep(4, f)
	assert.Contains(t, errs, "msme_declaration")
	assert.NotContains(t, errs, "msme_category")

	f.MSMEDeclaration = true
	assert.Empty(t, ValidateStep(4, f))

	// The entire branch is skipped for foreign vendors.
	f = validForeignForm()
	f.MSMEStatus = ""
	errs = ValidateStep(4, f)
	assert.NotContains(t, errs, "msme_status")
	assert.NotContains(t, errs, "msme_declaration")
}

func TestValidateStepSupplierCategoryIndiaOnly(t *testing.T) {
	f := validIndianForm()
	f.SupplierCategory = ""
	errs := ValidateStep(4, f)
	assert.Contains(t, errs, "supplier_category")

	f = validForeignForm()
	f.SupplierCategory = ""
	errs = ValidateStep(4, f)
	assert.NotContains(t, errs, "supplier_category")
}

func TestValidateStepAgreements(t *testing.T) {
	f := validIndianForm()
	f.Agreements[AgreementSQA] = false
	errs := ValidateStep(6, f)
	require.Len(t, errs, 1)
	assert.Equal(t, "This agreement must be accepted", errs["agreements."+AgreementSQA])

	// Agreements hidden for the vendor's population are never demanded.
	f = validForeignForm()
	delete(f.Agreements, AgreementSQA)
	delete(f.Agreements, AgreementCompliance)
	assert.Empty(t, ValidateStep(6, f))

	// A nil agreements map counts every visible agreement as unaccepted.
	f = validForeignForm()
	f.Agreements = nil
	errs = ValidateStep(6, f)
	assert.Len(t, errs, 4)
}

func TestCanProceed(t *testing.T) {
	f := validIndianForm()
	assert.True(t, CanProceed(1, f))

	f.CompanyName = ""
	assert.False(t, CanProceed(1, f))
}

func TestValidateAllMergesSteps(t *testing.T) {
	f := validIndianForm()
	f.CompanyName = ""
	f.SupplyPincode = ""
	f.IFSCCode = "bad"
	errs := ValidateAll(f)
	assert.Contains(t, errs, "company_name")
	assert.Contains(t, errs, "supply_pincode")
	assert.Contains(t, errs, "ifsc_code")
}

func TestForCountryIsCaseInsensitive(t *testing.T) {
	assert.True(t, IsIndia("in"))
	assert.True(t, IsIndia(" IN "))
	assert.False(t, IsIndia("IND"))

	rules := ForCountry("in")
	assert.True(t, rules.UsesIFSC)
	assert.True(t, rules.MSMEApplies)

	rules = ForCountry("US")
	assert.False(t, rules.UsesIFSC)
	assert.True(t, rules.RequiresIncorporationCertificate)
}
