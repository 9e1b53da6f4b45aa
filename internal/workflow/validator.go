package workflow

import "regexp"

// Registration wizard bounds.
const (
	FirstStep = 1
	LastStep  = 6
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	ifscPattern  = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]{1}$`)
	gstPattern   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
)

// ValidateStep checks one wizard step of the form and returns a map of field
// name to error message. An empty map means the step is valid. Conditional
// requirements come from the country rule table; the function is pure and
// never fails for missing or malformed input.
func ValidateStep(step int, f *Form) map[string]string {
	errs := map[string]string{}
	rules := ForCountry(f.CountryOrigin)

	switch step {
	case 1:
		if f.BusinessVertical == "" {
			errs["business_vertical"] = "Business vertical is required"
		}
		if f.CompanyName == "" {
			errs["company_name"] = "Company name is required"
		}
		if f.CountryOrigin == "" {
			errs["country_origin"] = "Country of origin is required"
		}
		if rules.RequiresRegistrationNumber && f.RegistrationNumber == "" {
			errs["registration_number"] = "Company registration number is required"
		}
		if rules.RequiresIncorporationCertificate && f.IncorporationCertificate == "" {
			errs["incorporation_certificate"] = "Company incorporation certificate is required"
		}
		if f.ContactPersonName == "" {
			errs["contact_person_name"] = "Name of person in charge is required"
		}
		if f.Email == "" {
			errs["email"] = "Email is required"
		} else if !emailPattern.MatchString(f.Email) {
			errs["email"] = "Invalid email format"
		}
		if f.PhoneNumber == "" {
			errs["phone_number"] = "Phone number is required"
		}

	case 2:
		required := []struct{ field, value, label string }{
			{"registered_address", f.RegisteredAddress, "Registered address"},
			{"registered_city", f.RegisteredCity, "Registered city"},
			{"registered_state", f.RegisteredState, "Registered state"},
			{"registered_country", f.RegisteredCountry, "Registered country"},
			{"registered_pincode", f.RegisteredPincode, "Registered pincode"},
			{"supply_address", f.SupplyAddress, "Supply address"},
			{"supply_city", f.SupplyCity, "Supply city"},
			{"supply_state", f.SupplyState, "Supply state"},
			{"supply_country", f.SupplyCountry, "Supply country"},
			{"supply_pincode", f.SupplyPincode, "Supply pincode"},
		}
		for _, r := range required {
			if r.value == "" {
				errs[r.field] = r.label + " is required"
			}
		}

	case 3:
		if f.BankName == "" {
			errs["bank_name"] = "Bank name is required"
		}
		if f.AccountNumber == "" {
			errs["account_number"] = "Account number is required"
		}
		if f.AccountType == "" {
			errs["account_type"] = "Account type is required"
		}
		if f.BranchName == "" {
			errs["branch_name"] = "Branch name is required"
		}
		if f.BankAddress == "" {
			errs["bank_address"] = "Bank address is required"
		}
		if f.BankProof == "" {
			errs["bank_proof"] = "Bank proof document is required"
		}
		if rules.UsesIFSC {
			if f.IFSCCode == "" {
				errs["ifsc_code"] = "IFSC code is required"
			} else if !ifscPattern.MatchString(f.IFSCCode) {
				errs["ifsc_code"] = "Invalid IFSC code format"
			}
		} else if f.SwiftCode == "" {
			errs["swift_code"] = "Swift code is required"
		}

	case 4:
		if f.SupplierType == "" {
			errs["supplier_type"] = "Supplier type is required"
		}
		if f.SupplierGroup == "" {
			errs["supplier_group"] = "Supplier group is required"
		}
		if rules.SupplierCategoryMandatory && f.SupplierCategory == "" {
			errs["supplier_category"] = "Supplier category is required"
		}
		if f.AnnualTurnover == "" {
			errs["annual_turnover"] = "Annual turnover is required"
		}
		if f.IndustrySector == "" {
			errs["industry_sector"] = "Industry sector is required"
		}
		if f.ProductsServices == "" {
			errs["products_services"] = "Products/services offered is required"
		}
		if f.EmployeeCount == "" {
			errs["employee_count"] = "Number of employees is required"
		}
		// MSME applies to Indian vendors only; the whole branch is skipped
		// for everyone else.
		if rules.MSMEApplies {
			if f.MSMEStatus == "" {
				errs["msme_status"] = "MSME status is required"
			}
			switch f.MSMEStatus {
			case MSMERegistered:
				if f.MSMECategory == "" {
					errs["msme_category"] = "MSME category is required"
				}
				if f.MSMENumber == "" {
					errs["msme_number"] = "UDYAM registration number is required"
				}
				if f.MSMECertificate == "" {
					errs["msme_certificate"] = "MSME certificate is required"
				}
			case MSMENotRegistered:
				if !f.MSMEDeclaration {
					errs["msme_declaration"] = "MSME declaration is required"
				}
			}
		}

	case 5:
		if f.PreferredCurrency == "" {
			errs["preferred_currency"] = "Preferred currency is required"
		}
		if f.TaxRegistrationNumber == "" {
			errs["tax_registration_number"] = "Tax registration number is required"
		}
		if rules.UsesPANGST {
			if f.PANNumber == "" {
				errs["pan_number"] = "PAN number is required"
			} else if !panPattern.MatchString(f.PANNumber) {
				errs["pan_number"] = "Invalid PAN number format"
			}
			if f.GSTNumber == "" {
				errs["gst_number"] = "GST number is required"
			} else if !gstPattern.MatchString(f.GSTNumber) {
				errs["gst_number"] = "Invalid GST number format"
			}
		} else {
			if f.VATNumber == "" {
				errs["vat_number"] = "VAT number is required"
			}
			if f.BusinessLicense == "" {
				errs["business_license"] = "Business license is required"
			}
		}
		// GTA registration status applies to Indian and foreign vendors alike.
		if f.GTARegistration == "" {
			errs["gta_registration"] = "GTA registration status is required"
		}

	case 6:
		for _, id := range VisibleAgreementsFor(f) {
			if !f.AgreementAccepted(id) {
				errs["agreements."+id] = "This agreement must be accepted"
			}
		}
	}

	return errs
}

// CanProceed reports whether a step is valid, i.e. ValidateStep returns no
// errors for it.
func CanProceed(step int, f *Form) bool {
	return len(ValidateStep(step, f)) == 0
}

// ValidateAll runs every wizard step and merges the resulting error maps.
func ValidateAll(f *Form) map[string]string {
	errs := map[string]string{}
	for step := FirstStep; step <= LastStep; step++ {
		for field, msg := range ValidateStep(step, f) {
			errs[field] = msg
		}
	}
	return errs
}
