package workflow

import "strings"

// CountryCodeIndia is the ISO code that switches the registration form onto
// the Indian document set (registration number, IFSC, PAN/GST, MSME).
const CountryCodeIndia = "IN"

// Rules describes which conditional fields and documents apply for a vendor's
// country of origin. Pure configuration data, resolved once per record.
type Rules struct {
	RequiresRegistrationNumber       bool
	RequiresIncorporationCertificate bool
	MSMEApplies                      bool
	SupplierCategoryMandatory        bool
	UsesIFSC                         bool
	UsesPANGST                       bool
}

// IsIndia reports whether the given country code selects the Indian rule set.
func IsIndia(countryCode string) bool {
	return strings.EqualFold(strings.TrimSpace(countryCode), CountryCodeIndia)
}

// ForCountry returns the rule set for a country code. Indian vendors provide
// a registration number, IFSC bank code and PAN/GST tax identifiers; everyone
// else provides an incorporation certificate, Swift code and VAT/business
// license instead.
func ForCountry(countryCode string) Rules {
	if IsIndia(countryCode) {
		return Rules{
			RequiresRegistrationNumber: true,
			MSMEApplies:                true,
			SupplierCategoryMandatory:  true,
			UsesIFSC:                   true,
			UsesPANGST:                 true,
		}
	}
	return Rules{
		RequiresIncorporationCertificate: true,
	}
}
