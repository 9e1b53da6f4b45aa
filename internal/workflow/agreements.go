package workflow

// Agreement ids. These match the keys of the registration form's agreements
// map and the columns of the vendor_agreements table.
const (
	AgreementNDA           = "nda"
	AgreementSQA           = "sqa"
	AgreementFourM         = "fourM"
	AgreementCodeOfConduct = "codeOfConduct"
	AgreementCompliance    = "complianceAgreement"
	AgreementSelfDecl      = "selfDeclaration"
)

// SupplierGroupODM identifies ODM-developed suppliers, who sign a dedicated
// development agreement instead of the NDA.
const SupplierGroupODM = "odm-amber"

// AllAgreements lists every agreement id in presentation order.
var AllAgreements = []string{
	AgreementNDA,
	AgreementSQA,
	AgreementFourM,
	AgreementCodeOfConduct,
	AgreementCompliance,
	AgreementSelfDecl,
}

// VisibleAgreements resolves which agreements a vendor must be shown and must
// accept, from the supplier group and country of origin. This is the single
// source of truth: both step-6 validation and the review UI consume it.
//
//	nda                : every group except ODM-developed
//	sqa                : Indian vendors only
//	fourM              : always
//	codeOfConduct      : always
//	complianceAgreement: Indian vendors only
//	selfDeclaration    : always
func VisibleAgreements(countryOrigin, supplierGroup string) []string {
	indian := IsIndia(countryOrigin)
	odm := supplierGroup == SupplierGroupODM

	visible := make([]string, 0, len(AllAgreements))
	for _, id := range AllAgreements {
		switch id {
		case AgreementNDA:
			if odm {
				continue
			}
		case AgreementSQA, AgreementCompliance:
			if !indian {
				continue
			}
		}
		visible = append(visible, id)
	}
	return visible
}

// VisibleAgreementsFor is the form-level convenience wrapper around
// VisibleAgreements.
func VisibleAgreementsFor(f *Form) []string {
	return VisibleAgreements(f.CountryOrigin, f.SupplierGroup)
}
