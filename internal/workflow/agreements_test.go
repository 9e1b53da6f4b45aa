package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleAgreementsIndianStandardGroup(t *testing.T) {
	visible := VisibleAgreements("IN", "raw-material")
	assert.Equal(t, []string{
		AgreementNDA,
		AgreementSQA,
		AgreementFourM,
		AgreementCodeOfConduct,
		AgreementCompliance,
		AgreementSelfDecl,
	}, visible)
}

func TestVisibleAgreementsForeignODMGroup(t *testing.T) {
	// A foreign ODM-developed vendor loses the NDA and both India-only
	// agreements, leaving exactly the three universal ones.
	visible := VisibleAgreements("FR", SupplierGroupODM)
	assert.Equal(t, []string{
		AgreementFourM,
		AgreementCodeOfConduct,
		AgreementSelfDecl,
	}, visible)
}

func TestVisibleAgreementsIndianODMGroup(t *testing.T) {
	visible := VisibleAgreements("IN", SupplierGroupODM)
	assert.Equal(t, []string{
		AgreementSQA,
		AgreementFourM,
		AgreementCodeOfConduct,
		AgreementCompliance,
		AgreementSelfDecl,
	}, visible)
}

func TestVisibleAgreementsForeignStandardGroup(t *testing.T) {
	visible := VisibleAgreements("US", "raw-material")
	assert.Equal(t, []string{
		AgreementNDA,
		AgreementFourM,
		AgreementCodeOfConduct,
		AgreementSelfDecl,
	}, visible)
}

func TestVisibleAgreementsEmptyInputs(t *testing.T) {
	// Unknown country and group fall back to the foreign, non-ODM set.
	visible := VisibleAgreements("", "")
	assert.Equal(t, []string{
		AgreementNDA,
		AgreementFourM,
		AgreementCodeOfConduct,
		AgreementSelfDecl,
	}, visible)
}

func TestVisibleAgreementsForUsesFormFields(t *testing.T) {
	f := &Form{CountryOrigin: "IN", SupplierGroup: SupplierGroupODM}
	assert.Equal(t, VisibleAgreements("IN", SupplierGroupODM), VisibleAgreementsFor(f))
}
