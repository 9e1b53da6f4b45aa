package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeQuestionnaire() *Questionnaire {
	return &Questionnaire{
		SupplierTermOfPayment:  "30ADVBD",
		SupplierPaymentMethod:  "NEFT/RTGS",
		SupplierDeliveryTerms:  "FOR",
		SupplierModeOfDelivery: "BY ROAD",
		SupplierGroup:          "CR-DOM",
		CommodityCode:          "AJ",
	}
}

func TestQuestionnaireValidate(t *testing.T) {
	q := completeQuestionnaire()
	assert.Empty(t, q.Validate())
	assert.True(t, q.Complete())

	q.SupplierDeliveryTerms = ""
	q.CommodityCode = "  "
	errs := q.Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "Required", errs["supplierDeliveryTerms"])
	assert.Equal(t, "Required", errs["commodityCode"])
	assert.False(t, q.Complete())
}

func TestQuestionnaireEmptyIsFullyIncomplete(t *testing.T) {
	q := &Questionnaire{}
	assert.Len(t, q.Validate(), 6)
}

func TestQuestionnaireComment(t *testing.T) {
	q := completeQuestionnaire()
	want := "supplierTermOfPayment: 30ADVBD; supplierPaymentMethod: NEFT/RTGS; " +
		"supplierDeliveryTerms: FOR; supplierModeOfDelivery: BY ROAD; " +
		"supplierGroup: CR-DOM; commodityCode: AJ"
	assert.Equal(t, want, q.Comment())
}

func TestOptionVocabulariesSplitByCountry(t *testing.T) {
	domestic := PaymentTermOptions(true)
	foreign := PaymentTermOptions(false)
	assert.NotEmpty(t, domestic)
	assert.NotEmpty(t, foreign)

	values := func(opts []Option) map[string]bool {
		m := map[string]bool{}
		for _, o := range opts {
			m[o.Value] = true
		}
		return m
	}

	// PDC terms are domestic instruments; LC terms belong to imports.
	assert.True(t, values(domestic)["PDC30DAYS"])
	assert.False(t, values(foreign)["PDC30DAYS"])
	assert.True(t, values(foreign)["LCATSIGHT"])
	assert.False(t, values(domestic)["LCATSIGHT"])

	assert.True(t, values(DeliveryTermOptions(true))["FOR"])
	assert.True(t, values(DeliveryTermOptions(false))["CIF"])

	assert.True(t, values(SupplierGroupOptions(true))["CR-DOM"])
	assert.True(t, values(SupplierGroupOptions(false))["CR-IMP"])

	// Payment methods and commodity codes are shared vocabularies.
	assert.NotEmpty(t, PaymentMethodOptions())
	assert.NotEmpty(t, CommodityCodeOptions())
}
