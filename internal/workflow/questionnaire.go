package workflow

import "strings"

// Questionnaire holds the commercial terms a reviewer must record before a
// vendor can be approved. Every field is a single choice from a fixed
// vocabulary; all six are mandatory.
type Questionnaire struct {
	SupplierTermOfPayment  string `json:"supplierTermOfPayment"`
	SupplierPaymentMethod  string `json:"supplierPaymentMethod"`
	SupplierDeliveryTerms  string `json:"supplierDeliveryTerms"`
	SupplierModeOfDelivery string `json:"supplierModeOfDelivery"`
	SupplierGroup          string `json:"supplierGroup"`
	CommodityCode          string `json:"commodityCode"`
}

// questionnaireFields fixes the field order used for validation output and
// comment synthesis.
var questionnaireFields = []struct {
	key string
	get func(*Questionnaire) string
}{
	{"supplierTermOfPayment", func(q *Questionnaire) string { return q.SupplierTermOfPayment }},
	{"supplierPaymentMethod", func(q *Questionnaire) string { return q.SupplierPaymentMethod }},
	{"supplierDeliveryTerms", func(q *Questionnaire) string { return q.SupplierDeliveryTerms }},
	{"supplierModeOfDelivery", func(q *Questionnaire) string { return q.SupplierModeOfDelivery }},
	{"supplierGroup", func(q *Questionnaire) string { return q.SupplierGroup }},
	{"commodityCode", func(q *Questionnaire) string { return q.CommodityCode }},
}

// Validate returns a map of missing questionnaire fields. Empty map means the
// questionnaire is complete and an approval may proceed.
func (q *Questionnaire) Validate() map[string]string {
	errs := map[string]string{}
	for _, f := range questionnaireFields {
		if strings.TrimSpace(f.get(q)) == "" {
			errs[f.key] = "Required"
		}
	}
	return errs
}

// Complete reports whether all six answers are present.
func (q *Questionnaire) Complete() bool {
	return len(q.Validate()) == 0
}

// Comment synthesizes the audit string stored with an approval decision:
// "key: value" pairs in field order, joined with "; ".
func (q *Questionnaire) Comment() string {
	parts := make([]string, 0, len(questionnaireFields))
	for _, f := range questionnaireFields {
		parts = append(parts, f.key+": "+f.get(q))
	}
	return strings.Join(parts, "; ")
}

// Option is one selectable questionnaire answer.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PaymentTermOptions returns the payment-term vocabulary. Indian vendors pay
// through domestic instruments (PDC, NEFT windows); foreign vendors through
// letters of credit and open-account terms keyed to the bill of lading.
func PaymentTermOptions(indian bool) []Option {
	if indian {
		return []Option{
			{Value: "100ADVAOA", Label: "100ADVAOA - 100% Advance"},
			{Value: "100AFDEL", Label: "100AFDEL - 100% AFTER DELIVERY"},
			{Value: "7DAYS", Label: "7DAYS - 7 Days"},
			{Value: "10DAYS", Label: "10DAYS - 10 Days"},
			{Value: "35DAYS", Label: "35DAYS - 35 Days"},
			{Value: "15DAYSI", Label: "15DAYSI - 15 DAYS from invoice"},
			{Value: "30ADVBD", Label: "30ADVBD - 30% Advance Balance Before Dispatch"},
			{Value: "40AD60BD", Label: "40AD60BD - 40% Advance 60% Before delivery"},
			{Value: "50ADVB30D", Label: "50ADVB30D - 50% adv and balance 30 Days"},
			{Value: "PDC30DAYS", Label: "PDC30DAYS - PDC 30 Days"},
			{Value: "PDC45DAYS", Label: "PDC45DAYS - PDC 45 Days"},
			{Value: "PDC60DAYS", Label: "PDC60DAYS - PDC 60 Days"},
			{Value: "IMMEDIATE", Label: "IMMEDIATE - Immediate"},
			{Value: "AGSTDEL", Label: "AGSTDEL - Against Delivery"},
		}
	}
	return []Option{
		{Value: "100ADVAOA", Label: "100ADVAOA - 100% Advance"},
		{Value: "TTAdvance", Label: "TTAdvance - TT Advance"},
		{Value: "TTAGTBL", Label: "TTAGTBL - 100% TT Against BL Copy"},
		{Value: "LC30DAYSBL", Label: "LC30DAYSBL - 30 Days LC"},
		{Value: "LC45DAYSBL", Label: "LC45DAYSBL - 45 Days LC From Bill of Lading"},
		{Value: "LC60DAYSBL", Label: "LC60DAYSBL - LC 60 Days from date of BL"},
		{Value: "LC90DAYSBL", Label: "LC90DAYSBL - LC 90 Days from date of BL"},
		{Value: "LC120DAYBL", Label: "LC120DAYBL - LC 120 Days from date of BL"},
		{Value: "LC180DAYBL", Label: "LC180DAYBL - LC 180 Days from date of BL"},
		{Value: "LCATSIGHT", Label: "LCATSIGHT - LC AT SIGHT"},
		{Value: "OA30DAYSI", Label: "OA30DAYSI - OA 30 Days from date of Invoice"},
		{Value: "OA60DAYSBL", Label: "OA60DAYSBL - OA-60 Days from date of BL"},
		{Value: "OA90DAYSBL", Label: "OA90DAYSBL - OA-90 Days from date of BL"},
		{Value: "OA120DABL", Label: "OA120DABL - OA-120 Days from date of BL"},
	}
}

// PaymentMethodOptions returns the payment-method vocabulary, shared by both
// vendor populations.
func PaymentMethodOptions() []Option {
	return []Option{
		{Value: "BY CHEQUE", Label: "BY CHEQUE"},
		{Value: "LC", Label: "LC"},
		{Value: "NEFT/RTGS", Label: "NEFT/RTGS"},
		{Value: "PDC", Label: "PDC"},
		{Value: "TT", Label: "TT"},
	}
}

// DeliveryTermOptions returns the delivery-term vocabulary. Foreign vendors
// use incoterms; Indian vendors use domestic freight terms.
func DeliveryTermOptions(indian bool) []Option {
	if indian {
		return []Option{
			{Value: "AS PER SCH", Label: "AS PER SCH"},
			{Value: "EXTRA", Label: "EXTRA"},
			{Value: "FOR", Label: "FOR"},
			{Value: "IN", Label: "IN"},
			{Value: "TO PAID", Label: "TO PAID"},
			{Value: "TO PAY", Label: "TO PAY"},
		}
	}
	return []Option{
		{Value: "CIF", Label: "CIF"},
		{Value: "EXW", Label: "EXW"},
		{Value: "EXWDDN", Label: "EXWDDN"},
		{Value: "FOB", Label: "FOB"},
		{Value: "LCL", Label: "LCL"},
	}
}

// DeliveryModeOptions returns the mode-of-delivery vocabulary.
func DeliveryModeOptions() []Option {
	return []Option{
		{Value: "BY AIR", Label: "BY AIR"},
		{Value: "BY COURIER", Label: "BY COURIER"},
		{Value: "BY HAND", Label: "BY HAND"},
		{Value: "BY ROAD", Label: "BY ROAD"},
		{Value: "BY SEA", Label: "BY SEA"},
	}
}

// SupplierGroupOptions returns the accounting supplier-group vocabulary for
// the questionnaire. Foreign vendors map onto import creditor groups.
func SupplierGroupOptions(indian bool) []Option {
	if indian {
		return []Option{
			{Value: "CR-DOM", Label: "CR-DOM | Creditors Domestic Raw Material"},
			{Value: "CR-DOM-CAP", Label: "CR-DOM-CAP | Creditors Domestic Capex"},
			{Value: "CR-DOM-EXP", Label: "CR-DOM-EXP | Creditors Domestic Expense"},
			{Value: "CR-DOM-SER", Label: "CR-DOM-SER | Creditors Domestic Service"},
		}
	}
	return []Option{
		{Value: "CR-IMP", Label: "CR-IMP | Creditors Imports Raw Material"},
		{Value: "CR-IMP-CAP", Label: "CR-IMP-CAP | Creditors Import Capex"},
		{Value: "CR-IMP-EXP", Label: "CR-IMP-EXP | Creditors Import Expense"},
		{Value: "CR-IMP-SER", Label: "CR-IMP-SER | Creditors Import Service"},
	}
}

// CommodityCodeOptions returns the commodity vocabulary, shared by both
// vendor populations.
func CommodityCodeOptions() []Option {
	return []Option{
		{Value: "AA", Label: "AA - Aluminium"},
		{Value: "AB", Label: "AB - FG-Extruded Sheet"},
		{Value: "AC", Label: "AC - FG-HE Coil"},
		{Value: "AD", Label: "AD - FG-IDU"},
		{Value: "AE", Label: "AE - FG-Inner Case"},
		{Value: "AF", Label: "AF - FG-MFC"},
		{Value: "AG", Label: "AG - FG-ODU"},
		{Value: "AJ", Label: "AJ - Steel"},
		{Value: "AK", Label: "AK - FG-WAC"},
		{Value: "AM", Label: "AM - FG-SAC"},
		{Value: "AN", Label: "AN - ODU-Accessories"},
	}
}
