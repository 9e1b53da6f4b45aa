package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejection(t *testing.T) {
	assert.NoError(t, ValidateRejection(ReasonIncompleteDocuments, ""))
	assert.NoError(t, ValidateRejection(ReasonDuplicateVendor, ""))
	assert.NoError(t, ValidateRejection(ReasonOther, "Vendor already exists under a different code"))

	assert.Error(t, ValidateRejection("", ""))
	assert.Error(t, ValidateRejection("not_a_reason", ""))
	assert.Error(t, ValidateRejection(ReasonOther, ""))
	assert.Error(t, ValidateRejection(ReasonOther, "   "))
}

func TestRejectionComment(t *testing.T) {
	assert.Equal(t, "Incomplete Documents", RejectionComment(ReasonIncompleteDocuments, "", ""))
	assert.Equal(t, "Compliance Issues - Expired ISO certificate",
		RejectionComment(ReasonComplianceIssues, "", "Expired ISO certificate"))

	// "other" substitutes the custom text for the label.
	assert.Equal(t, "Shell company", RejectionComment(ReasonOther, "Shell company", ""))
	assert.Equal(t, "Shell company - see case notes",
		RejectionComment(ReasonOther, " Shell company ", " see case notes "))
}

func TestRejectionReasonsVocabulary(t *testing.T) {
	values := make([]string, 0, len(RejectionReasons))
	for _, r := range RejectionReasons {
		values = append(values, r.Value)
	}
	assert.Equal(t, []string{
		ReasonIncompleteDocuments,
		ReasonInvalidInformation,
		ReasonComplianceIssues,
		ReasonDuplicateVendor,
		ReasonOther,
	}, values)
}
