package workflow

import (
	"fmt"
	"strings"
)

// Rejection reason codes a reviewer may select. "other" requires a free-text
// explanation; the text itself is not constrained.
const (
	ReasonIncompleteDocuments = "incomplete_documents"
	ReasonInvalidInformation  = "invalid_information"
	ReasonComplianceIssues    = "compliance_issues"
	ReasonDuplicateVendor     = "duplicate_vendor"
	ReasonOther               = "other"
)

// RejectionReasons lists the selectable codes with display labels.
var RejectionReasons = []Option{
	{Value: ReasonIncompleteDocuments, Label: "Incomplete Documents"},
	{Value: ReasonInvalidInformation, Label: "Invalid Information"},
	{Value: ReasonComplianceIssues, Label: "Compliance Issues"},
	{Value: ReasonDuplicateVendor, Label: "Duplicate Vendor"},
	{Value: ReasonOther, Label: "Other (specify)"},
}

// ValidateRejection checks the reviewer's rejection input before anything is
// persisted. A missing reason, an unknown code, or "other" without text all
// fail closed.
func ValidateRejection(reason, customReason string) error {
	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}
	known := false
	for _, r := range RejectionReasons {
		if r.Value == reason {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown rejection reason: %s", reason)
	}
	if reason == ReasonOther && strings.TrimSpace(customReason) == "" {
		return fmt.Errorf("a custom reason is required when rejecting with reason 'other'")
	}
	return nil
}

// RejectionComment builds the audit comment for a rejection decision:
// the reason label (or the custom text for "other"), plus optional remarks.
func RejectionComment(reason, customReason, remarks string) string {
	text := reason
	for _, r := range RejectionReasons {
		if r.Value == reason {
			text = r.Label
			break
		}
	}
	if reason == ReasonOther {
		text = strings.TrimSpace(customReason)
	}
	if strings.TrimSpace(remarks) != "" {
		text += " - " + strings.TrimSpace(remarks)
	}
	return text
}
