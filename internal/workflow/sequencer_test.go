package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerAdvancesThroughValidForm(t *testing.T) {
	s := NewSequencer(validIndianForm())
	require.Equal(t, FirstStep, s.Current())

	for step := FirstStep; step < LastStep; step++ {
		assert.Empty(t, s.Advance(), "step %d", step)
	}
	assert.Equal(t, LastStep, s.Current())

	// Advancing past the last step is a no-op.
	assert.Empty(t, s.Advance())
	assert.Equal(t, LastStep, s.Current())
}

func TestSequencerBlocksOnInvalidStep(t *testing.T) {
	f := validIndianForm()
	f.SupplyPincode = ""
	s := NewSequencer(f)

	require.Empty(t, s.Advance())
	require.Equal(t, 2, s.Current())

	// The missing pincode pins the sequencer to step 2 until it is fixed.
	errs := s.Advance()
	assert.Contains(t, errs, "supply_pincode")
	assert.Equal(t, 2, s.Current())

	f.SupplyPincode = "411019"
	assert.Empty(t, s.Advance())
	assert.Equal(t, 3, s.Current())
}

func TestSequencerRetreatNeverValidates(t *testing.T) {
	f := validIndianForm()
	s := NewSequencer(f)
	require.Empty(t, s.Advance())
	require.Equal(t, 2, s.Current())

	// Breaking an earlier step does not stop the applicant from going back.
	f.CompanyName = ""
	s.Retreat()
	assert.Equal(t, 1, s.Current())

	// Step 1 is the floor.
	s.Retreat()
	assert.Equal(t, 1, s.Current())
}

func TestSubmitReportsMissingRequiredFieldsSorted(t *testing.T) {
	f := validIndianForm()
	f.CompanyName = ""
	f.Email = "   "
	f.PhoneNumber = ""
	s := NewSequencer(f)

	errs := s.Submit()
	require.Len(t, errs, 1)
	assert.Equal(t, "Missing required fields: company_name, email, phone_number", errs["submit"])
}

func TestSubmitFallsThroughToFullValidation(t *testing.T) {
	f := validIndianForm()
	f.IFSCCode = "bad"
	s := NewSequencer(f)

	errs := s.Submit()
	assert.NotContains(t, errs, "submit")
	assert.Equal(t, "Invalid IFSC code format", errs["ifsc_code"])
}

func TestSubmitCleanForm(t *testing.T) {
	assert.Empty(t, NewSequencer(validIndianForm()).Submit())
	assert.Empty(t, NewSequencer(validForeignForm()).Submit())
}
