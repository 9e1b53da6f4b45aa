package workflow

import (
	"sort"
	"strings"
)

// Sequencer walks a form through the six wizard steps. Advancing re-validates
// the current step; going back never does.
type Sequencer struct {
	form    *Form
	current int
}

// NewSequencer starts a sequencer at step 1 over the given form.
func NewSequencer(form *Form) *Sequencer {
	return &Sequencer{form: form, current: FirstStep}
}

// Current returns the active step (1..6).
func (s *Sequencer) Current() int {
	return s.current
}

// Advance validates the current step and moves forward only when it is clean.
// The returned error map is empty on success and lists the offending fields
// otherwise, in which case the step does not change.
func (s *Sequencer) Advance() map[string]string {
	errs := ValidateStep(s.current, s.form)
	if len(errs) == 0 && s.current < LastStep {
		s.current++
	}
	return errs
}

// Retreat moves one step back without re-validating. Step 1 is the floor.
func (s *Sequencer) Retreat() {
	if s.current > FirstStep {
		s.current--
	}
}

// Submit performs the final submission check: the cross-cutting required
// fields are verified first and reported all at once under the "submit" key;
// only when they are present is the full accumulated record validated step by
// step. An empty map means the form is ready to be sent.
func (s *Sequencer) Submit() map[string]string {
	required := map[string]string{
		"business_vertical":   s.form.BusinessVertical,
		"company_name":        s.form.CompanyName,
		"country_origin":      s.form.CountryOrigin,
		"contact_person_name": s.form.ContactPersonName,
		"email":               s.form.Email,
		"phone_number":        s.form.PhoneNumber,
	}

	var missing []string
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return map[string]string{"submit": "Missing required fields: " + strings.Join(missing, ", ")}
	}

	return ValidateAll(s.form)
}
