package flow

// Rule is one row of a step's declarative rule table.
type Rule struct {
	// Field is the field the rule reports against. Empty for flow-level
	// rules (e.g. sub-entity checks), which must set Key instead.
	Field string

	// Key overrides the error-map key; defaults to Field.
	Key string

	// When gates applicability; nil means always applicable. A rule whose
	// field is hidden is skipped regardless.
	When Predicate

	// Check must hold, otherwise Message is reported.
	Check Predicate

	// Message is the user-facing error text.
	Message string

	// Advisory entries surface as a field-less advisory and never block
	// navigation (e.g. an ineligibility determination).
	Advisory bool
}

// Result is the outcome of validating one step.
type Result struct {
	// Fields maps field (or rule key) to error message. Empty means the
	// step passes its gate.
	Fields map[string]string

	// Advisory is a flow-level, non-blocking advisory; empty if none.
	Advisory string
}

// OK reports whether the step passes: no blocking field errors. An advisory
// alone does not fail the step.
func (r Result) OK() bool { return len(r.Fields) == 0 }

// Empty reports whether the result carries nothing at all.
func (r Result) Empty() bool { return len(r.Fields) == 0 && r.Advisory == "" }

// Equal reports whether two results carry the same errors and advisory.
func (r Result) Equal(other Result) bool {
	if r.Advisory != other.Advisory || len(r.Fields) != len(other.Fields) {
		return false
	}
	for key, msg := range r.Fields {
		if other.Fields[key] != msg {
			return false
		}
	}
	return true
}
