package flow

import (
	"fmt"

	"github.com/recourse/intake/pkg/domain"
)

// Predicate is a pure test over the current session state. The same
// predicates drive both visibility and validation, so "required" and
// "rendered" never diverge.
type Predicate func(a *domain.Answers, items *domain.Collection) bool

// Field declares one answer of the flow.
type Field struct {
	Name string
	Kind domain.Kind

	// Options lists the tokens of choice and multi-choice fields.
	Options []string

	// When controls visibility; nil means always shown. A hidden field is
	// never validated.
	When Predicate

	// Default supplies a non-zero starting value (e.g. today's date).
	Default func() domain.Value
}

// Step is one ordinal stage of the flow. Ordinals are 1..N, contiguous.
type Step struct {
	Ordinal int
	Label   string
	Title   string
	Fields  []string
	Rules   []Rule
}

// Flow is a complete wizard definition: declared fields, ordered steps, and
// the step-scoped rule table.
type Flow struct {
	// Name identifies the flow in exports and drafts.
	Name string

	// DraftKey is the stable storage key for this flow's draft record.
	DraftKey string

	// MaxItems bounds the sub-entity collection.
	MaxItems int

	steps  []Step
	fields map[string]Field
	order  []string
}

// New assembles and checks a flow definition. Definitions are static program
// data, so any inconsistency is a programming error.
func New(name, draftKey string, fields []Field, steps []Step, maxItems int) (*Flow, error) {
	if name == "" || draftKey == "" {
		return nil, fmt.Errorf("flow needs a name and a draft key")
	}

	f := &Flow{
		Name:     name,
		DraftKey: draftKey,
		MaxItems: maxItems,
		steps:    steps,
		fields:   make(map[string]Field, len(fields)),
	}
	if f.MaxItems <= 0 {
		f.MaxItems = domain.DefaultItemCap
	}

	for _, field := range fields {
		if field.Name == "" {
			return nil, fmt.Errorf("flow %s: field with empty name", name)
		}
		if _, dup := f.fields[field.Name]; dup {
			return nil, fmt.Errorf("flow %s: duplicate field %s", name, field.Name)
		}
		f.fields[field.Name] = field
		f.order = append(f.order, field.Name)
	}

	for i, step := range steps {
		if step.Ordinal != i+1 {
			return nil, fmt.Errorf("flow %s: step ordinals must be contiguous from 1, got %d at position %d", name, step.Ordinal, i)
		}
		for _, fieldName := range step.Fields {
			if _, ok := f.fields[fieldName]; !ok {
				return nil, fmt.Errorf("flow %s step %d: unknown field %s", name, step.Ordinal, fieldName)
			}
		}
		for _, rule := range step.Rules {
			if rule.Field != "" {
				if _, ok := f.fields[rule.Field]; !ok {
					return nil, fmt.Errorf("flow %s step %d: rule on unknown field %s", name, step.Ordinal, rule.Field)
				}
			} else if rule.Key == "" {
				return nil, fmt.Errorf("flow %s step %d: flow-level rule needs a key", name, step.Ordinal)
			}
			if rule.Check == nil {
				return nil, fmt.Errorf("flow %s step %d: rule without a check", name, step.Ordinal)
			}
		}
	}

	if len(f.steps) == 0 {
		return nil, fmt.Errorf("flow %s: no steps", name)
	}

	return f, nil
}

// MustNew is New, panicking on definition errors.
func MustNew(name, draftKey string, fields []Field, steps []Step, maxItems int) *Flow {
	f, err := New(name, draftKey, fields, steps, maxItems)
	if err != nil {
		panic(err)
	}
	return f
}

// Steps returns the number of steps N.
func (f *Flow) Steps() int { return len(f.steps) }

// Step returns the definition of one step.
func (f *Flow) Step(n int) (Step, error) {
	if n < 1 || n > len(f.steps) {
		return Step{}, fmt.Errorf("%w: %d", domain.ErrStepOutOfRange, n)
	}
	return f.steps[n-1], nil
}

// Field returns a field declaration.
func (f *Flow) Field(name string) (Field, bool) {
	field, ok := f.fields[name]
	return field, ok
}

// FieldNames returns all declared field names in declaration order.
func (f *Flow) FieldNames() []string {
	return append([]string(nil), f.order...)
}

// NewAnswers builds this flow's default Answer Store: every declared field
// present, at its zero value or declared default.
func (f *Flow) NewAnswers() *domain.Answers {
	defaults := make(map[string]domain.Value, len(f.fields))
	for name, field := range f.fields {
		if field.Default != nil {
			defaults[name] = field.Default()
		} else {
			defaults[name] = domain.Zero(field.Kind)
		}
	}
	return domain.NewAnswers(defaults)
}

// NewCollection builds this flow's empty sub-entity collection.
func (f *Flow) NewCollection() *domain.Collection {
	return domain.NewCollection(f.MaxItems)
}

// FieldVisible reports whether a field is currently shown, given the
// answers so far.
func (f *Flow) FieldVisible(name string, a *domain.Answers, items *domain.Collection) bool {
	field, ok := f.fields[name]
	if !ok {
		return false
	}
	if field.When == nil {
		return true
	}
	return field.When(a, items)
}

// FieldRequired reports whether a field is currently required: it must be
// visible and carry at least one applicable blocking rule.
func (f *Flow) FieldRequired(name string, a *domain.Answers, items *domain.Collection) bool {
	if !f.FieldVisible(name, a, items) {
		return false
	}
	for _, step := range f.steps {
		for _, rule := range step.Rules {
			if rule.Field != name || rule.Advisory {
				continue
			}
			if rule.When == nil || rule.When(a, items) {
				return true
			}
		}
	}
	return false
}

// StepReachable reports whether a step can be navigated to. In the observed
// flows every step stays reachable; branching happens at field level.
func (f *Flow) StepReachable(n int, a *domain.Answers, items *domain.Collection) bool {
	return n >= 1 && n <= len(f.steps)
}

// Validate runs the step's rule table against the current state and returns
// the complete error set for that step. It is a pure function: calling it
// twice on an unchanged store yields identical results.
//
// Rules evaluate in declaration order without short-circuiting; a later rule
// on the same key overrides the earlier message. Rules on hidden fields are
// skipped, so a field is never required while hidden.
func (f *Flow) Validate(stepN int, a *domain.Answers, items *domain.Collection) Result {
	res := Result{Fields: map[string]string{}}

	step, err := f.Step(stepN)
	if err != nil {
		return res
	}

	for _, rule := range step.Rules {
		if rule.Field != "" && !f.FieldVisible(rule.Field, a, items) {
			continue
		}
		if rule.When != nil && !rule.When(a, items) {
			continue
		}
		if rule.Check(a, items) {
			continue
		}
		if rule.Advisory {
			res.Advisory = rule.Message
			continue
		}
		key := rule.Key
		if key == "" {
			key = rule.Field
		}
		res.Fields[key] = rule.Message
	}

	return res
}
