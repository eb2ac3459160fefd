package domain

import (
	"fmt"
	"sort"
	"time"
)

// Answers is the Answer Store: the single source of truth for a session's
// field values. Every declared field always has an entry; zero values mean
// "no answer yet".
type Answers struct {
	values map[string]Value
}

// NewAnswers builds a store where every declared field starts at its zero
// value (or the supplied default).
func NewAnswers(defaults map[string]Value) *Answers {
	values := make(map[string]Value, len(defaults))
	for name, v := range defaults {
		values[name] = v.Clone()
	}
	return &Answers{values: values}
}

// Has reports whether the field is declared.
func (a *Answers) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Get returns the current value for a field. Reading an undeclared field
// returns a zero Value; use Has to distinguish.
func (a *Answers) Get(name string) Value {
	return a.values[name].Clone()
}

// Set writes a raw value for a known field. Values are accepted as typed but
// unchecked; validation happens at step gating, never at write time.
// Writing an undeclared field or the wrong kind is a programming error and
// is rejected.
func (a *Answers) Set(name string, v Value) error {
	current, ok := a.values[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if current.Kind != v.Kind {
		return fmt.Errorf("%w: %s is %s, got %s", ErrKindMismatch, name, current.Kind, v.Kind)
	}
	a.values[name] = v.Clone()
	return nil
}

// Str returns the string payload for text, choice and money fields.
func (a *Answers) Str(name string) string { return a.values[name].Str }

// List returns the selected tokens of a multi-choice field.
func (a *Answers) List(name string) []string { return a.Get(name).List }

// Date returns the date payload; zero time means unanswered.
func (a *Answers) Date(name string) time.Time { return a.values[name].Date }

// Bool returns the boolean payload.
func (a *Answers) Bool(name string) bool { return a.values[name].Bool }

// Fields returns all declared field names, sorted.
func (a *Answers) Fields() []string {
	names := make([]string, 0, len(a.values))
	for name := range a.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy, isolated from the original.
func (a *Answers) Clone() *Answers {
	return NewAnswers(a.values)
}

// Equal reports whether both stores hold the same fields and answers.
func (a *Answers) Equal(other *Answers) bool {
	if len(a.values) != len(other.values) {
		return false
	}
	for name, v := range a.values {
		ov, ok := other.values[name]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
