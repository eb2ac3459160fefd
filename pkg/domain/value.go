package domain

import "time"

// Kind identifies the value type of a declared field.
type Kind int

const (
	KindText Kind = iota
	KindChoice
	KindMultiChoice
	KindMoney
	KindDate
	KindBool
)

// String returns the wire/display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindChoice:
		return "choice"
	case KindMultiChoice:
		return "multi_choice"
	case KindMoney:
		return "money"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// DateLayout is the calendar-date encoding used in persisted drafts.
const DateLayout = "2006-01-02"

// Value holds the current answer for a single field.
// Exactly one payload slot is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string    // Text, Choice, Money
	List []string  // MultiChoice, ordered by selection
	Date time.Time // Date; zero time means unanswered
	Bool bool
}

// Zero returns the "no answer yet" value for a kind.
// Empty string, empty set and zero time are legal states, never absent keys.
func Zero(kind Kind) Value {
	return Value{Kind: kind}
}

// TextValue builds a text value.
func TextValue(s string) Value { return Value{Kind: KindText, Str: s} }

// ChoiceValue builds a single-choice value from its token.
func ChoiceValue(token string) Value { return Value{Kind: KindChoice, Str: token} }

// MoneyValue builds a monetary value from its decimal string.
func MoneyValue(s string) Value { return Value{Kind: KindMoney, Str: s} }

// MultiChoiceValue builds a multi-choice value from its selected tokens.
func MultiChoiceValue(tokens []string) Value {
	return Value{Kind: KindMultiChoice, List: append([]string(nil), tokens...)}
}

// DateValue builds a date value.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// BoolValue builds a boolean value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsZero reports whether the field is still unanswered.
func (v Value) IsZero() bool {
	switch v.Kind {
	case KindMultiChoice:
		return len(v.List) == 0
	case KindDate:
		return v.Date.IsZero()
	case KindBool:
		return !v.Bool
	default:
		return v.Str == ""
	}
}

// Clone returns a copy that is safe to mutate independently.
func (v Value) Clone() Value {
	if v.List != nil {
		v.List = append([]string(nil), v.List...)
	}
	return v
}

// Equal reports whether two values hold the same answer.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindMultiChoice:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != other.List[i] {
				return false
			}
		}
		return true
	case KindDate:
		return v.Date.Equal(other.Date)
	case KindBool:
		return v.Bool == other.Bool
	default:
		return v.Str == other.Str
	}
}
