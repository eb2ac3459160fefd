package flow

import (
	"regexp"
	"strings"

	"github.com/recourse/intake/pkg/domain"
)

// Shared predicate helpers. Flow definitions compose these so validation
// rules and visibility conditions read off the same table.

var (
	moneyPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Answered passes once the field holds any answer.
func Answered(field string) Predicate {
	return func(a *domain.Answers, _ *domain.Collection) bool {
		return !a.Get(field).IsZero()
	}
}

// NotBlank passes when the field's text is non-empty after trimming.
func NotBlank(field string) Predicate {
	return func(a *domain.Answers, _ *domain.Collection) bool {
		return strings.TrimSpace(a.Str(field)) != ""
	}
}

// Equals passes when a choice field holds the given token.
func Equals(field, token string) Predicate {
	return func(a *domain.Answers, _ *domain.Collection) bool {
		return a.Str(field) == token
	}
}

// OneOf passes when a choice field holds any of the given tokens.
func OneOf(field string, tokens ...string) Predicate {
	return func(a *domain.Answers, _ *domain.Collection) bool {
		current := a.Str(field)
		for _, token := range tokens {
			if current == token {
				return true
			}
		}
		return false
	}
}

// IsTrue passes when a boolean field is checked.
func IsTrue(field string) Predicate {
	return func(a *domain.Answers, _ *domain.Collection) bool {
		return a.Bool(field)
	}
}

// MoneyFormat passes when the field holds a non-negative decimal with at
// most two fractional digits. Empty values pass; pair with Answered for
// required checks.
func MoneyFormat(field string) Predicate {
	return func(a *domain.Answers, _ *domain.Collection) bool {
		s := a.Str(field)
		return s == "" || moneyPattern.MatchString(s)
	}
}

// EmailShape passes when the field looks like an email address. Empty values
// pass; pair with NotBlank for required checks.
func EmailShape(field string) Predicate {
	return func(a *domain.Answers, _ *domain.Collection) bool {
		s := strings.TrimSpace(a.Str(field))
		return s == "" || emailPattern.MatchString(s)
	}
}

// MinItems passes when the sub-entity collection holds at least n records.
func MinItems(n int) Predicate {
	return func(_ *domain.Answers, items *domain.Collection) bool {
		return items != nil && items.Len() >= n
	}
}

// ItemsComplete passes when every sub-entity record has a description.
func ItemsComplete() Predicate {
	return func(_ *domain.Answers, items *domain.Collection) bool {
		if items == nil {
			return true
		}
		for _, item := range items.Items() {
			if strings.TrimSpace(item.Description) == "" {
				return false
			}
		}
		return true
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(a *domain.Answers, items *domain.Collection) bool {
		return !p(a, items)
	}
}

// And passes when all predicates pass.
func And(ps ...Predicate) Predicate {
	return func(a *domain.Answers, items *domain.Collection) bool {
		for _, p := range ps {
			if !p(a, items) {
				return false
			}
		}
		return true
	}
}

// Or passes when any predicate passes.
func Or(ps ...Predicate) Predicate {
	return func(a *domain.Answers, items *domain.Collection) bool {
		for _, p := range ps {
			if p(a, items) {
				return true
			}
		}
		return false
	}
}
