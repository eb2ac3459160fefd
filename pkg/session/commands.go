package session

import (
	"time"

	"github.com/recourse/intake/pkg/domain"
)

// Mutation commands. This is the closed command surface of the Answer
// Store: one setter per field group, each carrying its own value type.
// Every successful mutation marks the session dirty and (re)schedules the
// debounced draft write.

// SetText updates a free-text field.
func (s *Session) SetText(field, value string) error {
	return s.set(field, domain.TextValue(value))
}

// SetChoice updates a single-choice field with its token.
func (s *Session) SetChoice(field, token string) error {
	return s.set(field, domain.ChoiceValue(token))
}

// SetMoney updates a monetary field with its decimal string. The value is
// accepted unchecked; format is enforced by the step's validation gate.
func (s *Session) SetMoney(field, value string) error {
	return s.set(field, domain.MoneyValue(value))
}

// SetDate updates a date field. The zero time clears the answer.
func (s *Session) SetDate(field string, value time.Time) error {
	return s.set(field, domain.DateValue(value))
}

// SetBool updates a boolean field.
func (s *Session) SetBool(field string, value bool) error {
	return s.set(field, domain.BoolValue(value))
}

// SetMultiChoice replaces the selected tokens of a multi-choice field.
func (s *Session) SetMultiChoice(field string, tokens []string) error {
	return s.set(field, domain.MultiChoiceValue(tokens))
}

// ToggleChoice adds the token to a multi-choice field, or removes it when
// already selected, preserving selection order.
func (s *Session) ToggleChoice(field, token string) error {
	s.mu.Lock()
	current := s.answers.Get(field)
	next := make([]string, 0, len(current.List)+1)
	found := false
	for _, t := range current.List {
		if t == token {
			found = true
			continue
		}
		next = append(next, t)
	}
	if !found {
		next = append(next, token)
	}
	err := s.answers.Set(field, domain.MultiChoiceValue(next))
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.saver.Schedule()
	return nil
}

func (s *Session) set(field string, value domain.Value) error {
	s.mu.Lock()
	err := s.answers.Set(field, value)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.saver.Schedule()
	return nil
}

// AddItem appends a new sub-entity record with default values and a fresh
// ID. Refuses with domain.ErrCollectionFull at the collection bound;
// existing records stay intact.
func (s *Session) AddItem() (domain.Item, error) {
	s.mu.Lock()
	item, err := s.items.Add()
	s.mu.Unlock()

	if err != nil {
		return domain.Item{}, err
	}
	s.saver.Schedule()
	return item, nil
}

// UpdateItem merges the patch into the record matching id.
func (s *Session) UpdateItem(id string, patch domain.ItemPatch) error {
	s.mu.Lock()
	err := s.items.Update(id, patch)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.saver.Schedule()
	return nil
}

// RemoveItem deletes the record matching id; removing an absent id is a
// no-op and does not schedule a write.
func (s *Session) RemoveItem(id string) {
	s.mu.Lock()
	removed := s.items.Remove(id)
	s.mu.Unlock()

	if removed {
		s.saver.Schedule()
	}
}
