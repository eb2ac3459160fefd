package session

import (
	"github.com/recourse/intake/pkg/domain"
)

// Values returns every field as a plain Go value keyed by field name:
// strings for text/choice/money, ordered token lists for multi-choice,
// calendar-date strings for dates, and booleans. Unanswered dates export as
// the empty string.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values()
}

func (s *Session) values() map[string]any {
	out := make(map[string]any)
	for _, name := range s.flow.FieldNames() {
		v := s.answers.Get(name)
		switch v.Kind {
		case domain.KindMultiChoice:
			list := v.List
			if list == nil {
				list = []string{}
			}
			out[name] = list
		case domain.KindDate:
			if v.Date.IsZero() {
				out[name] = ""
			} else {
				out[name] = v.Date.Format(domain.DateLayout)
			}
		case domain.KindBool:
			out[name] = v.Bool
		default:
			out[name] = v.Str
		}
	}
	return out
}

// Export produces the flat data hand-off for the document-generation
// collaborator: all fields fully resolved, plus the sub-entity records.
// It refuses with ErrNotComplete until the flow reaches the terminal state.
func (s *Session) Export() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.complete {
		return nil, ErrNotComplete
	}

	out := s.values()
	out["flow"] = s.flow.Name
	out["items"] = s.items.Items()
	return out, nil
}
