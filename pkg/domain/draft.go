package domain

import (
	"encoding/json"
	"time"
)

// Draft is the persisted snapshot of a session: every declared field, the
// sub-entity records, the current step ordinal, and the save timestamp.
// Field payloads stay raw JSON here; the flow definition owns the per-kind
// encoding and the lenient decode on hydration.
type Draft struct {
	Flow        string                     `json:"flow"`
	CurrentStep int                        `json:"currentStep"`
	LastSavedAt time.Time                  `json:"lastSavedAt"`
	Fields      map[string]json.RawMessage `json:"fields"`
	Items       []Item                     `json:"items,omitempty"`
}

// Clone returns a deep copy of the draft record.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Fields = make(map[string]json.RawMessage, len(d.Fields))
	for name, raw := range d.Fields {
		clone.Fields[name] = append(json.RawMessage(nil), raw...)
	}
	clone.Items = append([]Item(nil), d.Items...)
	return &clone
}
