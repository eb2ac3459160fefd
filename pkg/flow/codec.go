package flow

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/recourse/intake/pkg/domain"
)

// Snapshot serializes the current session state into a draft record.
// The encoding is the stable wire contract: plain strings as-is, dates as
// calendar dates, booleans as literals, multi-choice as ordered token lists.
func (f *Flow) Snapshot(a *domain.Answers, items *domain.Collection, step int, now time.Time) *domain.Draft {
	fields := make(map[string]json.RawMessage, len(f.order))
	for _, name := range f.order {
		fields[name] = encodeValue(a.Get(name))
	}

	return &domain.Draft{
		Flow:        f.Name,
		CurrentStep: step,
		LastSavedAt: now.UTC(),
		Fields:      fields,
		Items:       items.Items(),
	}
}

// Hydrate reconstructs session state from a draft record. Decoding is
// lenient per field: a corrupt payload is logged and leaves that field at
// its default while everything else hydrates normally. The step ordinal is
// clamped into range.
func (f *Flow) Hydrate(d *domain.Draft, logger *slog.Logger) (*domain.Answers, *domain.Collection, int) {
	a := f.NewAnswers()
	items := f.NewCollection()
	if d == nil {
		return a, items, 1
	}

	for _, name := range f.order {
		raw, ok := d.Fields[name]
		if !ok {
			continue // Field added after the draft was written; keep default.
		}
		field := f.fields[name]
		value, err := decodeValue(field.Kind, raw)
		if err != nil {
			logger.Warn("discarding unreadable draft field",
				"flow", f.Name,
				"field", name,
				"err", err,
			)
			continue
		}
		if err := a.Set(name, value); err != nil {
			logger.Warn("failed to hydrate draft field", "flow", f.Name, "field", name, "err", err)
		}
	}

	items.Replace(d.Items)

	step := d.CurrentStep
	if step < 1 {
		step = 1
	}
	if step > len(f.steps) {
		step = len(f.steps)
	}

	return a, items, step
}

func encodeValue(v domain.Value) json.RawMessage {
	var payload any
	switch v.Kind {
	case domain.KindMultiChoice:
		list := v.List
		if list == nil {
			list = []string{}
		}
		payload = list
	case domain.KindDate:
		if v.Date.IsZero() {
			payload = ""
		} else {
			payload = v.Date.Format(domain.DateLayout)
		}
	case domain.KindBool:
		payload = v.Bool
	default:
		payload = v.Str
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		// Only plain strings, string slices and bools reach Marshal.
		panic(err)
	}
	return raw
}

func decodeValue(kind domain.Kind, raw json.RawMessage) (domain.Value, error) {
	switch kind {
	case domain.KindMultiChoice:
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return domain.Value{}, err
		}
		return domain.MultiChoiceValue(list), nil
	case domain.KindDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return domain.Value{}, err
		}
		if s == "" {
			return domain.Zero(domain.KindDate), nil
		}
		t, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.DateValue(t), nil
	case domain.KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return domain.Value{}, err
		}
		return domain.BoolValue(b), nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return domain.Value{}, err
		}
		return domain.Value{Kind: kind, Str: s}, nil
	}
}
