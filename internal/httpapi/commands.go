package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/session"
)

// command is the wire envelope for the mutation surface. The op tag selects
// which typed command the payload decodes into.
type command struct {
	Op      string            `mapstructure:"op"`
	Field   string            `mapstructure:"field"`
	Value   string            `mapstructure:"value"`
	Values  []string          `mapstructure:"values"`
	Flag    bool              `mapstructure:"flag"`
	ItemID  string            `mapstructure:"itemId"`
	Patch   *domain.ItemPatch `mapstructure:"patch"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var cmd command
	if err := mapstructure.Decode(raw, &cmd); err != nil {
		http.Error(w, "Invalid command: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.apply(sess, cmd)
	switch {
	case err == nil:
	case errors.Is(err, errBadCommand), errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrKindMismatch):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrCollectionFull):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, domain.ErrItemNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	default:
		http.Error(w, "Command failed", http.StatusInternalServerError)
		s.logger.Error("command failed", "flow", sess.Flow().Name, "op", cmd.Op, "err", err)
		return
	}

	resp := map[string]any{"state": s.stateOf(sess)}
	if result != nil {
		resp["result"] = result
	}
	writeJSON(w, http.StatusOK, resp)
}

var errBadCommand = errors.New("invalid command")

// apply dispatches one command against the session. The op set is closed;
// anything outside it is rejected rather than guessed at.
func (s *Server) apply(sess *session.Session, cmd command) (any, error) {
	switch cmd.Op {
	case "setText":
		return nil, sess.SetText(cmd.Field, cmd.Value)
	case "setChoice":
		return nil, sess.SetChoice(cmd.Field, cmd.Value)
	case "setMoney":
		return nil, sess.SetMoney(cmd.Field, cmd.Value)
	case "setDate":
		if cmd.Value == "" {
			return nil, sess.SetDate(cmd.Field, time.Time{})
		}
		t, err := time.Parse(domain.DateLayout, cmd.Value)
		if err != nil {
			return nil, errors.Join(errBadCommand, err)
		}
		return nil, sess.SetDate(cmd.Field, t)
	case "setBool":
		return nil, sess.SetBool(cmd.Field, cmd.Flag)
	case "setMultiChoice":
		return nil, sess.SetMultiChoice(cmd.Field, cmd.Values)
	case "toggleChoice":
		return nil, sess.ToggleChoice(cmd.Field, cmd.Value)
	case "addItem":
		item, err := sess.AddItem()
		if err != nil {
			return nil, err
		}
		return item, nil
	case "updateItem":
		if cmd.Patch == nil {
			return nil, errors.Join(errBadCommand, errors.New("updateItem requires a patch"))
		}
		return nil, sess.UpdateItem(cmd.ItemID, *cmd.Patch)
	case "removeItem":
		sess.RemoveItem(cmd.ItemID)
		return nil, nil
	default:
		return nil, errors.Join(errBadCommand, errors.New("unknown op "+cmd.Op))
	}
}
