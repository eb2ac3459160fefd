// Package httpapi exposes the wizard session engine over HTTP for the UI
// layer: read access to the Answer Store and current step, the mutation
// command surface, and the navigation endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/recourse/intake/internal/logging"
	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/flow"
	"github.com/recourse/intake/pkg/flow/hpaction"
	"github.com/recourse/intake/pkg/ports"
	"github.com/recourse/intake/pkg/session"
)

// Server hosts one live session per registered flow, all persisting to the
// same store under their distinct draft keys.
type Server struct {
	store  ports.DraftStore
	logger *slog.Logger
	opts   []session.Option

	mu       sync.Mutex
	flows    map[string]*flow.Flow
	sessions map[string]*session.Session
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSessionOptions forwards options to every session the server opens.
func WithSessionOptions(opts ...session.Option) Option {
	return func(s *Server) {
		s.opts = append(s.opts, opts...)
	}
}

// NewServer creates a server managing the given flows.
func NewServer(store ports.DraftStore, flows []*flow.Flow, opts ...Option) *Server {
	s := &Server{
		store:    store,
		logger:   logging.NewNop(),
		flows:    make(map[string]*flow.Flow, len(flows)),
		sessions: make(map[string]*session.Session, len(flows)),
	}
	for _, fl := range flows {
		s.flows[fl.Name] = fl
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close cancels pending persistence on every open session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.Close()
	}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/flows/{flow}", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Post("/commands", s.handleCommand)
		r.Post("/advance", s.handleAdvance)
		r.Post("/back", s.handleBack)
		r.Post("/jump", s.handleJump)
		r.Post("/save", s.handleSave)
		r.Post("/discard", s.handleDiscard)
		r.Get("/draft", s.handleDraftExists)
		r.Get("/export", s.handleExport)
		r.Get("/slots", s.handleSlots)
	})

	return r
}

// sess returns (lazily opening) the session for a flow name.
func (s *Server) sess(ctx context.Context, name string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[name]; ok {
		return sess, nil
	}

	fl, ok := s.flows[name]
	if !ok {
		return nil, errUnknownFlow
	}

	opts := append([]session.Option{
		session.WithLogger(s.logger),
		session.WithSaveHook(func(err error) { observeSave(name, err) }),
	}, s.opts...)

	sess, err := session.New(ctx, fl, s.store, opts...)
	if err != nil {
		return nil, err
	}
	s.sessions[name] = sess
	return sess, nil
}

var errUnknownFlow = errors.New("unknown flow")

type stateResponse struct {
	Flow      string            `json:"flow"`
	Step      int               `json:"step"`
	Steps     int               `json:"steps"`
	Label     string            `json:"label"`
	Title     string            `json:"title"`
	Completed bool              `json:"completed"`
	Answers   map[string]any    `json:"answers"`
	Items     []domain.Item     `json:"items"`
	Errors    map[string]string `json:"errors"`
	Advisory  string            `json:"advisory,omitempty"`
}

func (s *Server) stateOf(sess *session.Session) stateResponse {
	fl := sess.Flow()
	step, _ := fl.Step(sess.Step())
	res := sess.Errors()
	errs := res.Fields
	if errs == nil {
		errs = map[string]string{}
	}
	items := sess.Items()
	if items == nil {
		items = []domain.Item{}
	}
	return stateResponse{
		Flow:      fl.Name,
		Step:      sess.Step(),
		Steps:     fl.Steps(),
		Label:     step.Label,
		Title:     step.Title,
		Completed: sess.Completed(),
		Answers:   sess.Values(),
		Items:     items,
		Errors:    errs,
		Advisory:  res.Advisory,
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	res := sess.Advance()
	if !res.OK() {
		observeRefusal(sess.Flow().Name, sess.Step())
		// A refused gate is a normal control-flow outcome, surfaced inline.
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors":   res.Fields,
			"advisory": res.Advisory,
		})
		return
	}
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	sess.Back()
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	var body struct {
		Step int `json:"step"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := sess.Jump(body.Step); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	if err := sess.SaveAndExit(r.Context()); err != nil {
		http.Error(w, "Failed to save draft", http.StatusInternalServerError)
		s.logger.Error("save-and-exit failed", "flow", sess.Flow().Name, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	if err := sess.Discard(r.Context()); err != nil {
		http.Error(w, "Failed to discard draft", http.StatusInternalServerError)
		s.logger.Error("discard failed", "flow", sess.Flow().Name, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateOf(sess))
}

func (s *Server) handleDraftExists(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "flow")

	s.mu.Lock()
	fl, known := s.flows[name]
	s.mu.Unlock()
	if !known {
		http.Error(w, "Unknown flow", http.StatusNotFound)
		return
	}

	exists, err := session.HasDraft(r.Context(), s.store, fl)
	if err != nil {
		http.Error(w, "Failed to check draft", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	export, err := sess.Export()
	if err != nil {
		http.Error(w, "Flow not complete", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, export)
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	// Slot availability only applies to the inspection-request flow.
	if chi.URLParam(r, "flow") != "hp_action" {
		http.Error(w, "Flow has no time slots", http.StatusNotFound)
		return
	}
	borough := r.URL.Query().Get("borough")
	slots := hpaction.SlotsForBorough(borough)
	if slots == nil {
		slots = []hpaction.TimeSlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sess(r.Context(), chi.URLParam(r, "flow"))
	if err != nil {
		if errors.Is(err, errUnknownFlow) {
			http.Error(w, "Unknown flow", http.StatusNotFound)
		} else {
			http.Error(w, "Failed to open session", http.StatusInternalServerError)
			s.logger.Error("session open failed", "err", err)
		}
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
