package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/recourse/intake/internal/logging"
	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/draft"
	"github.com/recourse/intake/pkg/flow"
	"github.com/recourse/intake/pkg/ports"
)

// ErrNotComplete is returned when exporting a session that has not reached
// the terminal state.
var ErrNotComplete = errors.New("session not complete")

// Session is one in-progress traversal of a wizard flow. It owns the Answer
// Store, the sub-entity collection, the current step pointer, and the
// debounced draft persistence.
//
// All mutations are expected from a single event-processing goroutine; the
// internal mutex only fences the debounce timer's snapshot against it.
type Session struct {
	flow   *flow.Flow
	store  ports.DraftStore
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	answers  *domain.Answers
	items    *domain.Collection
	step     int
	complete bool
	result   flow.Result

	saver     *draft.Saver
	saverOpts []draft.Option
}

// Option configures the Session.
type Option func(*Session)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithDebounce overrides the persistence quiet window.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		s.saverOpts = append(s.saverOpts, draft.WithWindow(d))
	}
}

// WithSaveHook registers a callback invoked after every draft write attempt.
func WithSaveHook(hook func(error)) Option {
	return func(s *Session) {
		s.saverOpts = append(s.saverOpts, draft.WithSaveHook(hook))
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New starts a session for the given flow. If a draft record exists under
// the flow's key it is hydrated; a missing or unreadable draft falls back
// to the default Answer Store at step 1. Read failures are recovered
// locally: logged, never fatal.
func New(ctx context.Context, fl *flow.Flow, store ports.DraftStore, opts ...Option) (*Session, error) {
	s := &Session{
		flow:   fl,
		store:  store,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	d, err := store.Load(ctx, fl.DraftKey)
	switch {
	case err == nil:
		// Resumed session: continue where the user left off.
	case errors.Is(err, domain.ErrDraftNotFound):
		d = nil
	default:
		s.logger.Warn("discarding unreadable draft; starting from defaults",
			"flow", fl.Name,
			"key", fl.DraftKey,
			"err", err,
		)
		d = nil
	}
	s.answers, s.items, s.step = fl.Hydrate(d, s.logger)

	saverOpts := append([]draft.Option{draft.WithLogger(s.logger)}, s.saverOpts...)
	s.saver = draft.NewSaver(store, fl.DraftKey, s.snapshot, saverOpts...)

	return s, nil
}

// HasDraft reports whether a saved draft exists for the flow, without
// hydrating it. Used to offer "continue where you left off".
func HasDraft(ctx context.Context, store ports.DraftStore, fl *flow.Flow) (bool, error) {
	return store.Exists(ctx, fl.DraftKey)
}

// snapshot is called by the saver at write time, under the session lock, so
// the persisted draft always reflects the state as of the timer firing.
func (s *Session) snapshot() *domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.Snapshot(s.answers, s.items, s.step, s.now())
}

// Flow returns the flow definition this session traverses.
func (s *Session) Flow() *flow.Flow { return s.flow }

// Step returns the current step ordinal.
func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Completed reports whether the flow reached the terminal state.
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.complete
}

// Errors returns the validation result of the last refused or attempted
// transition for the current step.
func (s *Session) Errors() flow.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Answers returns a copy of the Answer Store for reading.
func (s *Session) Answers() *domain.Answers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

// Items returns a copy of the sub-entity records in insertion order.
func (s *Session) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Items()
}

// Validate runs the validation engine for the current step without
// navigating.
func (s *Session) Validate() flow.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.Validate(s.step, s.answers, s.items)
}

// Advance runs the validation gate for the current step. Field errors
// refuse the transition (no state change) and are returned for inline
// display; otherwise the step pointer increments, or the session completes
// from the last step. An advisory never blocks.
func (s *Session) Advance() flow.Result {
	s.mu.Lock()
	if s.complete {
		s.mu.Unlock()
		return flow.Result{Fields: map[string]string{}}
	}

	res := s.flow.Validate(s.step, s.answers, s.items)
	s.result = res
	if !res.OK() {
		s.mu.Unlock()
		return res
	}

	if s.step == s.flow.Steps() {
		s.complete = true
	} else {
		s.step++
	}
	s.result = flow.Result{}
	s.mu.Unlock()

	s.saver.Schedule()
	return res
}

// Back moves one step backwards without validation; abandoning a step's
// edits is always allowed. No-op on step 1.
func (s *Session) Back() {
	s.mu.Lock()
	if s.complete || s.step <= 1 {
		s.mu.Unlock()
		return
	}
	s.step--
	s.result = flow.Result{}
	s.mu.Unlock()

	s.saver.Schedule()
}

// Jump moves directly to any valid step without validation. It is the
// escape hatch the review step uses so the user can revisit and fix any
// prior section.
func (s *Session) Jump(target int) error {
	s.mu.Lock()
	if target < 1 || target > s.flow.Steps() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", domain.ErrStepOutOfRange, target)
	}
	s.step = target
	s.complete = false
	s.result = flow.Result{}
	s.mu.Unlock()

	s.saver.Schedule()
	return nil
}

// SaveAndExit flushes any pending draft write immediately and stops the
// debounce timer.
func (s *Session) SaveAndExit(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// Discard cancels any pending write, deletes the persisted draft, and
// resets the session to defaults at step 1. Idempotent.
func (s *Session) Discard(ctx context.Context) error {
	s.saver.Cancel()

	err := s.store.Delete(ctx, s.flow.DraftKey)

	s.mu.Lock()
	s.answers = s.flow.NewAnswers()
	s.items = s.flow.NewCollection()
	s.step = 1
	s.complete = false
	s.result = flow.Result{}
	s.mu.Unlock()

	return err
}

// Close cancels any pending persistence without writing. Call on teardown
// so an abandoned session never resurrects a write after the fact.
func (s *Session) Close() {
	s.saver.Cancel()
}

// Pending reports whether a debounced write is currently scheduled.
func (s *Session) Pending() bool {
	return s.saver.Pending()
}
