// Package draft implements the debounced, write-behind persistence of
// session drafts.
package draft

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/recourse/intake/internal/logging"
	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/ports"
)

// DefaultWindow is the quiet period after the last mutation before the
// draft is written.
const DefaultWindow = 1000 * time.Millisecond

// Saver coalesces rapid Schedule calls into a single store write carrying
// the latest snapshot. Persistence is best-effort: write failures are
// logged and the session keeps operating in memory; the next mutation's
// debounce cycle attempts another write.
type Saver struct {
	store    ports.DraftStore
	key      string
	snapshot func() *domain.Draft
	window   time.Duration
	logger   *slog.Logger
	hook     func(error)

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64 // arm counter; a fired timer from an older arm must not write
}

// Option configures the Saver.
type Option func(*Saver)

// WithWindow overrides the debounce quiet window.
func WithWindow(d time.Duration) Option {
	return func(s *Saver) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithLogger configures a logger for deferred write errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Saver) {
		s.logger = logger
	}
}

// WithSaveHook registers a callback invoked after every write attempt with
// its outcome. Used for metrics.
func WithSaveHook(hook func(error)) Option {
	return func(s *Saver) {
		s.hook = hook
	}
}

// NewSaver creates a Saver writing to the given store under an explicit
// draft key. snapshot is called at write time, so the write always carries
// the state as of the timer firing.
func NewSaver(store ports.DraftStore, key string, snapshot func() *domain.Draft, opts ...Option) *Saver {
	s := &Saver{
		store:    store,
		key:      key,
		snapshot: snapshot,
		window:   DefaultWindow,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule (re)arms the single pending write. Repeated calls within the
// quiet window collapse into one write of the latest snapshot.
func (s *Saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.window, func() {
		s.fire(gen)
	})
}

func (s *Saver) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		// A newer arm or a cancel superseded this timer.
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.write(context.Background())
}

// Flush cancels any pending timer and writes the current snapshot
// immediately. Used by save-and-exit.
func (s *Saver) Flush(ctx context.Context) error {
	s.Cancel()
	return s.write(ctx)
}

// Cancel drops any pending write without persisting. After Cancel returns,
// no write from a previously armed timer can occur.
func (s *Saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a write is currently scheduled.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Saver) write(ctx context.Context) error {
	err := s.store.Save(ctx, s.key, s.snapshot())
	if err != nil {
		s.logger.Warn("draft save failed; edits stay in memory until the next cycle",
			"key", s.key,
			"err", err,
		)
	}
	if s.hook != nil {
		s.hook(err)
	}
	return err
}
