package intake

import (
	"context"
	"fmt"
	"sync"

	"github.com/recourse/intake/pkg/flow"
	"github.com/recourse/intake/pkg/flow/deposit"
	"github.com/recourse/intake/pkg/flow/hpaction"
	"github.com/recourse/intake/pkg/ports"
	"github.com/recourse/intake/pkg/session"
)

// Version is the intake release version.
const Version = "0.1.0"

// Registry manages the available flows by name.
type Registry struct {
	mu    sync.RWMutex
	flows map[string]func() *flow.Flow
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		flows: make(map[string]func() *flow.Flow),
	}
}

// Register adds a flow constructor to the registry.
// If a flow with the same name exists, it is overwritten.
func (r *Registry) Register(name string, build func() *flow.Flow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flows[name] = build
}

// Build looks up a flow by name and constructs it.
// Returns an error if the flow is not registered.
func (r *Registry) Build(name string) (*flow.Flow, error) {
	r.mu.RLock()
	build, ok := r.flows[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("flow not found: %s", name)
	}
	return build(), nil
}

// Names returns the registered flow names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	return names
}

// defaultRegistry holds the flows that ship with intake.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register("deposit_claim", deposit.New)
	r.Register("hp_action", hpaction.New)
	return r
}()

// Flows returns the built-in flow registry.
func Flows() *Registry { return defaultRegistry }

// Open starts (or resumes) a session for a built-in flow, persisting
// drafts to the given store. It is the high-level entry point for hosts
// that do not need custom flow definitions.
func Open(ctx context.Context, flowName string, store ports.DraftStore, opts ...session.Option) (*session.Session, error) {
	fl, err := defaultRegistry.Build(flowName)
	if err != nil {
		return nil, err
	}
	return session.New(ctx, fl, store, opts...)
}
