package ports

import (
	"context"

	"github.com/recourse/intake/pkg/domain"
)

// DraftStore defines the interface for persisting draft records.
// Keys are explicit and caller-provided: each flow owns a distinct, stable
// key, so multiple flows or test instances never collide.
type DraftStore interface {
	// Save persists the draft record under the given key.
	Save(ctx context.Context, key string, draft *domain.Draft) error

	// Load retrieves the draft record for a key.
	// Returns domain.ErrDraftNotFound if no record exists.
	Load(ctx context.Context, key string) (*domain.Draft, error)

	// Delete removes the draft record for a key. Idempotent.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a draft record is stored under the key,
	// without hydrating it.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns the keys of all stored draft records.
	List(ctx context.Context) ([]string, error)
}
