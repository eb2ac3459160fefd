package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/recourse/intake/pkg/domain"
)

// Store implements ports.DraftStore using the local filesystem.
// It keeps one JSON file per draft key in a configured directory.
type Store struct {
	BasePath string
}

// NewStore creates a new file store rooted at basePath.
// If basePath is empty, it defaults to ".intake/drafts".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".intake", "drafts")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.BasePath, key+".json")
}

// Save persists the draft record to a JSON file.
func (s *Store) Save(ctx context.Context, key string, draft *domain.Draft) error {
	if key == "" {
		return fmt.Errorf("draft key cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure draft directory: %w", err)
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write draft file: %w", err)
	}

	return nil
}

// Load retrieves the draft record from its JSON file.
func (s *Store) Load(ctx context.Context, key string) (*domain.Draft, error) {
	if key == "" {
		return nil, fmt.Errorf("draft key cannot be empty")
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to read draft file: %w", err)
	}

	var draft domain.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// Delete removes the draft file. Idempotent.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("draft key cannot be empty")
	}

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete draft file: %w", err)
	}

	return nil
}

// Exists reports whether a draft file is present, without reading it.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat draft file: %w", err)
	}
	return true, nil
}

// List returns all stored draft keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			keys = append(keys, name[:len(name)-len(".json")])
		}
	}

	return keys, nil
}
