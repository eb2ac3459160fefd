package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/recourse/intake/pkg/adapters/file"
	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDraftStoreContract(t, file.NewStore(t.TempDir()))
}

func TestFileStore_WritesOneFilePerKey(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	draft := &domain.Draft{
		Flow:        "hp_action",
		CurrentStep: 1,
		Fields:      map[string]json.RawMessage{"borough": json.RawMessage(`"brooklyn"`)},
	}
	require.NoError(t, store.Save(ctx, "recourse_hp_action_draft", draft))

	data, err := os.ReadFile(filepath.Join(dir, "recourse_hp_action_draft.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"brooklyn"`)
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDraftNotFound)
}
