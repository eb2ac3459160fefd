package ports

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/recourse/intake/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDraftStoreContract runs a suite of tests to verify that a DraftStore
// implementation adheres to the defined interface contract.
func RunDraftStoreContract(t *testing.T, store DraftStore) {
	ctx := context.Background()
	key := "contract-test-draft-" + time.Now().Format("20060102150405")

	sample := func(step int) *domain.Draft {
		return &domain.Draft{
			Flow:        "contract",
			CurrentStep: step,
			LastSavedAt: time.Now().UTC().Truncate(time.Second),
			Fields: map[string]json.RawMessage{
				"depositAmount":    json.RawMessage(`"2500.00"`),
				"moveOutDate":      json.RawMessage(`"2025-11-01"`),
				"deductionReasons": json.RawMessage(`["cleaning","damage"]`),
			},
			Items: []domain.Item{
				{ID: "item-1", Location: domain.LocationApartment, Room: "Kitchen", Description: "No heat"},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, key, sample(3))
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, 3, loaded.CurrentStep)
		assert.JSONEq(t, `"2500.00"`, string(loaded.Fields["depositAmount"]))
		assert.JSONEq(t, `["cleaning","damage"]`, string(loaded.Fields["deductionReasons"]))
		require.Len(t, loaded.Items, 1)
		assert.Equal(t, "item-1", loaded.Items[0].ID)
	})

	t.Run("Overwrite keeps only the latest snapshot", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample(4)))
		require.NoError(t, store.Save(ctx, key, sample(5)))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 5, loaded.CurrentStep)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})

	t.Run("Exists", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample(1)))

		ok, err := store.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Exists(ctx, "non-existent-"+key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, sample(2)))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound, "Load after Delete should return ErrDraftNotFound")

		// Deleting again must stay a no-op.
		assert.NoError(t, store.Delete(ctx, key))
	})

	t.Run("List", func(t *testing.T) {
		keyA := key + "-a"
		keyB := key + "-b"
		require.NoError(t, store.Save(ctx, keyA, sample(1)))
		require.NoError(t, store.Save(ctx, keyB, sample(1)))
		defer func() {
			_ = store.Delete(ctx, keyA)
			_ = store.Delete(ctx, keyB)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, keyA)
		assert.Contains(t, keys, keyB)
	})
}
