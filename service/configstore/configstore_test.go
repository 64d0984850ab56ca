package configstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/cost-advisor/service/configstore"
)

func newStore(t *testing.T) configstore.ConfigStore {
	t.Helper()
	store, err := configstore.NewService(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestConfigValuesRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	_, err := store.GetValue(ctx, "cur_table")
	require.ErrorIs(t, err, configstore.ErrNotFound)

	require.NoError(t, store.SetValue(ctx, "cur_table", "billing_export"))
	value, err := store.GetValue(ctx, "cur_table")
	require.NoError(t, err)
	assert.Equal(t, "billing_export", value)

	// upsert overwrites
	require.NoError(t, store.SetValue(ctx, "cur_table", "billing_export_v2"))
	value, err = store.GetValue(ctx, "cur_table")
	require.NoError(t, err)
	assert.Equal(t, "billing_export_v2", value)
}

func TestRunRecordsNewestFirst(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		_, err := store.RecordRun(ctx, configstore.RunRecord{
			StartedAt:     now,
			CompletedAt:   now.Add(time.Minute),
			Mode:          "sync",
			Completed:     i,
			Failed:        0,
			TotalSavings:  float64(i) * 10,
			SchemaVariant: "legacy",
		})
		require.NoError(t, err)
	}

	records, err := store.LastRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Completed, "newest run first")
	assert.Equal(t, 20.0, records[0].TotalSavings)
	assert.Equal(t, now, records[0].StartedAt.UTC())
	assert.Equal(t, "legacy", records[0].SchemaVariant)
}
