package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"soldocs/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documented = `"""
### INTUITION:
Use a hash map.

### APPROACH:
Store complements while scanning.

### TIME COMPLEXITY:
O(n)

### SPACE COMPLEXITY:
O(n)
"""
`

func TestValidateRecordsOnlyWithSave(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "two_sum.py"), []byte(documented), 0644))
	db := filepath.Join(t.TempDir(), "runs.db")
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")

	rootCmd.SetArgs([]string{"validate", root, "--config", cfgPath, "--db", db})
	require.NoError(t, rootCmd.Execute())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	_, err = store.LatestRun(context.Background())
	assert.ErrorIs(t, err, storage.ErrNoRuns)
	require.NoError(t, store.Close())

	rootCmd.SetArgs([]string{"validate", root, "--config", cfgPath, "--db", db, "--save"})
	require.NoError(t, rootCmd.Execute())

	store, err = storage.NewSQLiteStore(db)
	require.NoError(t, err)
	defer store.Close()
	run, err := store.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, run.Summary.Files)
	assert.Equal(t, 1, run.Summary.Passed)
}
