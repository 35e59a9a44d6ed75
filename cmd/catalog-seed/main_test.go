package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/store-cli/internal/catalog"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "catalog.yaml")

	require.NoError(t, run(context.Background(), path, false))

	entries, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Len(t, entries, len(catalog.Default()))

	err = run(context.Background(), path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, run(context.Background(), path, true))
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.ErrorIs(t, run(ctx, path, false), context.Canceled)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
