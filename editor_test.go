package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floorknight/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetsTextIsASettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(OffsetsText(cp.Vector{X: 1.25, Y: -0.5})), 0o644))

	store, err := settings.NewYAMLStore(path)
	require.NoError(t, err)
	defer store.Close()

	x, ok, err := store.Get(settings.KeyFloorPositionX)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 1.25, x, 1e-9)

	y, ok, err := store.Get(settings.KeyFloorPositionY)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, -0.5, y, 1e-9)
}
