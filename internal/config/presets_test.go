package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePreset(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".optic"), []byte(src), 0o644))
}

func TestNewPresetStore_LoadsExistingPresets(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "no-trackers", `Rule { Matches { Domain("a.com") }, Action(Boost(1)) };`)

	s, err := NewPresetStore(dir, nil)
	require.NoError(t, err)
	defer s.Stop()

	assert.ElementsMatch(t, []string{"no-trackers"}, s.Names())
	_, ok := s.Get("no-trackers")
	assert.True(t, ok)
}

func TestNewPresetStore_InvalidPresetIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "broken", `not a valid optic program {{{`)

	s, err := NewPresetStore(dir, nil)
	require.NoError(t, err)
	defer s.Stop()

	assert.Empty(t, s.Names())
}

func TestPresetStore_GetMissingReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPresetStore(dir, nil)
	require.NoError(t, err)
	defer s.Stop()

	_, ok := s.Get("nonexistent")
	assert.False(t, ok)
}

func TestPresetStore_WatchPicksUpNewFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewPresetStore(dir, nil)
	require.NoError(t, err)
	defer s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Watch(ctx)

	writePreset(t, dir, "fresh", `Rule { Matches { Domain("a.com") }, Action(Boost(1)) };`)

	require.Eventually(t, func() bool {
		_, ok := s.Get("fresh")
		return ok
	}, 2*time.Second, 20*time.Millisecond)
}
