package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/chromasphere/export"
	"github.com/lixenwraith/chromasphere/layout"
	"github.com/lixenwraith/chromasphere/store"
)

func withFlags(t *testing.T, cfgPath string, count int, mute bool) {
	t.Helper()
	prevCfg, prevCount, prevMute := *configFlag, *countFlag, *muteFlag
	*configFlag, *countFlag, *muteFlag = cfgPath, count, mute
	t.Cleanup(func() {
		*configFlag, *countFlag, *muteFlag = prevCfg, prevCount, prevMute
	})
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("count = 40\n[audio]\nenabled = true\n"), 0644))
	withFlags(t, path, 12, true)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Count)
	assert.False(t, cfg.Audio.Enabled)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("radius = -1.0\n"), 0644))
	withFlags(t, path, -1, false)

	_, err := loadConfig()
	assert.True(t, errors.Is(err, layout.ErrInvalidConfiguration))
}

func TestWriteExportRejectsFormat(t *testing.T) {
	st, err := store.Build(3, 1, layout.DefaultPalette())
	require.NoError(t, err)
	assert.True(t, errors.Is(writeExport(st, 1, "xml"), export.ErrUnknownFormat))
}
