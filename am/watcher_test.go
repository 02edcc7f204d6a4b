package am

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWatcherDebouncesChanges(t *testing.T) {
	model := filepath.Join(t.TempDir(), "shapes.yaml")
	writeFile(t, model, "packages: []\n")

	cw, err := NewConfigWatcher("", 50*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	require.NoError(t, cw.Watch(model))

	changed := make(chan string, 10)
	cw.OnChange(func(path string) error {
		changed <- path
		return nil
	})
	cw.Start()
	defer cw.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(model, []byte("packages: []\n# edit\n"), 0644))
	}

	select {
	case path := <-changed:
		assert.Equal(t, model, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case path := <-changed:
		t.Fatalf("burst reported twice: %s", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherReloadsConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "[genmodel]\ncompliance_level = \"11.0\"\n")

	cw, err := NewConfigWatcher(path, 50*time.Millisecond, nil)
	require.NoError(t, err)

	reloaded := make(chan *Config, 1)
	cw.OnReload(func(c *Config) error {
		reloaded <- c
		return nil
	})
	cw.Start()
	defer cw.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[genmodel]\ncompliance_level = \"17.0\"\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "17.0", cfg.GenModel.ComplianceLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}

func TestWatcherIgnoresOwnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, WriteDefaults(path, false))

	cw, err := NewConfigWatcher(path, 10*time.Millisecond, nil)
	require.NoError(t, err)
	SetGlobalWatcher(cw)
	defer SetGlobalWatcher(nil)
	assert.Same(t, cw, GetGlobalWatcher())

	reloaded := make(chan struct{}, 1)
	cw.OnReload(func(*Config) error {
		reloaded <- struct{}{}
		return nil
	})
	cw.Start()
	defer cw.Stop()

	require.NoError(t, WriteDefaults(path, true))

	select {
	case <-reloaded:
		t.Fatal("own write triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("/x/xcore.toml.back1"))
	assert.True(t, isBackupFile("xcore.toml.back3"))
	assert.False(t, isBackupFile("xcore.toml"))
	assert.False(t, isBackupFile("shapes.yaml"))
}

func TestNewConfigWatcherMissingFile(t *testing.T) {
	_, err := NewConfigWatcher(filepath.Join(t.TempDir(), "missing.toml"), 0, nil)
	assert.Error(t, err)
}
