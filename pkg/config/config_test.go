package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "tui", cfg.DefaultUI)
	assert.Equal(t, []string{"/usr/share/applications"}, cfg.Catalog.Dirs)
	assert.Equal(t, "applications-other", cfg.Catalog.FallbackIcon)
	assert.False(t, cfg.Catalog.SkipHidden, "NoDisplay entries are listed by default")
	assert.Equal(t, 32, cfg.Icons.Size)
	assert.Equal(t, 256, cfg.Icons.CacheSize)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, []string{"-i", "-l", "15"}, cfg.GetLauncherConfig("dmenu").Args)
}

func TestLoadExplicitFileMergesOverDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"
terminal = "foot"

[catalog]
dirs = ["/a", "/b"]
skip_hidden = true

[icons]
size = 48
cache_size = 0

[launchers.rofi]
command = "rofi-wayland"
args = ["-theme", "dark"]

[launchers.custom]
args = "single"

[notifications]
enabled = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "foot", cfg.Terminal)
	assert.Equal(t, "tui", cfg.DefaultUI)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Catalog.Dirs)
	assert.True(t, cfg.Catalog.SkipHidden)
	assert.Equal(t, "applications-other", cfg.Catalog.FallbackIcon)
	assert.Equal(t, 48, cfg.Icons.Size)
	assert.Equal(t, 0, cfg.Icons.CacheSize)
	assert.Equal(t, []string{"/usr/share/pixmaps"}, cfg.Icons.PixmapDirs)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, "auto", cfg.Notifications.Tool)

	assert.Equal(t, LauncherCommand{Command: "rofi-wayland", Args: []string{"-theme", "dark"}}, cfg.GetLauncherConfig("rofi"))
	assert.Equal(t, []string{"-i", "-l", "15"}, cfg.GetLauncherConfig("bemenu").Args)
	assert.Equal(t, []string{"single"}, cfg.GetLauncherConfig("custom").Args)
	assert.Equal(t, LauncherCommand{}, cfg.GetLauncherConfig("nope"))
}

func TestLoadEmptyListClearsDefault(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[icons]\npixmap_dirs = []\nsearch_dirs = [\"~/icons\"]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Icons.PixmapDirs)
	assert.Empty(t, cfg.Icons.PixmapDirs)
	assert.Equal(t, []string{"~/icons"}, cfg.Icons.SearchDirs)
	assert.Equal(t, []string{"/usr/share/applications"}, cfg.Catalog.Dirs, "absent keys keep defaults")
}

func TestLoadExplicitFileErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("log_level = "), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadUserConfig(t *testing.T) {
	isolate(t)
	userPath := GetUserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0o755))
	require.NoError(t, os.WriteFile(userPath, []byte("default_ui = \"fzf\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fzf", cfg.DefaultUI)
}

func TestLoadBrokenUserConfigFallsBackToDefaults(t *testing.T) {
	isolate(t)
	userPath := GetUserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0o755))
	require.NoError(t, os.WriteFile(userPath, []byte("default_ui = [broken"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tui", cfg.DefaultUI)
}

func TestInitUserConfig(t *testing.T) {
	home := isolate(t)

	path, err := InitUserConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "qlaunch", "config.toml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfigData, string(data))

	_, err = InitUserConfig()
	assert.Error(t, err, "existing config must not be overwritten")
}
