// Package config provides configuration management for qlaunch.
// It handles loading, merging, and accessing configuration from default and user config files.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfigData string

// Config is the merged configuration
type Config struct {
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	DefaultUI string `toml:"default_ui"`
	Terminal  string `toml:"terminal"`

	Catalog       CatalogConfig      `toml:"catalog"`
	Icons         IconsConfig        `toml:"icons"`
	Launchers     LaunchersConfig    `toml:"launchers"`
	Notifications NotificationConfig `toml:"notifications"`
}

// CatalogConfig controls where applications are read from
type CatalogConfig struct {
	Dirs            []string `toml:"dirs"`
	SkipMissingDirs bool     `toml:"skip_missing_dirs"`
	SkipHidden      bool     `toml:"skip_hidden"`
	FallbackIcon    string   `toml:"fallback_icon"`
}

// IconsConfig controls icon resolution
type IconsConfig struct {
	Size       int      `toml:"size"`
	Theme      string   `toml:"theme"`
	CacheSize  int      `toml:"cache_size"`
	SearchDirs []string `toml:"search_dirs"`
	PixmapDirs []string `toml:"pixmap_dirs"`
}

// NotificationConfig controls desktop notifications
type NotificationConfig struct {
	Enabled        bool   `toml:"enabled"`
	Tool           string `toml:"tool"`
	Timeout        int    `toml:"timeout"`
	Urgency        string `toml:"urgency"`
	ShowInTerminal bool   `toml:"show_in_terminal"`
}

// CatalogConfigFile is read from TOML (pointers mark optional fields)
type CatalogConfigFile struct {
	Dirs            *[]string `toml:"dirs"`
	SkipMissingDirs *bool     `toml:"skip_missing_dirs"`
	SkipHidden      *bool     `toml:"skip_hidden"`
	FallbackIcon    *string   `toml:"fallback_icon"`
}

// IconsConfigFile is read from TOML
type IconsConfigFile struct {
	Size       *int      `toml:"size"`
	Theme      *string   `toml:"theme"`
	CacheSize  *int      `toml:"cache_size"`
	SearchDirs *[]string `toml:"search_dirs"`
	PixmapDirs *[]string `toml:"pixmap_dirs"`
}

// NotificationConfigFile is read from TOML
type NotificationConfigFile struct {
	Enabled        *bool   `toml:"enabled"`
	Tool           *string `toml:"tool"`
	Timeout        *int    `toml:"timeout"`
	Urgency        *string `toml:"urgency"`
	ShowInTerminal *bool   `toml:"show_in_terminal"`
}

// ConfigFile is read from a TOML file
type ConfigFile struct {
	LogLevel  *string `toml:"log_level"`
	LogFile   *string `toml:"log_file"`
	DefaultUI *string `toml:"default_ui"`
	Terminal  *string `toml:"terminal"`

	Catalog       CatalogConfigFile      `toml:"catalog"`
	Icons         IconsConfigFile        `toml:"icons"`
	Launchers     LaunchersConfig        `toml:"launchers"`
	Notifications NotificationConfigFile `toml:"notifications"`
}

// GetUserConfigPath returns the path to the user config
func GetUserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configHome, "qlaunch", "config.toml")
}

// GetSystemConfigPath returns the path to the system config
func GetSystemConfigPath() string {
	return "/etc/qlaunch/config.toml"
}

// Load loads the config by merging defaults with a config file.
// An explicit path must load cleanly. Without one the user config is tried,
// then the system config; a broken file there falls back to defaults.
func Load(path string) (*Config, error) {
	// 1. Load defaults
	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	// 2. Explicit config file
	if path != "" {
		fileCfg, err := loadConfigFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return mergeConfigs(defaultCfg, fileCfg), nil
	}

	// 3. User config, then system config
	for _, candidate := range []string{GetUserConfigPath(), GetSystemConfigPath()} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		fileCfg, err := loadConfigFromFile(candidate)
		if err != nil {
			slog.Warn("failed to load config, using defaults", "path", candidate, "err", err)
			return defaultCfg, nil
		}
		return mergeConfigs(defaultCfg, fileCfg), nil
	}

	// 4. No user/system config - use defaults
	return defaultCfg, nil
}

// loadDefaultConfig loads the embedded default config
func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadConfigFromFile loads a config file
func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges a config file over defaults (file overrides defaults)
func mergeConfigs(defaultCfg *Config, fileCfg *ConfigFile) *Config {
	merged := *defaultCfg

	mergeString(&merged.LogLevel, fileCfg.LogLevel)
	if fileCfg.LogFile != nil {
		merged.LogFile = *fileCfg.LogFile
	}
	mergeString(&merged.DefaultUI, fileCfg.DefaultUI)
	if fileCfg.Terminal != nil {
		merged.Terminal = *fileCfg.Terminal
	}

	mergeCatalogConfig(&merged.Catalog, &fileCfg.Catalog)
	mergeIconsConfig(&merged.Icons, &fileCfg.Icons)
	merged.Launchers = mergeLauncherConfigs(defaultCfg.Launchers, fileCfg.Launchers)
	mergeNotificationConfig(&merged.Notifications, &fileCfg.Notifications)

	return &merged
}

// mergeCatalogConfig merges catalog settings
func mergeCatalogConfig(merged *CatalogConfig, file *CatalogConfigFile) {
	mergeList(&merged.Dirs, file.Dirs)
	mergeBool(&merged.SkipMissingDirs, file.SkipMissingDirs)
	mergeBool(&merged.SkipHidden, file.SkipHidden)
	mergeString(&merged.FallbackIcon, file.FallbackIcon)
}

// mergeIconsConfig merges icon settings
func mergeIconsConfig(merged *IconsConfig, file *IconsConfigFile) {
	if file.Size != nil && *file.Size > 0 {
		merged.Size = *file.Size
	}
	if file.Theme != nil {
		merged.Theme = *file.Theme
	}
	if file.CacheSize != nil && *file.CacheSize >= 0 {
		merged.CacheSize = *file.CacheSize
	}
	mergeList(&merged.SearchDirs, file.SearchDirs)
	mergeList(&merged.PixmapDirs, file.PixmapDirs)
}

// mergeNotificationConfig merges notification settings
func mergeNotificationConfig(merged *NotificationConfig, file *NotificationConfigFile) {
	mergeBool(&merged.Enabled, file.Enabled)
	mergeString(&merged.Tool, file.Tool)
	if file.Timeout != nil && *file.Timeout > 0 {
		merged.Timeout = *file.Timeout
	}
	mergeString(&merged.Urgency, file.Urgency)
	mergeBool(&merged.ShowInTerminal, file.ShowInTerminal)
}

func mergeString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func mergeBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// mergeList replaces dst whenever the key is present, so an empty list in
// the file clears the default
func mergeList(dst *[]string, src *[]string) {
	if src != nil {
		*dst = append([]string{}, *src...)
	}
}

// InitUserConfig copies the default config into the user config directory
func InitUserConfig() (string, error) {
	userConfigPath := GetUserConfigPath()
	userConfigDir := filepath.Dir(userConfigPath)

	// Refuse to overwrite an existing config
	if _, err := os.Stat(userConfigPath); err == nil {
		return "", fmt.Errorf("config already exists: %s", userConfigPath)
	}

	if err := os.MkdirAll(userConfigDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(userConfigPath, []byte(defaultConfigData), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return userConfigPath, nil
}
