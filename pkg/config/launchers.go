package config

import (
	"maps"

	"github.com/mitchellh/mapstructure"
)

// LaunchersConfig holds one free-form table per menu program, keyed by name
type LaunchersConfig map[string]map[string]any

// LauncherCommand describes how a menu program is started
type LauncherCommand struct {
	// Command overrides the executable; empty means the launcher name
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// GetLauncherConfig decodes the table for the named launcher. Unknown
// launchers and undecodable tables yield an empty command.
func (c *Config) GetLauncherConfig(name string) LauncherCommand {
	var cmd LauncherCommand

	raw, ok := c.Launchers[name]
	if !ok {
		return cmd
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cmd,
	})
	if err != nil {
		return LauncherCommand{}
	}
	if err := decoder.Decode(raw); err != nil {
		return LauncherCommand{}
	}

	return cmd
}

// mergeLauncherConfigs merges launcher tables; a table in the file replaces
// the default table for that launcher
func mergeLauncherConfigs(defaults, file LaunchersConfig) LaunchersConfig {
	merged := make(LaunchersConfig, len(defaults)+len(file))
	maps.Copy(merged, defaults)
	maps.Copy(merged, file)
	return merged
}
