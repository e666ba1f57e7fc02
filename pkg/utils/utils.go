// Package utils provides common helpers for qlaunch: XDG directory lookup,
// path expansion, command and terminal detection.
package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ============================================================================
// Command Utilities
// ============================================================================

// CommandExists checks if a command exists in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// ============================================================================
// File System Utilities
// ============================================================================

// ExpandHomeDir expands ~ in paths
func ExpandHomeDir(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		return filepath.Join(GetHomeDir(), path[1:])
	}
	return path
}

// ExpandPath expands ~ and environment variables in path
func ExpandPath(path string) string {
	return os.ExpandEnv(ExpandHomeDir(path))
}

// ExpandPaths expands every path and drops empty results
func ExpandPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = ExpandPath(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FileExists checks if path exists and is not a directory
func FileExists(path string) bool {
	info, err := os.Stat(ExpandHomeDir(path))
	return err == nil && !info.IsDir()
}

// ============================================================================
// Environment Utilities
// ============================================================================

// GetEnvOrDefault returns environment variable or default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetHomeDir returns home directory
func GetHomeDir() string {
	return os.Getenv("HOME")
}

// GetDataDir returns XDG data directory
func GetDataDir() string {
	if dataDir := os.Getenv("XDG_DATA_HOME"); dataDir != "" {
		return dataDir
	}
	return filepath.Join(GetHomeDir(), ".local", "share")
}

// GetDataDirs returns the XDG system data directories
func GetDataDirs() []string {
	value := GetEnvOrDefault("XDG_DATA_DIRS", "/usr/local/share:/usr/share")
	var dirs []string
	for _, dir := range filepath.SplitList(value) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// IconSearchDirs returns the base directories for icon themes in lookup
// order: ~/.icons, $XDG_DATA_HOME/icons, then each $XDG_DATA_DIRS/icons.
func IconSearchDirs() []string {
	dirs := []string{
		filepath.Join(GetHomeDir(), ".icons"),
		filepath.Join(GetDataDir(), "icons"),
	}
	for _, dir := range GetDataDirs() {
		dirs = append(dirs, filepath.Join(dir, "icons"))
	}
	return dirs
}

// ============================================================================
// Terminal Detection
// ============================================================================

// IsTerminal checks if program is running in a terminal
func IsTerminal() bool {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	if stdinInfo.Mode()&os.ModeCharDevice == 0 {
		return false
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return false
	}
	tty.Close()

	return true
}

// DetectTerminal detects available terminal emulator
func DetectTerminal() string {
	terminals := []string{
		"kitty",
		"alacritty",
		"foot",
		"wezterm",
		"gnome-terminal",
		"konsole",
		"xterm",
	}

	for _, term := range terminals {
		if CommandExists(term) {
			return term
		}
	}

	return ""
}
