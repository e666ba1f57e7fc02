// Package utils provides notification utilities for qlaunch.
// Supports configurable notification behavior via NotificationConfig.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/lvim-tech/qlaunch/pkg/config"
)

// startCommand starts a notification process without waiting for it
var startCommand = func(cmd *exec.Cmd) error {
	return cmd.Start()
}

// ShowErrorNotificationWithConfig sends an error notification using the provided config
func ShowErrorNotificationWithConfig(cfg *config.NotificationConfig, title, message string) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	// If in terminal and ShowInTerminal is enabled, print to stderr
	if cfg.ShowInTerminal && IsTerminal() {
		fmt.Fprintf(os.Stderr, "[ERROR] [%s] %s\n", title, message)
		return
	}

	sendNotification(resolveTool(cfg.Tool), title, message, cfg.Timeout, cfg.Urgency, "critical")
}

// ============================================================================
// Internal Helper Functions
// ============================================================================

// resolveTool picks the configured tool or detects one
func resolveTool(tool string) string {
	if tool == "" || tool == "auto" {
		return detectNotificationTool()
	}
	return tool
}

// detectNotificationTool detects which notification tool is available
func detectNotificationTool() string {
	if CommandExists("dunstify") {
		return "dunstify"
	}
	if CommandExists("notify-send") {
		return "notify-send"
	}
	return ""
}

// sendNotification sends a notification using the specified tool
func sendNotification(tool, title, message string, timeout int, urgency, fallbackUrgency string) {
	switch tool {
	case "dunstify", "notify-send":
	default:
		return
	}

	// Use fallback urgency if urgency is not set
	if urgency == "" {
		urgency = fallbackUrgency
	}

	// Default timeout
	if timeout <= 0 {
		timeout = 5000
	}

	cmd := exec.Command(tool,
		"-u", urgency,
		"-t", strconv.Itoa(timeout),
		title,
		message)
	cmd.Env = os.Environ()
	_ = startCommand(cmd)
}
