// Package launcher provides an abstraction layer for external menu programs.
// It supports dmenu, rofi, fzf, bemenu, and fuzzel with a unified interface,
// as an alternative to the built-in terminal UI.
package launcher

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

// Launcher is a menu program that lets the user pick one option
type Launcher interface {
	Name() string
	IsAvailable() bool
	Show(options []string, prompt string) (string, error)
}

// baseLauncher holds what every menu program shares
type baseLauncher struct {
	name    string
	command string
	args    []string
}

func newBase(name string, cfg config.LauncherCommand) baseLauncher {
	command := cfg.Command
	if command == "" {
		command = name
	}
	return baseLauncher{name: name, command: command, args: cfg.Args}
}

// Name returns the launcher name
func (b *baseLauncher) Name() string {
	return b.name
}

// IsAvailable checks if the menu program is installed
func (b *baseLauncher) IsAvailable() bool {
	return utils.CommandExists(b.command)
}

// run feeds options to the menu program and returns the chosen line
func (b *baseLauncher) run(options []string, extra ...string) (string, error) {
	args := append(append([]string{}, b.args...), extra...)

	cmd := exec.Command(b.command, args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && (exitErr.ExitCode() == 1 || exitErr.ExitCode() == 130) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("failed to run %s: %w", b.name, err)
	}

	result, _, _ := strings.Cut(string(output), "\n")
	result = strings.TrimSpace(result)
	if result == "" {
		return "", ErrCancelled
	}

	return result, nil
}
