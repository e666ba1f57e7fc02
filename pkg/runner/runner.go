// Package runner turns a desktop entry into an argument vector and hands the
// process over to it.
package runner

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"golang.org/x/sys/unix"

	"github.com/lvim-tech/qlaunch/pkg/desktop"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

var (
	// ErrTokenize is returned when a command line cannot be split into words.
	ErrTokenize = errors.New("failed to tokenize command")

	// ErrEmptyCommand is returned when a command line holds no words.
	ErrEmptyCommand = errors.New("empty command")

	// ErrNoTerminal is returned for Terminal=true entries when no terminal
	// emulator is configured or installed.
	ErrNoTerminal = errors.New("no terminal emulator found")

	// ErrExec is returned when the target program cannot be executed.
	ErrExec = errors.New("failed to execute command")
)

// Command is a resolved program ready for Exec.
type Command struct {
	// Path is the executable, argv[0] resolved through PATH.
	Path string
	Argv []string
}

// String renders the argument vector for messages.
func (c Command) String() string {
	return strings.Join(c.Argv, " ")
}

// Runner prepares and executes desktop entries.
type Runner struct {
	terminal string
	logger   *slog.Logger

	lookPath func(string) (string, error)
	exec     func(argv0 string, argv []string, envv []string) error
}

// New creates a runner. terminal is the command prefix used for Terminal=true
// entries, e.g. "foot" or "alacritty -e"; empty means auto-detect.
func New(terminal string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		terminal: terminal,
		logger:   logger.With("component", "runner"),
		lookPath: exec.LookPath,
		exec:     unix.Exec,
	}
}

// Tokenize splits a command line using shell word rules. Quotes and
// backslash escapes are honoured; variables and globs are not expanded.
func Tokenize(cmdline string) ([]string, error) {
	args, err := shlex.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrTokenize, cmdline, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w %q: %w", ErrTokenize, cmdline, ErrEmptyCommand)
	}
	return args, nil
}

// Argv tokenizes the entry's Exec line, expands its field codes and, for
// terminal applications, prefixes the terminal emulator.
func (r *Runner) Argv(entry desktop.Entry) ([]string, error) {
	args, err := Tokenize(entry.Exec)
	if err != nil {
		return nil, err
	}

	args = ExpandFieldCodes(args, entry)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w %q: %w", ErrTokenize, entry.Exec, ErrEmptyCommand)
	}

	if entry.Terminal {
		prefix, err := r.terminalPrefix()
		if err != nil {
			return nil, err
		}
		args = append(prefix, args...)
	}

	return args, nil
}

func (r *Runner) terminalPrefix() ([]string, error) {
	if r.terminal != "" {
		prefix, err := Tokenize(r.terminal)
		if err != nil {
			return nil, fmt.Errorf("invalid terminal setting: %w", err)
		}
		if len(prefix) == 1 {
			prefix = append(prefix, "-e")
		}
		return prefix, nil
	}

	term := utils.DetectTerminal()
	if term == "" {
		return nil, ErrNoTerminal
	}
	return []string{term, "-e"}, nil
}

// Prepare builds the command for entry and resolves its executable. Nothing
// is executed, so failures leave the caller free to carry on.
func (r *Runner) Prepare(entry desktop.Entry) (Command, error) {
	argv, err := r.Argv(entry)
	if err != nil {
		return Command{}, err
	}

	path, err := r.lookPath(argv[0])
	if err != nil {
		return Command{}, fmt.Errorf("%w %q: %w", ErrExec, argv[0], err)
	}

	return Command{Path: path, Argv: argv}, nil
}

// Exec replaces the current process image with cmd, keeping the environment.
// It returns only if the replacement failed, and then always with an error.
func (r *Runner) Exec(cmd Command) error {
	r.logger.Debug("executing", "path", cmd.Path, "argv", cmd.Argv)

	err := r.exec(cmd.Path, cmd.Argv, os.Environ())
	if err == nil {
		err = errors.New("exec returned without replacing the process")
	}
	return fmt.Errorf("%w %q: %w", ErrExec, cmd.Path, err)
}

// Launch prepares and executes entry. It returns only on failure.
func (r *Runner) Launch(entry desktop.Entry) error {
	cmd, err := r.Prepare(entry)
	if err != nil {
		return err
	}
	return r.Exec(cmd)
}
