package launcher

import (
	"fmt"
	"slices"

	"github.com/lvim-tech/qlaunch/pkg/config"
)

// Factory builds a launcher from its config table
type Factory func(cfg config.LauncherCommand) Launcher

var registry = map[string]Factory{
	"rofi":   func(cfg config.LauncherCommand) Launcher { return NewRofi(cfg) },
	"dmenu":  func(cfg config.LauncherCommand) Launcher { return NewDmenu(cfg) },
	"fzf":    func(cfg config.LauncherCommand) Launcher { return NewFzf(cfg) },
	"bemenu": func(cfg config.LauncherCommand) Launcher { return NewBemenu(cfg) },
	"fuzzel": func(cfg config.LauncherCommand) Launcher { return NewFuzzel(cfg) },
}

// Priority: rofi > dmenu > fzf > bemenu > fuzzel
var priority = []string{"rofi", "dmenu", "fzf", "bemenu", "fuzzel"}

// Names returns all registered launcher names in priority order
func Names() []string {
	return slices.Clone(priority)
}

// New creates the named launcher. "auto" picks the first installed one.
func New(name string, cfg *config.Config) (Launcher, error) {
	if name == "auto" {
		l := DetectAvailable(cfg)
		if l == nil {
			return nil, ErrNoLauncher
		}
		return l, nil
	}

	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLauncher, name)
	}
	return factory(cfg.GetLauncherConfig(name)), nil
}

// DetectAvailable finds the first installed launcher
func DetectAvailable(cfg *config.Config) Launcher {
	for _, name := range priority {
		l := registry[name](cfg.GetLauncherConfig(name))
		if l.IsAvailable() {
			return l
		}
	}
	return nil
}
