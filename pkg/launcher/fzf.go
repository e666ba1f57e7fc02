package launcher

import "github.com/lvim-tech/qlaunch/pkg/config"

// Fzf draws on /dev/tty, so it only works when started from a terminal
type Fzf struct {
	baseLauncher
}

func NewFzf(cfg config.LauncherCommand) *Fzf {
	return &Fzf{baseLauncher: newBase("fzf", cfg)}
}

func (f *Fzf) Show(options []string, prompt string) (string, error) {
	return f.run(options, "--prompt", prompt+"> ")
}
