package launcher

import "github.com/lvim-tech/qlaunch/pkg/config"

type Fuzzel struct {
	baseLauncher
}

func NewFuzzel(cfg config.LauncherCommand) *Fuzzel {
	return &Fuzzel{baseLauncher: newBase("fuzzel", cfg)}
}

func (f *Fuzzel) Show(options []string, prompt string) (string, error) {
	return f.run(options, "--dmenu", "--prompt", prompt+"> ")
}
