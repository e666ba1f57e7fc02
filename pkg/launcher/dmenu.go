package launcher

import "github.com/lvim-tech/qlaunch/pkg/config"

type Dmenu struct {
	baseLauncher
}

func NewDmenu(cfg config.LauncherCommand) *Dmenu {
	return &Dmenu{baseLauncher: newBase("dmenu", cfg)}
}

func (d *Dmenu) Show(options []string, prompt string) (string, error) {
	return d.run(options, "-p", prompt)
}
