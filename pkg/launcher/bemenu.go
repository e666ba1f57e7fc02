package launcher

import "github.com/lvim-tech/qlaunch/pkg/config"

type Bemenu struct {
	baseLauncher
}

func NewBemenu(cfg config.LauncherCommand) *Bemenu {
	return &Bemenu{baseLauncher: newBase("bemenu", cfg)}
}

func (b *Bemenu) Show(options []string, prompt string) (string, error) {
	return b.run(options, "-p", prompt)
}
