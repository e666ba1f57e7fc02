package launcher

import "github.com/lvim-tech/qlaunch/pkg/config"

type Rofi struct {
	baseLauncher
}

func NewRofi(cfg config.LauncherCommand) *Rofi {
	return &Rofi{baseLauncher: newBase("rofi", cfg)}
}

func (r *Rofi) Show(options []string, prompt string) (string, error) {
	return r.run(options, "-dmenu", "-p", prompt)
}
