package launcher

import "errors"

var (
	// ErrCancelled is returned when the user presses ESC/Cancel
	ErrCancelled = errors.New("cancelled by user")

	// ErrNoLauncher is returned when no menu program is installed
	ErrNoLauncher = errors.New("no launcher available - please install rofi, dmenu, fzf, bemenu, or fuzzel")

	// ErrUnknownLauncher is returned for names missing from the registry
	ErrUnknownLauncher = errors.New("unknown launcher")
)

// IsCancelled checks if the error comes from a cancelled menu
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
