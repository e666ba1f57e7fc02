package main

import (
	"fmt"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/desktop"
	"github.com/lvim-tech/qlaunch/pkg/launcher"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

type entryLauncher interface {
	Launch(entry desktop.Entry) error
}

// menuOptions builds one label per entry. Names are not unique, so repeats
// get their command appended.
func menuOptions(catalog desktop.Catalog) ([]string, map[string]desktop.Entry) {
	options := make([]string, 0, len(catalog))
	byLabel := make(map[string]desktop.Entry, len(catalog))

	for i, entry := range catalog {
		label := entry.Name
		if _, taken := byLabel[label]; taken {
			label = fmt.Sprintf("%s (%s)", entry.Name, entry.Exec)
		}
		if _, taken := byLabel[label]; taken {
			label = fmt.Sprintf("%s #%d", label, i+1)
		}
		options = append(options, label)
		byLabel[label] = entry
	}

	return options, byLabel
}

// runMenu shows the catalog in a menu program until an entry launches or the
// user cancels. Launch failures are reported as notifications.
func runMenu(l launcher.Launcher, catalog desktop.Catalog, r entryLauncher, notify *config.NotificationConfig) error {
	if len(catalog) == 0 {
		return fmt.Errorf("no applications found")
	}

	options, byLabel := menuOptions(catalog)

	for {
		choice, err := l.Show(options, prompt)
		if err != nil {
			if launcher.IsCancelled(err) {
				return nil
			}
			return err
		}

		entry, ok := byLabel[choice]
		if !ok {
			utils.ShowErrorNotificationWithConfig(notify, "Error", fmt.Sprintf("Unknown application: %s", choice))
			continue
		}

		if err := r.Launch(entry); err != nil {
			utils.ShowErrorNotificationWithConfig(notify, "Error", err.Error())
			continue
		}
		return nil
	}
}
