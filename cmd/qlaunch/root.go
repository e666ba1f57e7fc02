package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/desktop"
	"github.com/lvim-tech/qlaunch/pkg/icons"
	"github.com/lvim-tech/qlaunch/pkg/launcher"
	"github.com/lvim-tech/qlaunch/pkg/logging"
	"github.com/lvim-tech/qlaunch/pkg/runner"
	"github.com/lvim-tech/qlaunch/pkg/session"
	"github.com/lvim-tech/qlaunch/pkg/tui"
	"github.com/lvim-tech/qlaunch/pkg/utils"
)

const prompt = "Run"

type options struct {
	configPath string
	logLevel   string
	menu       string
}

// env is everything a command needs after config and logging are set up
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "qlaunch",
		Short:         "Desktop application launcher",
		Long:          "qlaunch lists installed applications, filters them as you type and runs the one you pick.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.closer.Close()
			return e.interactive(opts.menu)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/qlaunch/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVarP(&opts.menu, "menu", "m", "",
		fmt.Sprintf("use a menu program instead of the terminal UI (%s, auto)", strings.Join(launcher.Names(), ", ")))

	cmd.AddCommand(
		newListCmd(opts),
		newIconCmd(opts),
		newRunCmd(opts),
		newInitCmd(),
		newVersionCmd(),
	)

	return cmd
}

func (o *options) setup() (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger, closer, err := logging.Setup(level, utils.ExpandPath(cfg.LogFile))
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, closer: closer}, nil
}

func (e *env) newLoader() *desktop.Loader {
	return desktop.NewLoader(desktop.Options{
		FallbackIcon: e.cfg.Catalog.FallbackIcon,
		SkipHidden:   e.cfg.Catalog.SkipHidden,
		SkipMissing:  e.cfg.Catalog.SkipMissingDirs,
	}, e.logger)
}

func (e *env) loadCatalog() (desktop.Catalog, *desktop.Loader, error) {
	loader := e.newLoader()
	catalog, err := loader.LoadDirs(utils.ExpandPaths(e.cfg.Catalog.Dirs)...)
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug("catalog loaded", "entries", len(catalog))
	return catalog, loader, nil
}

func (e *env) iconOptions() icons.Options {
	searchDirs := utils.ExpandPaths(e.cfg.Icons.SearchDirs)
	if len(searchDirs) == 0 {
		searchDirs = utils.IconSearchDirs()
	}
	return icons.Options{
		Size:       e.cfg.Icons.Size,
		Fallback:   e.cfg.Catalog.FallbackIcon,
		Theme:      e.cfg.Icons.Theme,
		SearchDirs: searchDirs,
		PixmapDirs: utils.ExpandPaths(e.cfg.Icons.PixmapDirs),
		CacheSize:  e.cfg.Icons.CacheSize,
	}
}

func (e *env) newRunner() *runner.Runner {
	return runner.New(e.cfg.Terminal, e.logger)
}

// interactive starts the terminal UI or, when ui names a menu program, the
// menu loop
func (e *env) interactive(ui string) error {
	if ui == "" {
		ui = e.cfg.DefaultUI
	}
	if ui == "tui" && !utils.IsTerminal() {
		e.logger.Info("not running in a terminal, falling back to a menu program")
		ui = "auto"
	}

	catalog, _, err := e.loadCatalog()
	if err != nil {
		return err
	}

	if ui == "tui" {
		return e.runTUI(catalog)
	}

	l, err := launcher.New(ui, e.cfg)
	if err != nil {
		return fmt.Errorf("failed to create launcher: %w", err)
	}
	return runMenu(l, catalog, e.newRunner(), &e.cfg.Notifications)
}

func (e *env) runTUI(catalog desktop.Catalog) error {
	r := e.newRunner()
	view := tui.NewApp(prompt, e.logger)
	sess := session.New(catalog, icons.NewResolver(e.iconOptions(), e.logger), r, view, e.logger)

	for {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialise screen: %w", err)
		}

		cmd, err := view.Run(screen, sess)
		screen.Fini()
		if errors.Is(err, tui.ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		e.logger.Debug("launching", "query", view.Input(), "command", cmd.String())

		// Exec only returns on failure; show it and let the user pick again
		sess.Fail(cmd, r.Exec(cmd))
	}
}
