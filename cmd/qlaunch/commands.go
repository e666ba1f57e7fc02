package main

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/lvim-tech/qlaunch/pkg/config"
	"github.com/lvim-tech/qlaunch/pkg/icons"
	"github.com/lvim-tech/qlaunch/pkg/query"
)

const nameColumn = 32

func newListCmd(opts *options) *cobra.Command {
	var (
		diagnostics bool
		namesOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List applications, optionally only those whose name starts with query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.closer.Close()

			catalog, loader, err := e.loadCatalog()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				catalog = query.Filter(catalog, args[0])
			}

			out := cmd.OutOrStdout()
			if namesOnly {
				for _, name := range catalog.Names() {
					fmt.Fprintln(out, name)
				}
				catalog = nil
			}
			for _, entry := range catalog {
				fmt.Fprintf(out, "%s %s\n", runewidth.FillRight(runewidth.Truncate(entry.Name, nameColumn, "…"), nameColumn), entry.Exec)
			}

			if diagnostics {
				if err := loader.Diagnostics(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&namesOnly, "names", "n", false, "print only application names")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "print the descriptor files that could not be loaded")
	return cmd
}

func newIconCmd(opts *options) *cobra.Command {
	var (
		output string
		size   int
	)

	cmd := &cobra.Command{
		Use:   "icon <path-or-name>",
		Short: "Resolve an icon reference and write it as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.closer.Close()

			iconOpts := e.iconOptions()
			if size > 0 {
				iconOpts.Size = size
			}
			resolver := icons.NewResolver(iconOpts, e.logger)
			img := resolver.Resolve(args[0])

			if err := icons.SavePNG(output, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Icon written to: %s (%dx%d)\n", output, resolver.Size(), resolver.Size())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "icon.png", "output PNG file")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "icon size in pixels (default from config)")
	return cmd
}

var errNoMatch = errors.New("no application matches")

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <query>",
		Short: "Launch the first application whose name starts with query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup()
			if err != nil {
				return err
			}
			defer e.closer.Close()

			catalog, _, err := e.loadCatalog()
			if err != nil {
				return err
			}
			entry, ok := query.First(catalog, args[0])
			if !ok {
				return fmt.Errorf("%w %q", errNoMatch, args[0])
			}
			return e.newRunner().Launch(entry)
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config to the user config directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.InitUserConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config created at: %s\n", path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qlaunch version %s\n", version)
		},
	}
}
