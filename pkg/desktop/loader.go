package desktop

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// Options controls which entries the loader keeps.
type Options struct {
	// FallbackIcon replaces a missing Icon key. Defaults to DefaultFallbackIcon.
	FallbackIcon string

	// SkipHidden drops entries marked Hidden=true or NoDisplay=true.
	SkipHidden bool

	// SkipMissing makes LoadDirs ignore directories that do not exist.
	SkipMissing bool
}

// Loader scans directories of descriptors. Per-entry failures are logged and
// collected; they never abort a load.
type Loader struct {
	opts   Options
	logger *slog.Logger
	diags  *multierror.Error
}

// NewLoader creates a loader. A nil logger uses slog.Default.
func NewLoader(opts Options, logger *slog.Logger) *Loader {
	if opts.FallbackIcon == "" {
		opts.FallbackIcon = DefaultFallbackIcon
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		opts:   opts,
		logger: logger.With("component", "desktop"),
	}
}

// Load reads every descriptor directly inside dir, in directory order.
// Failing to read dir itself is returned as an error.
func (l *Loader) Load(dir string) (Catalog, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read applications directory %s: %w", dir, err)
	}

	catalog := make(Catalog, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		path := filepath.Join(dir, dirEntry.Name())

		if isDir(dirEntry, path) {
			continue
		}
		if filepath.Ext(path) != Extension {
			continue
		}

		entry, err := ParseFile(path)
		switch {
		case errors.Is(err, ErrMissingExec):
			l.logger.Debug("skipping entry without Exec", "path", path)
			continue
		case err != nil:
			l.logger.Warn("error occurred while parsing desktop entry", "path", path, "err", err)
			l.diags = multierror.Append(l.diags, err)
			continue
		}

		if l.opts.SkipHidden && (entry.Hidden || entry.NoDisplay) {
			continue
		}
		if entry.Icon == "" {
			entry.Icon = l.opts.FallbackIcon
		}

		catalog = append(catalog, entry)
	}

	l.logger.Debug("loaded applications", "dir", dir, "count", len(catalog))
	return catalog, nil
}

// LoadDirs loads several directories and concatenates their catalogs in order.
func (l *Loader) LoadDirs(dirs ...string) (Catalog, error) {
	var catalog Catalog
	for _, dir := range dirs {
		c, err := l.Load(dir)
		if err != nil {
			if l.opts.SkipMissing && errors.Is(err, fs.ErrNotExist) {
				l.logger.Debug("skipping missing applications directory", "dir", dir)
				continue
			}
			return nil, err
		}
		catalog = append(catalog, c...)
	}
	return catalog, nil
}

// Diagnostics returns the parse errors collected so far, or nil.
func (l *Loader) Diagnostics() error {
	return l.diags.ErrorOrNil()
}

// isDir follows symlinks, so a link to a directory is treated as one.
func isDir(dirEntry fs.DirEntry, path string) bool {
	if dirEntry.IsDir() {
		return true
	}
	if dirEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
