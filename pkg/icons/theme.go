package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/lvim-tech/qlaunch/pkg/utils"
)

// https://specifications.freedesktop.org/icon-theme-spec/latest/

const defaultTheme = "hicolor"

// Only raster formats we can decode are looked up.
var themeExtensions = []string{".png"}

type dirType string

const (
	dirFixed     dirType = "Fixed"
	dirScalable  dirType = "Scalable"
	dirThreshold dirType = "Threshold"
)

type themeDir struct {
	path      string
	size      int
	minSize   int
	maxSize   int
	threshold int
	kind      dirType
}

func (d themeDir) matchesSize(size int) bool {
	switch d.kind {
	case dirFixed:
		return d.size == size
	case dirScalable:
		return d.minSize <= size && size <= d.maxSize
	default:
		return d.size-d.threshold <= size && size <= d.size+d.threshold
	}
}

func (d themeDir) sizeDistance(size int) int {
	switch d.kind {
	case dirFixed:
		return abs(d.size - size)
	case dirScalable:
		if size < d.minSize {
			return d.minSize - size
		}
		if size > d.maxSize {
			return size - d.maxSize
		}
		return 0
	default:
		if size < d.size-d.threshold {
			return d.minSize - size
		}
		if size > d.size+d.threshold {
			return size - d.maxSize
		}
		return 0
	}
}

// Theme is one parsed icon theme with its inheritance chain resolved.
type Theme struct {
	Name    string
	bases   []string
	dirs    []themeDir
	parents []*Theme
}

// ThemeLookup resolves symbolic icon names to files.
type ThemeLookup struct {
	chain      []*Theme
	pixmapDirs []string
}

// NewThemeLookup loads the named theme from the base directories. A theme
// that cannot be found is not an error: lookups then use hicolor and the
// pixmap directories only.
func NewThemeLookup(name string, baseDirs, pixmapDirs []string) *ThemeLookup {
	if name == "" {
		name = defaultTheme
	}

	lookup := &ThemeLookup{pixmapDirs: pixmapDirs}
	seen := make(map[string]bool)

	if theme, err := loadTheme(name, baseDirs, seen); err == nil {
		lookup.chain = append(lookup.chain, theme)
	}
	if !seen[defaultTheme] {
		if theme, err := loadTheme(defaultTheme, baseDirs, seen); err == nil {
			lookup.chain = append(lookup.chain, theme)
		}
	}
	return lookup
}

func loadTheme(name string, baseDirs []string, seen map[string]bool) (*Theme, error) {
	seen[name] = true

	var (
		index *ini.File
		bases []string
	)
	for _, base := range baseDirs {
		themeDir := filepath.Join(base, name)
		if info, err := os.Stat(themeDir); err != nil || !info.IsDir() {
			continue
		}
		bases = append(bases, base)
		if index != nil {
			continue
		}
		f, err := ini.LoadSources(ini.LoadOptions{KeyValueDelimiters: "=", IgnoreInlineComment: true},
			filepath.Join(themeDir, "index.theme"))
		if err == nil {
			index = f
		}
	}
	if index == nil {
		return nil, fmt.Errorf("icon theme %s not found", name)
	}

	sec, err := index.GetSection("Icon Theme")
	if err != nil {
		return nil, fmt.Errorf("icon theme %s: %w", name, err)
	}

	theme := &Theme{Name: name, bases: bases}
	for _, dir := range splitList(sec.Key("Directories").String()) {
		dsec, err := index.GetSection(dir)
		if err != nil {
			continue
		}
		if dsec.Key("Scale").MustInt(1) != 1 {
			continue
		}
		size := dsec.Key("Size").MustInt(0)
		if size <= 0 {
			continue
		}
		theme.dirs = append(theme.dirs, themeDir{
			path:      dir,
			size:      size,
			minSize:   dsec.Key("MinSize").MustInt(size),
			maxSize:   dsec.Key("MaxSize").MustInt(size),
			threshold: dsec.Key("Threshold").MustInt(2),
			kind:      dirType(dsec.Key("Type").MustString(string(dirThreshold))),
		})
	}

	for _, parent := range splitList(sec.Key("Inherits").String()) {
		if seen[parent] {
			continue
		}
		if p, err := loadTheme(parent, baseDirs, seen); err == nil {
			theme.parents = append(theme.parents, p)
		}
	}

	return theme, nil
}

// Lookup returns the file that best represents name at the given size.
func (l *ThemeLookup) Lookup(name string, size int) (string, bool) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", false
	}
	for _, theme := range l.chain {
		if path, ok := theme.find(name, size); ok {
			return path, true
		}
	}
	for _, dir := range l.pixmapDirs {
		for _, ext := range themeExtensions {
			path := filepath.Join(dir, name+ext)
			if utils.FileExists(path) {
				return path, true
			}
		}
	}
	return "", false
}

func (t *Theme) find(name string, size int) (string, bool) {
	if path, ok := t.lookup(name, size); ok {
		return path, true
	}
	for _, parent := range t.parents {
		if path, ok := parent.find(name, size); ok {
			return path, true
		}
	}
	return "", false
}

func (t *Theme) lookup(name string, size int) (string, bool) {
	for _, dir := range t.dirs {
		if !dir.matchesSize(size) {
			continue
		}
		if path, ok := t.locate(dir, name); ok {
			return path, true
		}
	}

	var (
		closest     string
		minDistance = int(^uint(0) >> 1)
	)
	for _, dir := range t.dirs {
		distance := dir.sizeDistance(size)
		if distance >= minDistance {
			continue
		}
		if path, ok := t.locate(dir, name); ok {
			closest = path
			minDistance = distance
		}
	}
	return closest, closest != ""
}

func (t *Theme) locate(dir themeDir, name string) (string, bool) {
	for _, base := range t.bases {
		for _, ext := range themeExtensions {
			path := filepath.Join(base, t.Name, dir.path, name+ext)
			if utils.FileExists(path) {
				return path, true
			}
		}
	}
	return "", false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
