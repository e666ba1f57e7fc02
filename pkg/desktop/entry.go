// Package desktop reads freedesktop application descriptors (.desktop files)
// into an in-memory catalog.
package desktop

import (
	"errors"
	"fmt"

	"gopkg.in/ini.v1"
)

// Extension is the file extension of application descriptors.
const Extension = ".desktop"

// Section is the group every descriptor must carry.
const Section = "Desktop Entry"

// DefaultFallbackIcon is used for entries without an Icon key.
const DefaultFallbackIcon = "applications-other"

var (
	// ErrNoDesktopSection is returned when a file has no [Desktop Entry] group.
	ErrNoDesktopSection = errors.New("missing [Desktop Entry] section")

	// ErrMissingName is returned when the Name key is absent or empty.
	ErrMissingName = errors.New("missing required key Name")

	// ErrMissingExec is returned when the Exec key is absent or empty.
	// Such entries cannot be launched and are excluded without a diagnostic.
	ErrMissingExec = errors.New("missing key Exec")
)

// Entry is one launchable application.
type Entry struct {
	Name string
	Exec string
	Icon string

	// Path is the descriptor file the entry was read from.
	Path string

	Terminal  bool
	Hidden    bool
	NoDisplay bool
}

// Catalog is the ordered list of entries for one session.
type Catalog []Entry

// Names returns the display names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.Name
	}
	return names
}

var loadOptions = ini.LoadOptions{
	KeyValueDelimiters:      "=",
	IgnoreInlineComment:     true,
	IgnoreContinuation:      true,
	PreserveSurroundedQuote: true,
}

// ParseFile parses a single descriptor. Icon is left empty when the key is
// absent; the loader applies the fallback.
func ParseFile(path string) (Entry, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return Entry{}, fmt.Errorf("parse %s: %w", path, err)
	}

	sec, err := f.GetSection(Section)
	if err != nil {
		return Entry{}, fmt.Errorf("parse %s: %w", path, ErrNoDesktopSection)
	}

	entry := Entry{
		Name:      sec.Key("Name").Value(),
		Exec:      sec.Key("Exec").Value(),
		Icon:      sec.Key("Icon").Value(),
		Path:      path,
		Terminal:  sec.Key("Terminal").MustBool(false),
		Hidden:    sec.Key("Hidden").MustBool(false),
		NoDisplay: sec.Key("NoDisplay").MustBool(false),
	}

	if entry.Name == "" {
		return Entry{}, fmt.Errorf("parse %s: %w", path, ErrMissingName)
	}
	if entry.Exec == "" {
		return Entry{}, fmt.Errorf("parse %s: %w", path, ErrMissingExec)
	}

	return entry, nil
}
