// Package icons turns desktop-entry icon references into fixed-size bitmaps.
package icons

import (
	"image"
	"log/slog"

	"github.com/bluele/gcache"
)

// DefaultSize is the edge length of resolved icons in pixels.
const DefaultSize = 32

// Options configures a Resolver.
type Options struct {
	Size int

	// Fallback is the icon name tried when a reference cannot be resolved.
	Fallback string

	// Theme is the icon theme name. Empty means hicolor.
	Theme string

	// SearchDirs are the base directories containing icon themes.
	SearchDirs []string

	// PixmapDirs hold unthemed icons, searched after all themes.
	PixmapDirs []string

	// CacheSize bounds the number of cached bitmaps. Zero disables caching.
	CacheSize int
}

// Resolver resolves icon references. Resolve never fails.
type Resolver struct {
	size        int
	fallback    string
	theme       *ThemeLookup
	cache       gcache.Cache
	placeholder image.Image
	logger      *slog.Logger
}

// NewResolver builds a resolver and loads the configured theme.
func NewResolver(opts Options, logger *slog.Logger) *Resolver {
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Resolver{
		size:        opts.Size,
		fallback:    opts.Fallback,
		theme:       NewThemeLookup(opts.Theme, opts.SearchDirs, opts.PixmapDirs),
		placeholder: Placeholder(opts.Size),
		logger:      logger.With("component", "icons"),
	}
	if opts.CacheSize > 0 {
		r.cache = gcache.New(opts.CacheSize).LRU().Build()
	}
	return r
}

// Size returns the edge length of resolved bitmaps.
func (r *Resolver) Size() int {
	return r.size
}

// Resolve returns the bitmap for ref. It tries ref as a file path, then as a
// theme icon name, then the fallback name, and finally a drawn placeholder.
func (r *Resolver) Resolve(ref string) image.Image {
	if r.cache != nil {
		if v, err := r.cache.Get(ref); err == nil {
			return v.(image.Image)
		}
	}

	img := r.resolve(ref)

	if r.cache != nil {
		_ = r.cache.Set(ref, img)
	}
	return img
}

func (r *Resolver) resolve(ref string) image.Image {
	if ref != "" {
		if img, err := LoadFile(ref, r.size); err == nil {
			return img
		}
	}

	if img, ok := r.fromTheme(ref); ok {
		return img
	}

	if img, ok := r.fromTheme(r.fallback); ok {
		return img
	}

	r.logger.Debug("no icon found, using placeholder", "icon", ref, "fallback", r.fallback)
	return r.placeholder
}

func (r *Resolver) fromTheme(name string) (image.Image, bool) {
	path, ok := r.theme.Lookup(name, r.size)
	if !ok {
		return nil, false
	}
	img, err := LoadFile(path, r.size)
	if err != nil {
		r.logger.Debug("failed to load theme icon", "icon", name, "path", path, "err", err)
		return nil, false
	}
	return img, true
}
