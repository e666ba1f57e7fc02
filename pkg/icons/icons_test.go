package icons

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

const hicolorIndex = `[Icon Theme]
Name=Hicolor
Directories=16x16/apps,48x48/apps,scalable/apps

[16x16/apps]
Size=16
Type=Fixed

[48x48/apps]
Size=48
Type=Threshold

[scalable/apps]
Size=128
MinSize=64
MaxSize=256
Type=Scalable
`

func writePNG(t *testing.T, path string, size int, c color.Color) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeIndex(t *testing.T, base, theme, content string) {
	t.Helper()
	dir := filepath.Join(base, theme)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.theme"), []byte(content), 0o644))
}

func assertColor(t *testing.T, want color.RGBA, img image.Image) {
	t.Helper()
	got := Average(img)
	assert.InDelta(t, want.R, got.R, 2, "red channel")
	assert.InDelta(t, want.G, got.G, 2, "green channel")
	assert.InDelta(t, want.B, got.B, 2, "blue channel")
}

func assertSize(t *testing.T, size int, img image.Image) {
	t.Helper()
	assert.Equal(t, size, img.Bounds().Dx())
	assert.Equal(t, size, img.Bounds().Dy())
}

func TestThemeLookupPrefersMatchingDirectory(t *testing.T) {
	base := t.TempDir()
	writeIndex(t, base, "hicolor", hicolorIndex)
	writePNG(t, filepath.Join(base, "hicolor/16x16/apps/alpha.png"), 16, red)
	writePNG(t, filepath.Join(base, "hicolor/48x48/apps/alpha.png"), 48, blue)

	lookup := NewThemeLookup("", []string{base}, nil)

	path, ok := lookup.Lookup("alpha", 16)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor/16x16/apps/alpha.png"), path)

	path, ok = lookup.Lookup("alpha", 47)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor/48x48/apps/alpha.png"), path)

	// No directory matches 40; 48 (distance 8) is closer than 16 (distance 24).
	path, ok = lookup.Lookup("alpha", 40)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor/48x48/apps/alpha.png"), path)

	_, ok = lookup.Lookup("missing", 16)
	assert.False(t, ok)
}

func TestThemeLookupInheritance(t *testing.T) {
	base := t.TempDir()
	writeIndex(t, base, "hicolor", hicolorIndex)
	writeIndex(t, base, "custom", "[Icon Theme]\nName=Custom\nInherits=loop,hicolor\nDirectories=32x32/apps\n\n[32x32/apps]\nSize=32\nType=Fixed\n")
	writeIndex(t, base, "loop", "[Icon Theme]\nName=Loop\nInherits=custom\nDirectories=\n")
	writePNG(t, filepath.Join(base, "custom/32x32/apps/own.png"), 32, red)
	writePNG(t, filepath.Join(base, "hicolor/48x48/apps/inherited.png"), 48, blue)

	lookup := NewThemeLookup("custom", []string{base}, nil)

	path, ok := lookup.Lookup("own", 32)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "custom/32x32/apps/own.png"), path)

	path, ok = lookup.Lookup("inherited", 32)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "hicolor/48x48/apps/inherited.png"), path)
}

func TestThemeLookupMissingThemeFallsBackToHicolorAndPixmaps(t *testing.T) {
	base := t.TempDir()
	pixmaps := t.TempDir()
	writeIndex(t, base, "hicolor", hicolorIndex)
	writePNG(t, filepath.Join(base, "hicolor/16x16/apps/themed.png"), 16, red)
	writePNG(t, filepath.Join(pixmaps, "legacy.png"), 24, green)

	lookup := NewThemeLookup("does-not-exist", []string{base}, []string{pixmaps})

	_, ok := lookup.Lookup("themed", 32)
	assert.True(t, ok)

	path, ok := lookup.Lookup("legacy", 32)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(pixmaps, "legacy.png"), path)

	_, ok = lookup.Lookup("../legacy", 32)
	assert.False(t, ok)
}

func TestResolveFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writePNG(t, path, 64, red)

	r := NewResolver(Options{}, nil)
	img := r.Resolve(path)
	assertSize(t, DefaultSize, img)
	assertColor(t, red, img)
}

func TestResolveThemeName(t *testing.T) {
	base := t.TempDir()
	writeIndex(t, base, "hicolor", hicolorIndex)
	writePNG(t, filepath.Join(base, "hicolor/48x48/apps/app-blue.png"), 48, blue)

	r := NewResolver(Options{SearchDirs: []string{base}}, nil)
	img := r.Resolve("app-blue")
	assertSize(t, DefaultSize, img)
	assertColor(t, blue, img)
}

func TestResolveFallsBackToFallbackName(t *testing.T) {
	base := t.TempDir()
	writeIndex(t, base, "hicolor", hicolorIndex)
	writePNG(t, filepath.Join(base, "hicolor/16x16/apps/applications-other.png"), 16, green)

	r := NewResolver(Options{Fallback: "applications-other", SearchDirs: []string{base}}, nil)
	img := r.Resolve("/nonexistent/path.png")
	assertSize(t, DefaultSize, img)
	assertColor(t, green, img)
}

func TestResolveExhaustedReturnsPlaceholder(t *testing.T) {
	r := NewResolver(Options{Fallback: "applications-other", SearchDirs: []string{t.TempDir()}}, nil)
	img := r.Resolve("/nonexistent/path.png")
	require.NotNil(t, img)
	assertSize(t, DefaultSize, img)
	assert.Equal(t, Average(Placeholder(DefaultSize)), Average(img))
}

func TestResolveUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	r := NewResolver(Options{Size: 24}, nil)
	img := r.Resolve(path)
	assertSize(t, 24, img)
}

func TestResolveCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	writePNG(t, path, 32, red)

	cached := NewResolver(Options{CacheSize: 8}, nil)
	first := cached.Resolve(path)
	require.NoError(t, os.Remove(path))
	assertColor(t, red, cached.Resolve(path))
	assert.Same(t, first, cached.Resolve(path))

	uncached := NewResolver(Options{}, nil)
	assert.Equal(t, Average(Placeholder(DefaultSize)), Average(uncached.Resolve(path)))
}

func TestScaleKeepsExactSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	assert.Same(t, img, Scale(img, 32).(*image.RGBA))
	assertSize(t, 32, Scale(image.NewRGBA(image.Rect(0, 0, 100, 50)), 32))
}

func TestAverageTransparent(t *testing.T) {
	assert.Equal(t, color.RGBA{}, Average(image.NewRGBA(image.Rect(0, 0, 4, 4))))
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, SavePNG(path, Placeholder(16)))

	img, err := LoadFile(path, 16)
	require.NoError(t, err)
	assertSize(t, 16, img)
}
