package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	ico "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var errEmptyImage = errors.New("empty image")

// LoadFile decodes an image file and scales it to size×size.
func LoadFile(path string, size int) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".ico") {
		img, err = ico.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, errEmptyImage)
	}

	return Scale(img, size), nil
}

// Scale returns img resized to exactly size×size.
func Scale(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size && b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Placeholder draws the last-resort icon: a grey rounded tile with a dot.
func Placeholder(size int) image.Image {
	s := float64(size)
	dc := gg.NewContext(size, size)

	dc.DrawRoundedRectangle(s*0.05, s*0.05, s*0.9, s*0.9, s*0.18)
	dc.SetRGB255(0x4c, 0x56, 0x6a)
	dc.Fill()

	dc.DrawCircle(s/2, s/2, s*0.2)
	dc.SetRGB255(0xd8, 0xde, 0xe9)
	dc.Fill()

	return dc.Image()
}

// Average returns the alpha-weighted mean colour of img. Fully transparent
// images yield transparent black.
func Average(img image.Image) color.RGBA {
	var r, g, b, a uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// Premultiplied, so plain sums are already alpha weighted.
			pr, pg, pb, pa := img.At(x, y).RGBA()
			r += uint64(pr)
			g += uint64(pg)
			b += uint64(pb)
			a += uint64(pa)
		}
	}
	if a == 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(r * 0xff / a),
		G: uint8(g * 0xff / a),
		B: uint8(b * 0xff / a),
		A: 0xff,
	}
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
