// Package imageio converts between image files and reconstruction grids.
//
// Event-count inputs are 16-bit (or 8-bit) grayscale PNG or TIFF images;
// microscopy acquisitions usually ship as TIFF. Reconstructed outputs are
// written as 16-bit grayscale.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/smlm-data/gsdrecon/internal/recon"
)

// DecodeSource decodes a PNG or TIFF image into an event-count grid.
// Pixel values are interpreted as event counts via 16-bit grayscale
// conversion.
func DecodeSource(r io.Reader) (*recon.SourceGrid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return fromImage(img), nil
}

// ReadSource reads an event-count image from disk. The format is chosen by
// file extension (.png, .tif, .tiff).
func ReadSource(path string) (*recon.SourceGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err = png.Decode(f)
	case ".tif", ".tiff":
		img, err = tiff.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .png, .tif or .tiff)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fromImage(img), nil
}

func fromImage(img image.Image) *recon.SourceGrid {
	b := img.Bounds()
	g := recon.NewSourceGrid(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			g.Set(x-b.Min.X, y-b.Min.Y, uint32(gray.Y))
		}
	}
	return g
}

// ToGray16 renders an output grid as a 16-bit grayscale image.
func ToGray16(out *recon.OutputGrid) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, out.W, out.H))
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			img.SetGray16(x, y, color.Gray16{Y: out.At(x, y)})
		}
	}
	return img
}

// EncodePNG writes an output grid as a 16-bit grayscale PNG.
func EncodePNG(w io.Writer, out *recon.OutputGrid) error {
	return png.Encode(w, ToGray16(out))
}

// WriteOutput writes a reconstructed grid to disk. PNG or TIFF by file
// extension; TIFF uses deflate compression.
func WriteOutput(path string, out *recon.OutputGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		err = png.Encode(f, ToGray16(out))
	case ".tif", ".tiff":
		err = tiff.Encode(f, ToGray16(out), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q (want .png, .tif or .tiff)", ext)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteSourcePNG writes an event-count grid as a 16-bit grayscale PNG.
// Counts above 65535 are clipped. Useful for inspecting rasterized
// localization tables.
func WriteSourcePNG(path string, g *recon.SourceGrid) error {
	img := image.NewGray16(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			if c > 65535 {
				c = 65535
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(c)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
