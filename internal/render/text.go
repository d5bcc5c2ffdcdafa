package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Default text sizes in points at 72 DPI.
const (
	DefaultLabelSize = 16
	DefaultSmallSize = 11
)

// TextRenderer holds the two faces used by the overlay: Label for cell
// numbers and Small for the legend.
type TextRenderer struct {
	Label font.Face
	Small font.Face
}

// NewTextRenderer loads a TrueType or OpenType font. An empty path selects
// the bundled Go Regular font.
func NewTextRenderer(fontPath string, labelSize, smallSize float64) (*TextRenderer, error) {
	data := goregular.TTF
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", fontPath, err)
	}

	newFace := func(size float64) (font.Face, error) {
		if size <= 0 {
			return nil, fmt.Errorf("font size must be positive, got %g", size)
		}
		return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	label, err := newFace(labelSize)
	if err != nil {
		return nil, fmt.Errorf("label face: %w", err)
	}
	small, err := newFace(smallSize)
	if err != nil {
		return nil, fmt.Errorf("small face: %w", err)
	}
	return &TextRenderer{Label: label, Small: small}, nil
}

// Measure returns the ink bounds of s in whole pixels relative to the dot.
// It fails when s has nothing to draw.
func Measure(face font.Face, s string) (image.Rectangle, error) {
	bounds, advance := font.BoundString(face, s)
	if advance <= 0 {
		return image.Rectangle{}, fmt.Errorf("text %q measures zero width", s)
	}
	return image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	), nil
}

// drawString writes s with its dot at (x, y).
func drawString(dst *image.RGBA, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
