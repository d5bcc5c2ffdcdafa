package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"tilemap-inspect/internal/collision"
)

// LegendEntry is one swatch in the legend bar.
type LegendEntry struct {
	Label string
	Style string // key into OverlayStyle.Colors
}

// OverlayStyle holds the colors and dimensions of the diagnostic overlay.
// Dimensions are in output pixels unless noted.
type OverlayStyle struct {
	Colors      map[string]color.NRGBA
	StrokeWidth int
	StripHeight int // native tile pixels, scaled at draw time

	LabelColor   color.NRGBA
	LabelBacking color.NRGBA

	Legend        []LegendEntry
	LegendHeight  int
	LegendBacking color.NRGBA
	LegendSpacing int
	LegendSwatch  int
	LegendStroke  int
	LegendText    color.NRGBA
}

// DefaultOverlayStyle returns the stock palette.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		Colors: map[string]color.NRGBA{
			"wall":        {180, 180, 200, 200},
			"walls3d":     {160, 160, 190, 200},
			"glass_strip": {0, 200, 255, 255},
			"glass_none":  {0, 100, 180, 120},
			"full":        {255, 50, 50, 255},
			"bottom":      {255, 180, 0, 255},
			"chair":       {255, 255, 0, 255},
			"door":        {0, 255, 100, 255},
		},
		StrokeWidth:  3,
		StripHeight:  8,
		LabelColor:   color.NRGBA{255, 255, 255, 255},
		LabelBacking: color.NRGBA{0, 0, 0, 180},
		Legend: []LegendEntry{
			{"Wall", "wall"},
			{"Glass 8px", "glass_strip"},
			{"Full", "full"},
			{"Bottom", "bottom"},
			{"Chair", "chair"},
			{"Door", "door"},
		},
		LegendHeight:  35,
		LegendBacking: color.NRGBA{0, 0, 0, 160},
		LegendSpacing: 110,
		LegendSwatch:  14,
		LegendStroke:  2,
		LegendText:    color.NRGBA{220, 220, 230, 255},
	}
}

// Validate checks that every style the classifier can emit and every legend
// entry has a color.
func (s OverlayStyle) Validate() error {
	if s.StrokeWidth < 1 {
		return fmt.Errorf("stroke width must be at least 1, got %d", s.StrokeWidth)
	}
	keys := []string{"wall", "walls3d", "glass_strip", "glass_none", "full", "bottom", "chair", "door"}
	for _, k := range keys {
		if _, ok := s.Colors[k]; !ok {
			return fmt.Errorf("overlay style has no color for %q", k)
		}
	}
	for _, e := range s.Legend {
		if _, ok := s.Colors[e.Style]; !ok {
			return fmt.Errorf("legend entry %q uses unknown style %q", e.Label, e.Style)
		}
	}
	return nil
}

// Overlay draws collision annotations onto a composited image.
type Overlay struct {
	Style OverlayStyle
	Text  *TextRenderer
	TileW int // native tile size
	TileH int
	Scale int
}

// Render draws each annotation's outline and label, then the legend bar
// along the bottom edge of dst.
func (o *Overlay) Render(dst *image.RGBA, anns []collision.Annotation) error {
	if o.Text == nil {
		return fmt.Errorf("overlay has no text renderer")
	}
	for _, a := range anns {
		if err := o.drawAnnotation(dst, a); err != nil {
			return fmt.Errorf("annotation at (%d,%d): %w", a.Row, a.Col, err)
		}
	}
	return o.drawLegend(dst)
}

// CellRect returns the output-pixel outline rectangle of an annotation.
func (o *Overlay) CellRect(a collision.Annotation) image.Rectangle {
	sw, sh := o.TileW*o.Scale, o.TileH*o.Scale
	x, y := a.Col*sw, a.Row*sh
	bw := o.Style.StrokeWidth

	if a.Marker == collision.MarkerGlassStrip {
		stripH := o.Style.StripHeight * o.Scale
		return image.Rect(x+bw, y+sh-stripH-1, x+sw-bw, y+sh-bw)
	}
	switch a.Shape {
	case collision.ShapeBottom:
		return image.Rect(x+bw, y+sh/2, x+sw-bw, y+sh-bw)
	case collision.ShapeChair:
		cx, cy := x+sw/2, y+sh/2
		s := sw / 4
		return image.Rect(cx-s, cy-s, cx+s+1, cy+s+1)
	case collision.ShapeNone:
		return image.Rectangle{}
	}
	return image.Rect(x+bw, y+bw, x+sw-bw, y+sh-bw)
}

func (o *Overlay) drawAnnotation(dst *image.RGBA, a collision.Annotation) error {
	key := a.StyleKey()
	c, ok := o.Style.Colors[key]
	if !ok {
		return fmt.Errorf("no color for style %q", key)
	}
	strokeRect(dst, o.CellRect(a), o.Style.StrokeWidth, c)

	if a.Label == "" {
		return nil
	}
	ink, err := Measure(o.Text.Label, a.Label)
	if err != nil {
		return err
	}
	sw, sh := o.TileW*o.Scale, o.TileH*o.Scale
	tx := a.Col*sw + (sw-ink.Dx())/2
	ty := a.Row*sh + (sh-ink.Dy())/2

	backing := image.Rect(tx-2, ty-1, tx+ink.Dx()+3, ty+ink.Dy()+2)
	fillRect(dst, backing, o.Style.LabelBacking)
	drawString(dst, o.Text.Label, a.Label, tx-ink.Min.X, ty-ink.Min.Y, o.Style.LabelColor)
	return nil
}

func (o *Overlay) drawLegend(dst *image.RGBA) error {
	b := dst.Bounds()
	fillRect(dst, image.Rect(b.Min.X, b.Max.Y-o.Style.LegendHeight, b.Max.X, b.Max.Y), o.Style.LegendBacking)

	ascent := o.Text.Small.Metrics().Ascent.Ceil()
	ly := b.Max.Y - 30
	lx := b.Min.X + 10
	for _, e := range o.Style.Legend {
		c, ok := o.Style.Colors[e.Style]
		if !ok {
			return fmt.Errorf("legend entry %q: no color for style %q", e.Label, e.Style)
		}
		sq := o.Style.LegendSwatch
		strokeRect(dst, image.Rect(lx, ly, lx+sq+1, ly+sq+1), o.Style.LegendStroke, c)
		drawString(dst, o.Text.Small, e.Label, lx+sq+4, ly+ascent, o.Style.LegendText)
		lx += o.Style.LegendSpacing
	}
	return nil
}

// strokeRect draws an outline of width w inside r.
func strokeRect(dst *image.RGBA, r image.Rectangle, w int, c color.Color) {
	if r.Empty() {
		return
	}
	if 2*w >= r.Dx() || 2*w >= r.Dy() {
		fillRect(dst, r, c)
		return
	}
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w), c)
	fillRect(dst, image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w), c)
}

// fillRect alpha-blends c over r.
func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}
