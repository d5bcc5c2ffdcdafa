package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"tilemap-inspect/internal/collision"
)

func newTestOverlay(t *testing.T) *Overlay {
	t.Helper()
	text, err := NewTextRenderer("", DefaultLabelSize, DefaultSmallSize)
	if err != nil {
		t.Fatalf("NewTextRenderer: %v", err)
	}
	return &Overlay{Style: DefaultOverlayStyle(), Text: text, TileW: 32, TileH: 32, Scale: 4}
}

func blankCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(DefaultBackground), image.Point{}, draw.Src)
	return img
}

func TestCellRect(t *testing.T) {
	o := newTestOverlay(t)
	tests := []struct {
		name string
		a    collision.Annotation
		want image.Rectangle
	}{
		{"full", collision.Annotation{Shape: collision.ShapeFull, Marker: collision.MarkerFurniture}, image.Rect(3, 3, 125, 125)},
		{"bottom", collision.Annotation{Shape: collision.ShapeBottom, Marker: collision.MarkerFurniture}, image.Rect(3, 64, 125, 125)},
		{"chair", collision.Annotation{Shape: collision.ShapeChair, Marker: collision.MarkerFurniture}, image.Rect(32, 32, 97, 97)},
		{"strip", collision.Annotation{Shape: collision.ShapeFull, Marker: collision.MarkerGlassStrip}, image.Rect(3, 95, 125, 125)},
		{"offset cell", collision.Annotation{Row: 1, Col: 2, Shape: collision.ShapeFull, Marker: collision.MarkerWall}, image.Rect(259, 131, 381, 253)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.CellRect(tt.a); got != tt.want {
				t.Errorf("CellRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderOutline(t *testing.T) {
	o := newTestOverlay(t)
	o.Style.Colors["full"] = color.NRGBA{255, 0, 0, 255}
	dst := blankCanvas(256, 256)

	anns := []collision.Annotation{{Row: 0, Col: 0, Shape: collision.ShapeFull, Marker: collision.MarkerOverride}}
	if err := o.Render(dst, anns); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if got := dst.RGBAAt(4, 60); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("left edge pixel = %v, want red", got)
	}
	if got := dst.RGBAAt(2, 60); got != DefaultBackground {
		t.Errorf("pixel outside the inset = %v, want background", got)
	}
	if got := dst.RGBAAt(64, 64); got != DefaultBackground {
		t.Errorf("tile center = %v, want background (no label)", got)
	}
}

func TestRenderLabel(t *testing.T) {
	o := newTestOverlay(t)
	dst := blankCanvas(256, 256)

	anns := []collision.Annotation{{Row: 0, Col: 0, Shape: collision.ShapeChair, Marker: collision.MarkerFurniture, Label: "12"}}
	if err := o.Render(dst, anns); err != nil {
		t.Fatalf("Render: %v", err)
	}

	bright := 0
	for y := 40; y < 88; y++ {
		for x := 40; x < 88; x++ {
			c := dst.RGBAAt(x, y)
			if c.R > 150 && c.G > 150 && c.B > 150 {
				bright++
			}
		}
	}
	if bright == 0 {
		t.Error("no label pixels near the tile center")
	}
}

func TestRenderLegendBar(t *testing.T) {
	o := newTestOverlay(t)
	dst := blankCanvas(256, 256)
	if err := o.Render(dst, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := dst.RGBAAt(250, 250); got.R >= DefaultBackground.R {
		t.Errorf("legend bar pixel = %v, want darker than background", got)
	}
	if got := dst.RGBAAt(250, 200); got != DefaultBackground {
		t.Errorf("pixel above the bar = %v, want background", got)
	}
}

func TestMeasureEmptyLabel(t *testing.T) {
	text, err := NewTextRenderer("", DefaultLabelSize, DefaultSmallSize)
	if err != nil {
		t.Fatalf("NewTextRenderer: %v", err)
	}
	if _, err := Measure(text.Label, ""); err == nil {
		t.Error("expected error for zero-width label")
	}
	r, err := Measure(text.Label, "7")
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if r.Dx() <= 0 || r.Dy() <= 0 {
		t.Errorf("Measure(7) = %v", r)
	}
}

func TestNewTextRendererBadFont(t *testing.T) {
	if _, err := NewTextRenderer(t.TempDir()+"/missing.ttf", 16, 11); err == nil {
		t.Error("expected error for missing font file")
	}
	if _, err := NewTextRenderer("", 0, 11); err == nil {
		t.Error("expected error for zero label size")
	}
}

func TestOverlayStyleValidate(t *testing.T) {
	s := DefaultOverlayStyle()
	if err := s.Validate(); err != nil {
		t.Fatalf("default style invalid: %v", err)
	}
	delete(s.Colors, "door")
	if err := s.Validate(); err == nil {
		t.Error("expected error for missing door color")
	}
}
