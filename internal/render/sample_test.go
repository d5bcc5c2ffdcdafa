package render

import (
	"image"
	"image/color"
	"testing"

	"tilemap-inspect/internal/maps"
)

func TestSampleTileset(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(0, 0, color.RGBA{100, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{100, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 1, color.RGBA{0, 0, 0, 255})
	// second tile left transparent

	ts := []maps.Tileset{{FirstGID: 601, Name: "walls", ImagePath: "walls.png", Columns: 2, TileWidth: 2, TileHeight: 2}}
	reg, err := NewTilesetRegistry(ts, memStore{"walls.png": img})
	if err != nil {
		t.Fatalf("NewTilesetRegistry: %v", err)
	}

	samples, err := reg.SampleTileset("walls")
	if err != nil {
		t.Fatalf("SampleTileset: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if s := samples[0]; s.GID != 601 || s.Avg != (color.NRGBA{50, 0, 0, 255}) {
		t.Errorf("sample 0 = %+v", s)
	}
	if s := samples[1]; s.GID != 602 || s.Col != 1 || s.Avg.A != 0 {
		t.Errorf("sample 1 = %+v", s)
	}

	if _, err := reg.SampleTileset("floors"); err == nil {
		t.Error("expected error for unknown tileset")
	}
}
