package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"tilemap-inspect/internal/collision"
	"tilemap-inspect/internal/config"
)

const testMapJSON = `{
  "width": 2, "height": 2, "tilewidth": 4, "tileheight": 4,
  "orientation": "orthogonal",
  "tilesets": [
    {"firstgid": 1, "name": "tiles", "image": "tiles.png", "columns": 2, "tilewidth": 4, "tileheight": 4}
  ],
  "layers": [
    {"name": "floor", "type": "tilelayer", "data": [1, 1, 1, 1]},
    {"name": "walls", "type": "tilelayer", "data": [2, 0, 0, 0]},
    {"name": "furniture", "type": "tilelayer", "data": [0, 6891, 0, 0]}
  ]
}`

// writeFixture lays out a map and its tileset image in a temp dir and
// returns the map path.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{90, 60, 30, 255} // floor
			if x >= 4 {
				c = color.RGBA{120, 120, 120, 255} // wall
			}
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, "tiles.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	mapPath := filepath.Join(dir, "room.json")
	if err := os.WriteFile(mapPath, []byte(testMapJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return mapPath
}

func TestRun(t *testing.T) {
	mapPath := writeFixture(t)
	out := filepath.Join(filepath.Dir(mapPath), "collision-map.png")

	res, err := Run(mapPath, out, config.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b := res.Image.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("image size = %v, want 32x32", b)
	}

	// wall, chair 1, and the default override (off this small map) as 2
	if len(res.Annotations) != 3 {
		t.Fatalf("annotations = %+v", res.Annotations)
	}
	if a := res.Annotations[1]; a.Shape != collision.ShapeChair || a.Label != "1" {
		t.Errorf("furniture annotation = %+v", a)
	}
	if res.Summary.Numbered != 2 {
		t.Errorf("Numbered = %d, want 2", res.Summary.Numbered)
	}
	if res.Stats.Unresolved != 1 {
		t.Errorf("Unresolved = %d, want 1 (gid 6891 has no tileset)", res.Stats.Unresolved)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestRunMissingTilesetImage(t *testing.T) {
	mapPath := writeFixture(t)
	if err := os.Remove(filepath.Join(filepath.Dir(mapPath), "tiles.png")); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.png")

	res, err := Run(mapPath, out, config.Default())
	if err != nil {
		t.Fatalf("missing tileset image should degrade, got %v", err)
	}
	if res.Stats.Drawn != 0 {
		t.Errorf("Drawn = %d, want 0", res.Stats.Drawn)
	}
	if len(res.Tilesets) != 1 || res.Tilesets[0].Loaded {
		t.Errorf("tilesets = %+v", res.Tilesets)
	}
}

func TestRunFailureRemovesStaleOutput(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(mapPath, []byte(`{"width": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "collision-map.png")
	if err := os.WriteFile(out, []byte("old image"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(mapPath, out, config.Default()); err == nil {
		t.Fatal("expected error for malformed map")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("stale output should be removed after a failed run")
	}
}

func TestBuildRejectsBadScale(t *testing.T) {
	mapPath := writeFixture(t)
	cfg := config.Default()
	cfg.Scale = 0
	if _, err := Run(mapPath, filepath.Join(t.TempDir(), "x.png"), cfg); err == nil {
		t.Fatal("expected error for scale 0")
	}
}
