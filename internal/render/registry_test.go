package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"testing"

	"tilemap-inspect/internal/maps"
)

// memStore is an in-memory ImageStore keyed by path.
type memStore map[string]image.Image

func (s memStore) Load(path string) (image.Image, error) {
	img, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return img, nil
}

// errStore fails every load with a non-missing error.
type errStore struct{}

func (errStore) Load(path string) (image.Image, error) {
	return nil, errors.New("decode " + path + ": unexpected EOF")
}

// solidImage builds a w x h image filled with c.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func testTilesets() []maps.Tileset {
	return []maps.Tileset{
		{FirstGID: 5, Name: "walls", ImagePath: "walls.png", Columns: 2, TileWidth: 2, TileHeight: 2},
		{FirstGID: 1, Name: "floors", ImagePath: "floors.png", Columns: 2, TileWidth: 2, TileHeight: 2},
	}
}

func testStore() memStore {
	return memStore{
		"floors.png": solidImage(4, 4, color.RGBA{10, 20, 30, 255}), // 4 tiles
		"walls.png":  solidImage(4, 2, color.RGBA{200, 0, 0, 255}),  // 2 tiles
	}
}

func TestResolve(t *testing.T) {
	reg, err := NewTilesetRegistry(testTilesets(), testStore())
	if err != nil {
		t.Fatalf("NewTilesetRegistry: %v", err)
	}

	tests := []struct {
		gid     uint32
		ok      bool
		tileset string
		local   int
		source  image.Rectangle
	}{
		{0, false, "", 0, image.Rectangle{}},
		{1, true, "floors", 0, image.Rect(0, 0, 2, 2)},
		{2, true, "floors", 1, image.Rect(2, 0, 4, 2)},
		{4, true, "floors", 3, image.Rect(2, 2, 4, 4)},
		{5, true, "walls", 0, image.Rect(0, 0, 2, 2)},
		{6, true, "walls", 1, image.Rect(2, 0, 4, 2)},
		{7, false, "", 0, image.Rectangle{}}, // past the walls image
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.gid), func(t *testing.T) {
			ref, ok := reg.Resolve(tt.gid)
			if ok != tt.ok {
				t.Fatalf("Resolve(%d) ok = %v, want %v", tt.gid, ok, tt.ok)
			}
			if !ok {
				return
			}
			if ref.Tileset.Name != tt.tileset || ref.Local != tt.local || ref.Source != tt.source {
				t.Errorf("Resolve(%d) = %s/%d %v, want %s/%d %v",
					tt.gid, ref.Tileset.Name, ref.Local, ref.Source, tt.tileset, tt.local, tt.source)
			}
		})
	}
}

func TestResolveBelowFirstGID(t *testing.T) {
	ts := []maps.Tileset{{FirstGID: 601, Name: "walls", ImagePath: "walls.png", Columns: 2, TileWidth: 2, TileHeight: 2}}
	reg, err := NewTilesetRegistry(ts, testStore())
	if err != nil {
		t.Fatalf("NewTilesetRegistry: %v", err)
	}
	if _, ok := reg.Resolve(600); ok {
		t.Error("gid below the only firstgid should not resolve")
	}
	if _, ok := reg.Resolve(601); !ok {
		t.Error("gid 601 should resolve")
	}
}

func TestTileCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(2, 0, color.RGBA{0, 255, 0, 255}) // top-left pixel of local tile 1
	ts := []maps.Tileset{{FirstGID: 1, Name: "t", ImagePath: "t.png", Columns: 2, TileWidth: 2, TileHeight: 2}}
	reg, err := NewTilesetRegistry(ts, memStore{"t.png": img})
	if err != nil {
		t.Fatalf("NewTilesetRegistry: %v", err)
	}

	tile, ok := reg.Tile(2)
	if !ok {
		t.Fatal("Tile(2) not found")
	}
	b := tile.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("tile size = %v", b)
	}
	if got := color.RGBAModel.Convert(tile.At(b.Min.X, b.Min.Y)); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("tile top-left = %v", got)
	}
}

func TestMissingImageDegrades(t *testing.T) {
	ts := testTilesets()
	ts = append(ts, maps.Tileset{FirstGID: 100, Name: "ghost", ImagePath: "ghost.png", Columns: 4, TileWidth: 2, TileHeight: 2, TileCount: 8})
	reg, err := NewTilesetRegistry(ts, testStore())
	if err != nil {
		t.Fatalf("missing image should not be fatal: %v", err)
	}

	if _, ok := reg.Resolve(103); !ok {
		t.Error("gid in an imageless tileset should still resolve")
	}
	if _, ok := reg.Resolve(108); ok {
		t.Error("gid past tilecount should not resolve")
	}
	if _, ok := reg.Tile(103); ok {
		t.Error("imageless tileset should have no pixels")
	}

	infos := reg.Tilesets()
	if len(infos) != 3 || infos[2].Name != "ghost" || infos[2].Loaded {
		t.Errorf("Tilesets() = %+v", infos)
	}
	if !infos[0].Loaded || infos[0].Capacity != 4 {
		t.Errorf("floors info = %+v", infos[0])
	}
}

func TestShortImageOwnsNoTiles(t *testing.T) {
	ts := []maps.Tileset{{FirstGID: 1, Name: "short", ImagePath: "short.png", Columns: 4, TileWidth: 2, TileHeight: 2}}
	reg, err := NewTilesetRegistry(ts, memStore{"short.png": solidImage(8, 1, red)})
	if err != nil {
		t.Fatalf("NewTilesetRegistry: %v", err)
	}
	for _, gid := range []uint32{1, 4, 50} {
		if _, ok := reg.Resolve(gid); ok {
			t.Errorf("gid %d resolved in a tileset with no full tile row", gid)
		}
	}
	if info := reg.Tilesets()[0]; !info.Loaded || info.Capacity != 0 {
		t.Errorf("info = %+v", info)
	}
}

func TestRejectsZeroColumns(t *testing.T) {
	ts := []maps.Tileset{{FirstGID: 1, Name: "flat", Columns: 0, TileWidth: 2, TileHeight: 2}}
	if _, err := NewTilesetRegistry(ts, memStore{}); err == nil {
		t.Fatal("expected error for a tileset without columns")
	}
}

func TestDecodeFailureIsFatal(t *testing.T) {
	if _, err := NewTilesetRegistry(testTilesets(), errStore{}); err == nil {
		t.Fatal("expected error for undecodable image")
	}
}
