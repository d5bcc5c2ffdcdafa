package render

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"sort"

	"github.com/golang/glog"

	"tilemap-inspect/internal/maps"
)

// TileRef locates a global tile id inside its tileset.
type TileRef struct {
	Tileset *maps.Tileset
	Local   int // 0-based index within the tileset
	Col     int
	Row     int
	Source  image.Rectangle // pixel rectangle in the tileset image
}

// tilesetEntry is one registered tileset and its decoded image.
type tilesetEntry struct {
	ts       maps.Tileset
	img      *image.RGBA // nil when the image is unavailable
	capacity int         // tiles owned
	bounded  bool        // capacity is known; otherwise the range is open
}

// TilesetRegistry resolves global tile ids to tileset pixels. It owns the
// decoded tileset images for the lifetime of a run.
type TilesetRegistry struct {
	entries []tilesetEntry
	firsts  []uint32 // ascending FirstGID, parallel to entries
}

// NewTilesetRegistry loads every tileset image through store. A tileset
// whose image is missing stays registered but draws nothing; any other load
// failure is returned.
func NewTilesetRegistry(tilesets []maps.Tileset, store ImageStore) (*TilesetRegistry, error) {
	reg := &TilesetRegistry{}

	sorted := make([]maps.Tileset, len(tilesets))
	copy(sorted, tilesets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].FirstGID < sorted[j].FirstGID })

	for _, ts := range sorted {
		if ts.Columns <= 0 || ts.TileWidth <= 0 || ts.TileHeight <= 0 {
			return nil, fmt.Errorf("tileset %q: columns and tile size must be positive", ts.Name)
		}
		e := tilesetEntry{ts: ts, capacity: ts.TileCount, bounded: ts.TileCount > 0}

		path := ts.ImagePath
		if path == "" {
			path = ts.Image
		}
		if path == "" {
			glog.Warningf("tileset %q has no image, its tiles will be blank", ts.Name)
		} else {
			img, err := store.Load(path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				glog.Warningf("tileset %q: image %s not found, its tiles will be blank", ts.Name, path)
			case err != nil:
				return nil, fmt.Errorf("tileset %q: %w", ts.Name, err)
			default:
				e.img = toRGBA(img)
				rows := e.img.Bounds().Dy() / ts.TileHeight
				e.capacity = ts.Columns * rows
				e.bounded = true
				if e.capacity == 0 {
					glog.Warningf("tileset %q: image %s is shorter than one tile", ts.Name, path)
				}
				glog.V(1).Infof("tileset %q: firstgid %d, %d tiles from %s", ts.Name, ts.FirstGID, e.capacity, path)
			}
		}

		reg.entries = append(reg.entries, e)
		reg.firsts = append(reg.firsts, uint32(ts.FirstGID))
	}

	return reg, nil
}

// lookup returns the index of the tileset owning gid: the last one whose
// FirstGID is <= gid.
func (reg *TilesetRegistry) lookup(gid uint32) int {
	return sort.Search(len(reg.firsts), func(i int) bool { return reg.firsts[i] > gid }) - 1
}

// Resolve maps a bare global id to its tileset and local coordinates.
func (reg *TilesetRegistry) Resolve(gid uint32) (TileRef, bool) {
	if gid == 0 {
		return TileRef{}, false
	}
	idx := reg.lookup(gid)
	if idx < 0 {
		return TileRef{}, false
	}
	e := &reg.entries[idx]
	local := int(gid - reg.firsts[idx])
	if e.bounded && local >= e.capacity {
		return TileRef{}, false
	}

	ts := &e.ts
	col := local % ts.Columns
	row := local / ts.Columns
	x, y := col*ts.TileWidth, row*ts.TileHeight
	return TileRef{
		Tileset: ts,
		Local:   local,
		Col:     col,
		Row:     row,
		Source:  image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight),
	}, true
}

// Tile returns the pixels of a bare global id. It reports false when the id
// is unresolvable or its tileset has no image.
func (reg *TilesetRegistry) Tile(gid uint32) (image.Image, bool) {
	ref, ok := reg.Resolve(gid)
	if !ok {
		return nil, false
	}
	e := &reg.entries[reg.lookup(gid)]
	if e.img == nil {
		return nil, false
	}
	if !ref.Source.In(e.img.Bounds()) {
		return nil, false
	}
	return e.img.SubImage(ref.Source), true
}

// TilesetInfo describes a registered tileset for reporting.
type TilesetInfo struct {
	Name     string
	FirstGID int
	Capacity int
	Loaded   bool
	Image    string
}

// Tilesets lists the registered tilesets in ascending FirstGID order.
func (reg *TilesetRegistry) Tilesets() []TilesetInfo {
	out := make([]TilesetInfo, len(reg.entries))
	for i, e := range reg.entries {
		out[i] = TilesetInfo{
			Name:     e.ts.Name,
			FirstGID: e.ts.FirstGID,
			Capacity: e.capacity,
			Loaded:   e.img != nil,
			Image:    e.ts.ImagePath,
		}
	}
	return out
}

// Image returns the decoded image of the named tileset.
func (reg *TilesetRegistry) Image(name string) (*image.RGBA, bool) {
	for _, e := range reg.entries {
		if e.ts.Name == name {
			return e.img, e.img != nil
		}
	}
	return nil, false
}
