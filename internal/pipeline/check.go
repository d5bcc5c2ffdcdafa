package pipeline

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"tilemap-inspect/internal/maps"
	"tilemap-inspect/internal/render"
)

// LayerReport lists the problem gids of one layer.
type LayerReport struct {
	Layer      string
	Unresolved []uint32 // owned by no tileset, or past a tileset's last tile
	Blank      []uint32 // resolvable, but the tileset image is missing
	Cells      int      // cells affected by either list
	BlankCells int      // cells drawing a Blank gid
}

// Report is the outcome of checking a map against its tilesets.
type Report struct {
	Tilesets []render.TilesetInfo
	Layers   []LayerReport // only layers with problems
}

// OK reports whether every tileset loaded and every gid resolved.
func (r *Report) OK() bool {
	if len(r.Layers) > 0 {
		return false
	}
	for _, ts := range r.Tilesets {
		if !ts.Loaded {
			return false
		}
	}
	return true
}

// Check loads the map's tilesets and resolves every nonzero cell. Errors
// are reserved for tilesets that fail to decode; everything else is
// reported.
func Check(m *maps.Map, store render.ImageStore) (*Report, error) {
	reg, err := render.NewTilesetRegistry(m.Tilesets, store)
	if err != nil {
		return nil, fmt.Errorf("load tilesets: %w", err)
	}

	rep := &Report{Tilesets: reg.Tilesets()}
	for _, l := range m.Layers {
		unresolved := mapset.New[uint32]()
		blank := mapset.New[uint32]()
		lr := LayerReport{Layer: l.Name}
		for _, raw := range l.Data {
			c := maps.Decode(raw)
			if c.Empty() {
				continue
			}
			if _, ok := reg.Resolve(c.GID); !ok {
				unresolved.Put(c.GID)
				lr.Cells++
			} else if _, ok := reg.Tile(c.GID); !ok {
				blank.Put(c.GID)
				lr.Cells++
				lr.BlankCells++
			}
		}
		if lr.Cells == 0 {
			continue
		}
		lr.Unresolved = sortedKeys(unresolved)
		lr.Blank = sortedKeys(blank)
		rep.Layers = append(rep.Layers, lr)
	}
	return rep, nil
}

func sortedKeys(s mapset.Set[uint32]) []uint32 {
	var out []uint32
	s.Each(func(gid uint32) { out = append(out, gid) })
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
