package maps

import "sort"

// LayerStats summarizes one tile layer.
type LayerStats struct {
	Name     string
	Occupied int // nonzero cells
	FlipH    int
	FlipV    int
	FlipD    int
	Distinct int // distinct bare gids
}

// TilesetUsage counts the cells drawn from one tileset.
type TilesetUsage struct {
	Name  string
	Cells int
}

// Stats describes how a map uses its layers and tilesets.
type Stats struct {
	Cells    int // cells per layer
	Layers   []LayerStats
	Tilesets []TilesetUsage // descending by Cells, then by name
	Orphans  int            // gids below every firstgid
}

// Owner returns the index into m.Tilesets of the tileset owning a bare gid,
// or -1 when gid is below every firstgid. Tile counts are not checked.
func (m *Map) Owner(gid uint32) int {
	return sort.Search(len(m.Tilesets), func(i int) bool { return uint32(m.Tilesets[i].FirstGID) > gid }) - 1
}

// Analyze gathers occupancy, flip and tileset usage counts.
func Analyze(m *Map) Stats {
	st := Stats{Cells: m.Width * m.Height}
	perTileset := make([]int, len(m.Tilesets))

	for _, l := range m.Layers {
		ls := LayerStats{Name: l.Name}
		seen := make(map[uint32]struct{})
		for _, raw := range l.Data {
			c := Decode(raw)
			if c.Empty() {
				continue
			}
			ls.Occupied++
			if c.FlipH {
				ls.FlipH++
			}
			if c.FlipV {
				ls.FlipV++
			}
			if c.FlipD {
				ls.FlipD++
			}
			seen[c.GID] = struct{}{}
			if i := m.Owner(c.GID); i >= 0 {
				perTileset[i]++
			} else {
				st.Orphans++
			}
		}
		ls.Distinct = len(seen)
		st.Layers = append(st.Layers, ls)
	}

	for i, ts := range m.Tilesets {
		st.Tilesets = append(st.Tilesets, TilesetUsage{Name: ts.Name, Cells: perTileset[i]})
	}
	sort.SliceStable(st.Tilesets, func(i, j int) bool {
		if st.Tilesets[i].Cells != st.Tilesets[j].Cells {
			return st.Tilesets[i].Cells > st.Tilesets[j].Cells
		}
		return st.Tilesets[i].Name < st.Tilesets[j].Name
	})
	return st
}
