package maps

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Tileset describes one tileset referenced by a map.
type Tileset struct {
	FirstGID   int
	Name       string
	Image      string // path as written in the document
	ImagePath  string // Image resolved against the map's directory
	Columns    int
	TileWidth  int
	TileHeight int
	TileCount  int // 0 when the document does not say
}

// Layer is a named grid of raw cell values in row-major order.
type Layer struct {
	Name string
	Data []uint32

	width int
}

// At returns the raw cell value at (row, col).
func (l *Layer) At(row, col int) uint32 {
	return l.Data[row*l.width+col]
}

// Map is a parsed, validated tile map document.
type Map struct {
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	Tilesets   []Tileset // ascending by FirstGID
	Layers     []*Layer  // document order, tile layers only
	Path       string

	byName map[string]*Layer
}

// jsonMap is the on-disk JSON format (Tiled orthogonal map export).
type jsonMap struct {
	Width       *int          `json:"width"`
	Height      *int          `json:"height"`
	TileWidth   int           `json:"tilewidth"`
	TileHeight  int           `json:"tileheight"`
	Orientation string        `json:"orientation,omitempty"`
	Tilesets    []jsonTileset `json:"tilesets"`
	Layers      []jsonLayer   `json:"layers"`
}

type jsonTileset struct {
	FirstGID   int    `json:"firstgid"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Columns    int    `json:"columns"`
	TileWidth  int    `json:"tilewidth"`
	TileHeight int    `json:"tileheight"`
	TileCount  int    `json:"tilecount,omitempty"`
	Source     string `json:"source,omitempty"`
}

type jsonLayer struct {
	Name string   `json:"name"`
	Type string   `json:"type,omitempty"`
	Data []uint32 `json:"data"`
}

// LoadMap reads a JSON map file from disk. Tileset image paths are resolved
// relative to the map file's directory.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	m, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse decodes and validates a map document. dir is used to resolve
// tileset image references.
func Parse(data []byte, dir string) (*Map, error) {
	var jm jsonMap
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, fmt.Errorf("parse map JSON: %w", err)
	}

	if jm.Width == nil {
		return nil, fmt.Errorf("missing required field %q", "width")
	}
	if jm.Height == nil {
		return nil, fmt.Errorf("missing required field %q", "height")
	}
	if jm.Orientation != "" && jm.Orientation != "orthogonal" {
		return nil, fmt.Errorf("orientation %q: only orthogonal maps are supported", jm.Orientation)
	}
	if len(jm.Tilesets) == 0 {
		return nil, fmt.Errorf("missing required field %q", "tilesets")
	}
	if jm.Layers == nil {
		return nil, fmt.Errorf("missing required field %q", "layers")
	}

	tilesets, err := buildTilesets(jm.Tilesets, dir)
	if err != nil {
		return nil, err
	}

	var layers []*Layer
	for i, jl := range jm.Layers {
		if jl.Type != "" && jl.Type != "tilelayer" {
			continue
		}
		if jl.Name == "" {
			return nil, fmt.Errorf("layer %d: missing required field %q", i, "name")
		}
		layers = append(layers, NewLayer(jl.Name, jl.Data))
	}

	return New(*jm.Width, *jm.Height, jm.TileWidth, jm.TileHeight, tilesets, layers)
}

// NewLayer creates a tile layer from raw row-major cell values.
func NewLayer(name string, data []uint32) *Layer {
	return &Layer{Name: name, Data: data}
}

// New assembles a Map from already-decoded parts and validates it.
// A zero tile size falls back to the first tileset's.
func New(width, height, tileW, tileH int, tilesets []Tileset, layers []*Layer) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map size %dx%d: width and height must be positive", width, height)
	}
	if len(tilesets) == 0 {
		return nil, fmt.Errorf("missing required field %q", "tilesets")
	}

	sorted := make([]Tileset, len(tilesets))
	copy(sorted, tilesets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].FirstGID < sorted[j].FirstGID })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].FirstGID == sorted[i-1].FirstGID {
			return nil, fmt.Errorf("tilesets %q and %q share firstgid %d", sorted[i-1].Name, sorted[i].Name, sorted[i].FirstGID)
		}
	}

	m := &Map{
		Width:      width,
		Height:     height,
		TileWidth:  tileW,
		TileHeight: tileH,
		Tilesets:   sorted,
		byName:     make(map[string]*Layer),
	}
	if m.TileWidth <= 0 {
		m.TileWidth = sorted[0].TileWidth
	}
	if m.TileHeight <= 0 {
		m.TileHeight = sorted[0].TileHeight
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("missing tile size")
	}
	for i := range m.Tilesets {
		if err := validateTileset(&m.Tilesets[i], m.TileWidth, m.TileHeight); err != nil {
			return nil, err
		}
	}

	want := width * height
	for _, l := range layers {
		if len(l.Data) != want {
			return nil, fmt.Errorf("layer %q has %d cells, expected %d (%dx%d)", l.Name, len(l.Data), want, width, height)
		}
		if _, exists := m.byName[l.Name]; exists {
			return nil, fmt.Errorf("duplicate layer name %q", l.Name)
		}
		l.width = width
		m.Layers = append(m.Layers, l)
		m.byName[l.Name] = l
	}

	return m, nil
}

// validateTileset checks ts and fills a missing tile size from the map's.
func validateTileset(ts *Tileset, mapTW, mapTH int) error {
	if ts.FirstGID <= 0 {
		return fmt.Errorf("tileset %q: firstgid %d must be positive", ts.Name, ts.FirstGID)
	}
	if ts.Columns <= 0 {
		return fmt.Errorf("tileset %q: missing required field %q", ts.Name, "columns")
	}
	if ts.TileWidth <= 0 {
		ts.TileWidth = mapTW
	}
	if ts.TileHeight <= 0 {
		ts.TileHeight = mapTH
	}
	return nil
}

func buildTilesets(in []jsonTileset, dir string) ([]Tileset, error) {
	out := make([]Tileset, 0, len(in))
	for i, jt := range in {
		name := jt.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if jt.Source != "" && jt.Image == "" {
			return nil, fmt.Errorf("tileset %q: external tileset %q is not supported, embed it in the map", name, jt.Source)
		}

		ts := Tileset{
			FirstGID:   jt.FirstGID,
			Name:       name,
			Image:      jt.Image,
			Columns:    jt.Columns,
			TileWidth:  jt.TileWidth,
			TileHeight: jt.TileHeight,
			TileCount:  jt.TileCount,
		}
		if jt.Image != "" {
			ts.ImagePath = jt.Image
			if !filepath.IsAbs(jt.Image) {
				ts.ImagePath = filepath.Join(dir, filepath.FromSlash(jt.Image))
			}
		}
		out = append(out, ts)
	}

	return out, nil
}

// Layer returns the tile layer with the given name.
func (m *Map) Layer(name string) (*Layer, bool) {
	l, ok := m.byName[name]
	return l, ok
}

// LayerNames returns tile layer names in document order.
func (m *Map) LayerNames() []string {
	names := make([]string, len(m.Layers))
	for i, l := range m.Layers {
		names[i] = l.Name
	}
	return names
}

// Index returns the row-major cell index of (row, col).
func (m *Map) Index(row, col int) int {
	return row*m.Width + col
}

// InBounds reports whether (row, col) lies inside the grid.
func (m *Map) InBounds(row, col int) bool {
	return row >= 0 && row < m.Height && col >= 0 && col < m.Width
}

// Tileset returns the tileset with the given name.
func (m *Map) Tileset(name string) (*Tileset, bool) {
	for i := range m.Tilesets {
		if m.Tilesets[i].Name == name {
			return &m.Tilesets[i], true
		}
	}
	return nil, false
}

// LoadMaps scans a directory for *.json files and loads each as a Map,
// keyed by file name.
func LoadMaps(dir string) (map[string]*Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read maps directory: %w", err)
	}

	all := make(map[string]*Map)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		m, err := LoadMap(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		all[entry.Name()] = m
	}
	return all, nil
}
