package collision

import (
	"sort"
	"strconv"

	"github.com/golang/glog"

	"tilemap-inspect/internal/maps"
)

// Marker is how an annotation was produced, which decides its outline.
type Marker uint8

const (
	MarkerWall Marker = iota
	MarkerStructural
	MarkerDoor
	MarkerGlassStrip // thin strip along the bottom of the tile
	MarkerGlassDim   // full tile, drawn at lower priority
	MarkerFurniture
	MarkerOverride
)

// DoorLabel is the label placed on glass door cells.
const DoorLabel = "D"

// Annotation is one bordered cell in the diagnostic overlay.
type Annotation struct {
	Row, Col int
	Shape    Shape
	Marker   Marker
	Label    string // empty for unlabeled markers
}

// StyleKey names the overlay style used to draw the annotation.
func (a Annotation) StyleKey() string {
	switch a.Marker {
	case MarkerWall:
		return "wall"
	case MarkerStructural:
		return "walls3d"
	case MarkerDoor:
		return "door"
	case MarkerGlassStrip:
		return "glass_strip"
	case MarkerGlassDim:
		return "glass_none"
	}
	return a.Shape.String()
}

// Classifier assigns collision annotations to map cells.
type Classifier struct {
	rules Rules
}

// NewClassifier returns a classifier for the given rules. The rules are
// treated as read-only.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Rules returns the classifier's rules.
func (c *Classifier) Rules() Rules {
	return c.rules
}

// FurnitureShape looks up a bare furniture gid. Unknown furniture blocks.
func (c *Classifier) FurnitureShape(gid uint32) Shape {
	if s, ok := c.rules.FurnitureShapes[gid]; ok {
		return s
	}
	return ShapeFull
}

// GlassMarker classifies a glass cell. Doors win over strip rows.
func (c *Classifier) GlassMarker(gid uint32, row int) Marker {
	switch {
	case c.rules.DoorGIDs.Has(gid):
		return MarkerDoor
	case c.rules.StripRows.Has(row):
		return MarkerGlassStrip
	}
	return MarkerGlassDim
}

// Classify walks the wall, structural, glass and furniture layers in that
// order, then appends the overrides. Furniture and override annotations get
// sequential numeric labels starting at 1.
func (c *Classifier) Classify(m *maps.Map) []Annotation {
	var out []Annotation
	names := c.rules.Layers

	c.scan(m, names.Walls, func(row, col int, raw uint32) {
		out = append(out, Annotation{Row: row, Col: col, Shape: ShapeFull, Marker: MarkerWall})
	})

	c.scan(m, names.Structural, func(row, col int, raw uint32) {
		gid := maps.Decode(raw).GID
		if !c.rules.StructuralRange.Contains(gid) {
			glog.V(2).Infof("structural layer: gid %d at (%d,%d) outside %d-%d, ignored",
				gid, row, col, c.rules.StructuralRange.First, c.rules.StructuralRange.Last)
			return
		}
		out = append(out, Annotation{Row: row, Col: col, Shape: ShapeFull, Marker: MarkerStructural})
	})

	c.scan(m, names.Glass, func(row, col int, raw uint32) {
		cell := maps.Decode(raw)
		if cell.Empty() {
			return
		}
		a := Annotation{Row: row, Col: col, Shape: ShapeFull, Marker: c.GlassMarker(cell.GID, row)}
		if a.Marker == MarkerDoor {
			a.Label = DoorLabel
		}
		out = append(out, a)
	})

	next := 1
	c.scan(m, names.Furniture, func(row, col int, raw uint32) {
		cell := maps.Decode(raw)
		if cell.Empty() {
			return
		}
		shape := c.FurnitureShape(cell.GID)
		if shape == ShapeNone {
			return
		}
		out = append(out, Annotation{Row: row, Col: col, Shape: shape, Marker: MarkerFurniture, Label: strconv.Itoa(next)})
		next++
	})

	for _, o := range c.rules.Overrides {
		if !m.InBounds(o.Row, o.Col) {
			glog.Warningf("override at (%d,%d) lies outside the %dx%d map", o.Row, o.Col, m.Width, m.Height)
		}
		out = append(out, Annotation{Row: o.Row, Col: o.Col, Shape: o.Shape, Marker: MarkerOverride, Label: strconv.Itoa(next)})
		next++
	}

	return out
}

// scan calls fn for every nonzero raw cell of the named layer in row-major
// order. A blank name or a layer missing from the map is skipped.
func (c *Classifier) scan(m *maps.Map, name string, fn func(row, col int, raw uint32)) {
	if name == "" {
		return
	}
	layer, ok := m.Layer(name)
	if !ok {
		glog.V(1).Infof("classify: layer %q not in map, skipped", name)
		return
	}
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			if raw := layer.At(row, col); raw != 0 {
				fn(row, col, raw)
			}
		}
	}
}

// Summary counts annotations by style key.
type Summary struct {
	ByStyle  map[string]int
	Numbered int // annotations carrying a sequential label
}

// Summarize tallies a classification result.
func Summarize(anns []Annotation) Summary {
	s := Summary{ByStyle: make(map[string]int)}
	for _, a := range anns {
		s.ByStyle[a.StyleKey()]++
		if a.Marker == MarkerFurniture || a.Marker == MarkerOverride {
			s.Numbered++
		}
	}
	return s
}

// Styles returns the style keys present in the summary, sorted.
func (s Summary) Styles() []string {
	keys := make([]string, 0, len(s.ByStyle))
	for k := range s.ByStyle {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
