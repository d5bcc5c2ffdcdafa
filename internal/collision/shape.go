package collision

import (
	"fmt"
	"image"
	"strings"

	"gopkg.in/yaml.v3"
)

// Shape is the part of a tile that blocks movement.
type Shape uint8

const (
	// ShapeFull blocks the entire tile.
	ShapeFull Shape = iota
	// ShapeBottom blocks the lower half (low furniture).
	ShapeBottom
	// ShapeChair blocks a small centered square (seating).
	ShapeChair
	// ShapeNone is visual only.
	ShapeNone
)

var shapeNames = [...]string{
	ShapeFull:   "full",
	ShapeBottom: "bottom",
	ShapeChair:  "chair",
	ShapeNone:   "none",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// ParseShape converts a shape name to a Shape.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range shapeNames {
		if sn == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown collision shape %q (want full, bottom, chair or none)", name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	v, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalYAML accepts a shape name scalar.
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: collision shape must be a string", node.Line)
	}
	if err := s.UnmarshalText([]byte(node.Value)); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

// Footprint returns the blocking rectangle inside a tile of the given size,
// relative to the tile's top-left corner.
func (s Shape) Footprint(tileW, tileH int) image.Rectangle {
	switch s {
	case ShapeFull:
		return image.Rect(0, 0, tileW, tileH)
	case ShapeBottom:
		return image.Rect(0, tileH/2, tileW, tileH)
	case ShapeChair:
		w, h := tileW/2, tileH/2
		x, y := (tileW-w)/2, (tileH-h)/2
		return image.Rect(x, y, x+w, y+h)
	}
	return image.Rectangle{}
}
