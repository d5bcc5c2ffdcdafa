package collision

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// LayerNames names the map layers each rule set applies to. An empty name
// disables that rule set.
type LayerNames struct {
	Walls      string
	Structural string
	Glass      string
	Furniture  string
}

// GIDRange is an inclusive range of bare global ids.
type GIDRange struct {
	First, Last uint32
}

// Contains reports whether gid lies in the range.
func (r GIDRange) Contains(gid uint32) bool {
	return gid >= r.First && gid <= r.Last
}

// Override places an extra collision marker at a fixed cell, for tiles
// whose art sits in one cell while the obstacle belongs in another.
type Override struct {
	Row, Col int
	Shape    Shape
	Note     string
}

// Rules is the classification configuration for one asset pack.
type Rules struct {
	Layers          LayerNames
	StructuralRange GIDRange
	DoorGIDs        mapset.Set[uint32]
	StripRows       mapset.Set[int]
	FurnitureShapes map[uint32]Shape
	Overrides       []Override
}

// Validate checks the rules for internal consistency.
func (r *Rules) Validate() error {
	if r.StructuralRange.First > r.StructuralRange.Last {
		return fmt.Errorf("structural range %d-%d is inverted", r.StructuralRange.First, r.StructuralRange.Last)
	}
	for gid, s := range r.FurnitureShapes {
		if gid == 0 {
			return fmt.Errorf("furniture shape table: gid 0 is the empty cell")
		}
		if s > ShapeNone {
			return fmt.Errorf("furniture gid %d: invalid shape %v", gid, s)
		}
	}
	for i, o := range r.Overrides {
		if o.Row < 0 || o.Col < 0 {
			return fmt.Errorf("override %d at (%d,%d): negative position", i, o.Row, o.Col)
		}
	}
	return nil
}

// SetOf builds a set from a list of values.
func SetOf[T comparable](vals ...T) mapset.Set[T] {
	s := mapset.New[T]()
	for _, v := range vals {
		s.Put(v)
	}
	return s
}

// DefaultRules returns the rules for the HQ room built on the LimeZu
// interiors pack.
func DefaultRules() Rules {
	return Rules{
		Layers: LayerNames{
			Walls:      "walls",
			Structural: "walls3d",
			Glass:      "glass",
			Furniture:  "furniture",
		},
		StructuralRange: GIDRange{First: 1881, Last: 3296},
		DoorGIDs:        SetOf[uint32](4140, 4141, 4156, 4157),
		StripRows:       SetOf(8, 16),
		FurnitureShapes: hqFurniture(),
		Overrides: []Override{
			{Row: 18, Col: 14, Shape: ShapeFull, Note: "gid 6925 drawn at (19,13), blocks above 6926"},
		},
	}
}

func hqFurniture() map[uint32]Shape {
	const (
		n = ShapeNone
		f = ShapeFull
		b = ShapeBottom
		c = ShapeChair
	)
	return map[uint32]Shape{
		// office
		6885: n, 6886: n, 6887: n, 6888: n, 6889: n, 6890: n,
		6891: c, 6892: c, 6895: b, 6896: b, 6897: b, 6898: b,
		6899: n, 6900: n, 6901: c, 6902: c, 6905: n, 6906: n,
		6907: n, 6908: n, 6591: n, 6592: n, 6920: n, 6930: b,

		// lounge
		6915: n, 6916: n, 6918: n, 6919: n, 6921: b, 6922: b, 6923: b,
		6924: n, 6925: n, 6926: f, 6928: f, 6929: f, 6931: f, 6932: f,
		6933: n, 6934: b, 6935: b, 6936: b, 6938: b, 6939: b,
		6941: f, 6942: f, 6943: n, 6951: n, 6952: n, 6953: n,

		// conference
		6965: b, 6966: b, 6967: b, 6968: b, 6969: c, 6970: c,
		6971: c, 6972: c, 6973: c, 6974: c, 6975: b, 6976: b,
		6977: b, 6978: b, 6979: c, 6980: c, 6983: c, 6984: c,
		6989: c, 6990: c, 6999: c, 7000: c, 7005: n, 7006: n,
		7007: n, 7008: n, 7015: f, 7016: f, 7017: f, 7018: f,
		7025: c, 7026: c, 7027: n, 7028: n,

		// wall decor
		7035: n, 7036: n, 7037: n, 7038: n, 7039: n, 7040: n,
		7041: n, 7042: n, 7043: n, 7044: n, 7045: n, 7046: n,
		7047: n, 7048: n, 7049: n, 7050: n, 7051: n, 7052: n,
		7053: n, 7054: n, 7065: n, 7066: n, 7067: n, 7068: n,
		7069: n, 7070: n, 7071: n, 7072: n, 7073: n, 7075: n,
		7076: n, 7077: n, 7078: n, 7079: n, 7080: n, 7081: n,
		7082: n, 7083: n,

		// kitchen and plants
		7085: n, 7086: n, 7087: n,
		7088: b, 7089: b, 7090: b,
		7091: n, 7092: n, 7093: n,
		7095: b, 7102: n, 7104: n,
		7105: b, 7112: f, 7113: f, 7115: f,
		7122: b, 7123: b, 7133: b,
		7139: f, 7141: f, 7142: f, 7143: n,
		7149: f, 7151: f, 7152: f,
		7159: n, 7160: n, 7161: n,
		7165: n, 7166: n, 7175: f, 7176: f,
		7185: n, 7186: n,
	}
}
