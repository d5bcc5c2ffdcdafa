package maps

// Flag bits packed into the top of a raw cell value (Tiled convention).
const (
	FlipHorizontal uint32 = 0x80000000
	FlipVertical   uint32 = 0x40000000
	FlipDiagonal   uint32 = 0x20000000

	// GIDMask keeps the 29-bit global tile id.
	GIDMask uint32 = 0x1FFFFFFF
)

// Cell is a decoded raw cell value.
type Cell struct {
	GID   uint32
	FlipH bool
	FlipV bool
	FlipD bool // decoded but never applied when drawing
}

// Decode splits a raw cell value into its global id and flip flags.
func Decode(raw uint32) Cell {
	return Cell{
		GID:   raw & GIDMask,
		FlipH: raw&FlipHorizontal != 0,
		FlipV: raw&FlipVertical != 0,
		FlipD: raw&FlipDiagonal != 0,
	}
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.GID == 0
}

// Raw packs the cell back into its raw form.
func (c Cell) Raw() uint32 {
	raw := c.GID & GIDMask
	if c.FlipH {
		raw |= FlipHorizontal
	}
	if c.FlipV {
		raw |= FlipVertical
	}
	if c.FlipD {
		raw |= FlipDiagonal
	}
	return raw
}
