package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/glog"
	"github.com/zyedidia/generic/mapset"
	xdraw "golang.org/x/image/draw"

	"tilemap-inspect/internal/maps"
)

// DefaultBackground fills the canvas before any layer is drawn.
var DefaultBackground = color.RGBA{30, 30, 40, 255}

// DefaultOrder is the back-to-front layer draw order.
var DefaultOrder = []string{"floor", "walls", "walls3d", "glass", "furniture"}

// CompositeStats counts what the compositor drew and skipped.
type CompositeStats struct {
	Drawn         int
	Unresolved    int      // cells whose gid had no pixels
	MissingLayers []string // names in Order absent from the map
}

// Compositor flattens map layers into a single upscaled image.
type Compositor struct {
	Registry   *TilesetRegistry
	Order      []string
	Scale      int
	Background color.Color

	Stats CompositeStats
}

// NewCompositor returns a compositor with the default order and background.
func NewCompositor(reg *TilesetRegistry, scale int) *Compositor {
	return &Compositor{
		Registry:   reg,
		Order:      DefaultOrder,
		Scale:      scale,
		Background: DefaultBackground,
	}
}

// Composite draws every layer in Order at native resolution, then scales
// the canvas by Scale with nearest-neighbor sampling.
func (c *Compositor) Composite(m *maps.Map) (*image.RGBA, error) {
	if c.Scale < 1 {
		return nil, fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	}
	if c.Registry == nil {
		return nil, fmt.Errorf("compositor has no tileset registry")
	}
	c.Stats = CompositeStats{}

	bg := c.Background
	if bg == nil {
		bg = DefaultBackground
	}
	canvas := image.NewRGBA(image.Rect(0, 0, m.Width*m.TileWidth, m.Height*m.TileHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	reported := mapset.New[uint32]()
	for _, name := range c.Order {
		layer, ok := m.Layer(name)
		if !ok {
			glog.V(1).Infof("composite: layer %q not in map, skipped", name)
			c.Stats.MissingLayers = append(c.Stats.MissingLayers, name)
			continue
		}
		for row := 0; row < m.Height; row++ {
			for col := 0; col < m.Width; col++ {
				cell := maps.Decode(layer.At(row, col))
				if cell.Empty() {
					continue
				}
				tile, ok := c.Registry.Tile(cell.GID)
				if !ok {
					c.Stats.Unresolved++
					if !reported.Has(cell.GID) {
						reported.Put(cell.GID)
						glog.V(1).Infof("composite: gid %d (layer %q, first at %d,%d) has no tile pixels", cell.GID, name, row, col)
					}
					continue
				}
				if cell.FlipH {
					tile = flipHorizontal(tile)
				}
				if cell.FlipV {
					tile = flipVertical(tile)
				}
				x, y := col*m.TileWidth, row*m.TileHeight
				b := tile.Bounds()
				draw.Draw(canvas, image.Rect(x, y, x+b.Dx(), y+b.Dy()), tile, b.Min, draw.Over)
				c.Stats.Drawn++
			}
		}
	}

	if c.Scale == 1 {
		return canvas, nil
	}
	return Upscale(canvas, c.Scale), nil
}

// Upscale enlarges img by an integer factor without smoothing.
func Upscale(img image.Image, scale int) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}

// flipHorizontal mirrors a tile left to right.
func flipHorizontal(src image.Image) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(b.Dx()-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// flipVertical mirrors a tile top to bottom.
func flipVertical(src image.Image) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, b.Dy()-1-y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
