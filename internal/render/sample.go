package render

import (
	"fmt"
	"image"
	"image/color"
)

// TileSample is the average color of one tile in a tileset image.
type TileSample struct {
	GID      uint32
	Col, Row int
	Avg      color.NRGBA
}

// SampleTileset averages every tile of the named tileset. It is used to
// find tile indices by color when the art has no metadata.
func (reg *TilesetRegistry) SampleTileset(name string) ([]TileSample, error) {
	for _, e := range reg.entries {
		if e.ts.Name != name {
			continue
		}
		if e.img == nil {
			return nil, fmt.Errorf("tileset %q has no image loaded", name)
		}
		out := make([]TileSample, 0, e.capacity)
		for local := 0; local < e.capacity; local++ {
			gid := uint32(e.ts.FirstGID + local)
			ref, ok := reg.Resolve(gid)
			if !ok {
				break
			}
			out = append(out, TileSample{
				GID: gid,
				Col: ref.Col,
				Row: ref.Row,
				Avg: average(e.img, ref.Source),
			})
		}
		return out, nil
	}
	return nil, fmt.Errorf("no tileset named %q", name)
}

// average returns the mean straight-alpha color of r.
func average(img *image.RGBA, r image.Rectangle) color.NRGBA {
	r = r.Intersect(img.Bounds())
	n := r.Dx() * r.Dy()
	if n == 0 {
		return color.NRGBA{}
	}
	var sr, sg, sb, sa int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.RGBAAt(x, y)).(color.NRGBA)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			sa += int(c.A)
		}
	}
	return color.NRGBA{uint8(sr / n), uint8(sg / n), uint8(sb / n), uint8(sa / n)}
}
