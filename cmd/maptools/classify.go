package main

import (
	"fmt"
	"image"
	"os"

	"tilemap-inspect/internal/collision"
	"tilemap-inspect/internal/maps"
)

type ClassifyCmd struct {
	Map string `arg:"" help:"Tiled JSON map."`
}

func (c *ClassifyCmd) Run(g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	m, err := maps.LoadMap(c.Map)
	if err != nil {
		return err
	}

	anns := collision.NewClassifier(cfg.Rules).Classify(m)
	t := newTable("row", "col", "style", "shape", "label", "footprint").alignRight(0, 1)
	for _, a := range anns {
		t.add(fmt.Sprint(a.Row), fmt.Sprint(a.Col), a.StyleKey(), a.Shape.String(), a.Label,
			footprint(a, m.TileWidth, m.TileHeight).String())
	}
	t.write(os.Stdout)

	sum := collision.Summarize(anns)
	fmt.Printf("\n%d annotations, %d numbered\n", len(anns), sum.Numbered)
	for _, k := range sum.Styles() {
		fmt.Printf("  %-12s %d\n", k, sum.ByStyle[k])
	}
	return nil
}

// footprint is the blocking rectangle of a in native map pixels.
func footprint(a collision.Annotation, tw, th int) image.Rectangle {
	return a.Shape.Footprint(tw, th).Add(image.Pt(a.Col*tw, a.Row*th))
}
