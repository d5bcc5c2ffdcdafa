package main

import (
	"fmt"
	"os"

	"tilemap-inspect/internal/maps"
	"tilemap-inspect/internal/render"
)

type TilesCmd struct {
	Map      string `arg:"" help:"Tiled JSON map."`
	Tileset  string `arg:"" help:"Tileset name."`
	Opaque   bool   `help:"Skip fully transparent tiles."`
	MinAlpha uint8  `default:"0" help:"Skip tiles whose average alpha is below this."`
}

func (c *TilesCmd) Run(g *Globals) error {
	m, err := maps.LoadMap(c.Map)
	if err != nil {
		return err
	}
	reg, err := render.NewTilesetRegistry(m.Tilesets, render.FileStore{})
	if err != nil {
		return err
	}
	samples, err := reg.SampleTileset(c.Tileset)
	if err != nil {
		return err
	}

	t := newTable("gid", "col", "row", "r", "g", "b", "a").alignRight(0, 1, 2, 3, 4, 5, 6)
	shown := 0
	for _, s := range samples {
		if (c.Opaque && s.Avg.A == 0) || s.Avg.A < c.MinAlpha {
			continue
		}
		t.add(fmt.Sprint(s.GID), fmt.Sprint(s.Col), fmt.Sprint(s.Row),
			fmt.Sprint(s.Avg.R), fmt.Sprint(s.Avg.G), fmt.Sprint(s.Avg.B), fmt.Sprint(s.Avg.A))
		shown++
	}
	t.write(os.Stdout)
	fmt.Printf("\n%d of %d tiles in %q\n", shown, len(samples), c.Tileset)
	return nil
}
