package main

import (
	"fmt"
	"os"

	"tilemap-inspect/internal/maps"
)

type StatsCmd struct {
	Map string `arg:"" help:"Tiled JSON map."`
}

func (c *StatsCmd) Run(g *Globals) error {
	m, err := maps.LoadMap(c.Map)
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *maps.Map) {
	st := maps.Analyze(m)
	fmt.Printf("%s (%dx%d = %d cells, %dx%d px tiles)\n\n", m.Path, m.Width, m.Height, st.Cells, m.TileWidth, m.TileHeight)

	layers := newTable("layer", "tiles", "fill", "distinct", "flipH", "flipV", "flipD").alignRight(1, 2, 3, 4, 5, 6)
	for _, l := range st.Layers {
		layers.add(l.Name, fmt.Sprint(l.Occupied), percent(l.Occupied, st.Cells),
			fmt.Sprint(l.Distinct), fmt.Sprint(l.FlipH), fmt.Sprint(l.FlipV), fmt.Sprint(l.FlipD))
	}
	layers.write(os.Stdout)

	used := 0
	for _, u := range st.Tilesets {
		used += u.Cells
	}
	used += st.Orphans

	fmt.Println()
	tilesets := newTable("tileset", "cells", "share", "").alignRight(1, 2)
	for _, u := range st.Tilesets {
		tilesets.add(u.Name, fmt.Sprint(u.Cells), percent(u.Cells, used), bar(u.Cells, used))
	}
	if st.Orphans > 0 {
		tilesets.add("(none)", fmt.Sprint(st.Orphans), percent(st.Orphans, used), bar(st.Orphans, used))
	}
	tilesets.write(os.Stdout)
}
