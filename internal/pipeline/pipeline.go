// Package pipeline runs the collision overlay end to end: load the map,
// composite its layers, classify collision cells and draw the overlay.
package pipeline

import (
	"fmt"
	"image"

	"github.com/golang/glog"

	"tilemap-inspect/internal/collision"
	"tilemap-inspect/internal/config"
	"tilemap-inspect/internal/maps"
	"tilemap-inspect/internal/render"
)

// Result is everything one run produced.
type Result struct {
	Image       *image.RGBA
	Annotations []collision.Annotation
	Summary     collision.Summary
	Stats       render.CompositeStats
	Tilesets    []render.TilesetInfo
}

// Build renders the overlay image for an already loaded map.
func Build(m *maps.Map, cfg *config.Config, store render.ImageStore) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}

	reg, err := render.NewTilesetRegistry(m.Tilesets, store)
	if err != nil {
		return nil, fmt.Errorf("load tilesets: %w", err)
	}

	comp := &render.Compositor{
		Registry:   reg,
		Order:      cfg.Order,
		Scale:      cfg.Scale,
		Background: cfg.Background,
	}
	img, err := comp.Composite(m)
	if err != nil {
		return nil, fmt.Errorf("composite: %w", err)
	}

	anns := collision.NewClassifier(cfg.Rules).Classify(m)

	text, err := render.NewTextRenderer(cfg.Font.Path, cfg.Font.LabelSize, cfg.Font.SmallSize)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	ov := &render.Overlay{
		Style: cfg.Style,
		Text:  text,
		TileW: m.TileWidth,
		TileH: m.TileHeight,
		Scale: cfg.Scale,
	}
	if err := ov.Render(img, anns); err != nil {
		return nil, fmt.Errorf("draw overlay: %w", err)
	}

	res := &Result{
		Image:       img,
		Annotations: anns,
		Summary:     collision.Summarize(anns),
		Stats:       comp.Stats,
		Tilesets:    reg.Tilesets(),
	}
	glog.Infof("%s: drew %d tiles (%d unresolved), %d annotations",
		m.Path, res.Stats.Drawn, res.Stats.Unresolved, len(anns))
	return res, nil
}

// Run loads mapPath, builds the overlay and writes it to outPath as PNG.
// On failure no image is left at outPath, including one from an earlier run.
func Run(mapPath, outPath string, cfg *config.Config) (*Result, error) {
	res, err := run(mapPath, outPath, cfg)
	if err != nil {
		if rmErr := render.RemoveStale(outPath); rmErr != nil {
			glog.Warningf("%v", rmErr)
		}
		return nil, err
	}
	return res, nil
}

func run(mapPath, outPath string, cfg *config.Config) (*Result, error) {
	m, err := maps.LoadMap(mapPath)
	if err != nil {
		return nil, err
	}
	res, err := Build(m, cfg, render.FileStore{})
	if err != nil {
		return nil, err
	}
	if err := render.WritePNG(outPath, res.Image); err != nil {
		return nil, err
	}
	return res, nil
}
