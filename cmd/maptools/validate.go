package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tilemap-inspect/internal/maps"
	"tilemap-inspect/internal/pipeline"
	"tilemap-inspect/internal/render"
)

type ValidateCmd struct {
	Paths  []string `arg:"" help:"Map files or directories of maps."`
	Strict bool     `help:"Also fail on missing images and unresolved gids."`
}

func (c *ValidateCmd) Run(g *Globals) error {
	errors, warnings, total := 0, 0, 0
	for _, path := range c.Paths {
		loaded, err := loadPath(path)
		if err != nil {
			fmt.Printf("FAIL: %v\n", err)
			errors++
			continue
		}
		for _, name := range sortedNames(loaded) {
			total++
			w, err := validateMap(name, loaded[name])
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				errors++
			}
			warnings += w
		}
	}

	if c.Strict {
		errors += warnings
	}
	if errors > 0 {
		return fmt.Errorf("%d error(s) found", errors)
	}
	if warnings > 0 {
		fmt.Printf("\nAll %d maps valid, %d warning(s)\n", total, warnings)
		return nil
	}
	fmt.Printf("\nAll %d maps valid\n", total)
	return nil
}

// validateMap prints the report for one map and returns its warning count.
func validateMap(name string, m *maps.Map) (int, error) {
	fmt.Printf("Validating %q...\n", name)
	rep, err := pipeline.Check(m, render.FileStore{})
	if err != nil {
		return 0, err
	}

	warnings := 0
	for _, ts := range rep.Tilesets {
		if !ts.Loaded {
			fmt.Printf("  WARN: tileset %q image %s not loaded\n", ts.Name, ts.Image)
			warnings++
		}
	}
	for _, lr := range rep.Layers {
		if len(lr.Unresolved) > 0 {
			fmt.Printf("  WARN: layer %q: unresolved gids %s\n", lr.Layer, joinGIDs(lr.Unresolved, 10))
			warnings++
		}
		if len(lr.Blank) > 0 {
			fmt.Printf("  WARN: layer %q: %d cells draw from missing images\n", lr.Layer, lr.BlankCells)
		}
	}
	if rep.OK() {
		fmt.Printf("  OK (%dx%d, %d layers, %d tilesets)\n", m.Width, m.Height, len(m.Layers), len(m.Tilesets))
	}
	return warnings, nil
}

// loadPath loads one map file, or every map in a directory.
func loadPath(path string) (map[string]*maps.Map, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return maps.LoadMaps(path)
	}
	m, err := maps.LoadMap(path)
	if err != nil {
		return nil, err
	}
	return map[string]*maps.Map{filepath.Base(path): m}, nil
}

func sortedNames(all map[string]*maps.Map) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinGIDs(gids []uint32, limit int) string {
	parts := make([]string, 0, limit+1)
	for i, gid := range gids {
		if i == limit {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(gids)-limit))
			break
		}
		parts = append(parts, fmt.Sprint(gid))
	}
	return strings.Join(parts, ", ")
}

type AllCmd struct {
	Dir string `arg:"" help:"Directory of Tiled JSON maps."`
}

func (c *AllCmd) Run(g *Globals) error {
	fmt.Println("=== VALIDATE ===")
	if err := (&ValidateCmd{Paths: []string{c.Dir}}).Run(g); err != nil {
		return err
	}

	all, err := maps.LoadMaps(c.Dir)
	if err != nil {
		return err
	}
	for _, name := range sortedNames(all) {
		fmt.Printf("\n=== STATS: %s ===\n", name)
		printStats(all[name])
	}
	return nil
}
