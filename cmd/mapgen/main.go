package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"tilemap-inspect/internal/maps"
)

const desc = `Generate an empty LimeZu-style room as a Tiled JSON map: plank floor,
back and side walls, and interior shadows.`

const defaultImageDir = "../public/assets/tilesets/limezu/1_Interiors/32x32/Room_Bulder_subfiles_32x32"

var cli struct {
	Size   string `default:"40x30" help:"Room size in tiles as WxH."`
	Images string `default:"${images}" help:"Directory of the room builder sheets, as written into the map."`
	Out    string `short:"o" help:"Output file (default: stdout)."`
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("mapgen"),
		kong.Description(desc),
		kong.Vars{"images": defaultImageDir},
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	w, h, err := parseSize(cli.Size)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Building %dx%d room...\n", w, h)
	m, err := buildRoom(w, h, cli.Images)
	if err != nil {
		return err
	}

	if cli.Out == "" {
		data, err := maps.Marshal(m)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		os.Stdout.WriteString("\n")
	} else {
		if err := maps.WriteMap(cli.Out, m); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", cli.Out)
	}

	st := maps.Analyze(m)
	fmt.Fprintf(os.Stderr, "\nTile counts:\n")
	for _, l := range st.Layers {
		fmt.Fprintf(os.Stderr, "  %-10s %5d (%5.1f%%)\n", l.Name, l.Occupied, float64(l.Occupied)/float64(st.Cells)*100)
	}
	return nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 4 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 4)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 4 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 4)", parts[1])
	}
	return w, h, nil
}
