package main

import (
	"flag"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/golang/glog"

	"tilemap-inspect/internal/config"
)

const desc = `Inspect Tiled maps: render collision overlays, validate tilesets, and
report layer statistics.`

// Globals are flags shared by every command.
type Globals struct {
	Verbosity int    `short:"v" default:"0" help:"Log verbosity (glog V level)."`
	Profile   string `short:"p" help:"YAML render profile applied on top of the built-in defaults."`
}

// config returns the effective render profile.
func (g *Globals) config() (*config.Config, error) {
	if g.Profile == "" {
		return config.Default(), nil
	}
	return config.Load(g.Profile)
}

var cli struct {
	Globals

	Render   RenderCmd   `cmd:"" help:"Render the collision overlay PNG."`
	Validate ValidateCmd `cmd:"" help:"Check maps and their tilesets."`
	Stats    StatsCmd    `cmd:"" help:"Show layer occupancy and tileset usage."`
	Classify ClassifyCmd `cmd:"" help:"List collision annotations without rendering."`
	Tiles    TilesCmd    `cmd:"" help:"Print the average color of every tile in a tileset."`
	Preview  PreviewCmd  `cmd:"" help:"Print the overlay as truecolor half blocks."`
	Serve    ServeCmd    `cmd:"" help:"Serve the overlay preview over SSH."`
	Dump     ProfileCmd  `cmd:"" name:"dump-profile" help:"Print the effective render profile as YAML."`
	All      AllCmd      `cmd:"" help:"Validate every map in a directory, then show stats for each."`
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("maptools"),
		kong.Description(desc),
		kong.UsageOnError(),
	)
	setupLogging(cli.Verbosity)
	defer glog.Flush()

	err := ctx.Run(&cli.Globals)
	glog.Flush()
	ctx.FatalIfErrorf(err)
}

// setupLogging routes glog to stderr at the requested verbosity.
func setupLogging(v int) {
	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(v))
	flag.CommandLine.Parse(nil)
}
