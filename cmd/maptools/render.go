package main

import (
	"fmt"
	"net"
	"os"

	"tilemap-inspect/internal/config"
	"tilemap-inspect/internal/maps"
	"tilemap-inspect/internal/pipeline"
	"tilemap-inspect/internal/render"
	"tilemap-inspect/internal/server"
)

// OverlayFlags are the profile values a command may override.
type OverlayFlags struct {
	Scale int    `help:"Upscale factor (0 keeps the profile value)."`
	Font  string `help:"TrueType/OpenType font file for labels."`
}

func (f OverlayFlags) apply(cfg *config.Config) {
	if f.Scale != 0 {
		cfg.Scale = f.Scale
	}
	if f.Font != "" {
		cfg.Font.Path = f.Font
	}
}

// build loads a map and renders its overlay in memory.
func build(path string, g *Globals, f OverlayFlags) (*pipeline.Result, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}
	f.apply(cfg)
	m, err := maps.LoadMap(path)
	if err != nil {
		return nil, err
	}
	return pipeline.Build(m, cfg, render.FileStore{})
}

type RenderCmd struct {
	OverlayFlags

	Map string `arg:"" help:"Tiled JSON map."`
	Out string `short:"o" default:"collision-map.png" help:"Output PNG path."`
}

func (c *RenderCmd) Run(g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	c.apply(cfg)

	res, err := pipeline.Run(c.Map, c.Out, cfg)
	if err != nil {
		return err
	}
	b := res.Image.Bounds()
	fmt.Printf("Saved %s (%dx%d), %d numbered furniture tiles\n", c.Out, b.Dx(), b.Dy(), res.Summary.Numbered)
	return nil
}

type PreviewCmd struct {
	OverlayFlags

	Map   string `arg:"" help:"Tiled JSON map."`
	Width int    `short:"w" default:"100" help:"Preview width in terminal columns."`
}

func (c *PreviewCmd) Run(g *Globals) error {
	res, err := build(c.Map, g, c.OverlayFlags)
	if err != nil {
		return err
	}
	grid := render.HalfBlocks(res.Image, c.Width)
	_, err = os.Stdout.WriteString(render.WriteFrame(grid, false))
	return err
}

type ServeCmd struct {
	OverlayFlags

	Map     string `arg:"" help:"Tiled JSON map."`
	Addr    string `default:":2222" env:"MAPTOOLS_ADDR" help:"Listen address."`
	HostKey string `default:"host_key" help:"Host key file, generated when missing."`
}

func (c *ServeCmd) Run(g *Globals) error {
	res, err := build(c.Map, g, c.OverlayFlags)
	if err != nil {
		return err
	}
	if err := server.EnsureHostKey(c.HostKey); err != nil {
		return fmt.Errorf("host key: %w", err)
	}
	fmt.Printf("Serving %s, connect with: ssh -t -p %s localhost\n", c.Map, portOf(c.Addr))
	return server.NewPreviewServer(c.Addr, c.HostKey, c.Map, res.Image).Start()
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}

type ProfileCmd struct{}

func (c *ProfileCmd) Run(g *Globals) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
