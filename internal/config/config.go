// Package config loads render profiles: every tunable of the collision
// overlay, with the HQ asset-pack values as defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"tilemap-inspect/internal/collision"
	"tilemap-inspect/internal/render"
)

// Font selects the overlay typeface. An empty Path uses Go Regular.
type Font struct {
	Path      string  `yaml:"path"`
	LabelSize float64 `yaml:"label_size"`
	SmallSize float64 `yaml:"small_size"`
}

// Config is a resolved render profile.
type Config struct {
	Scale      int
	Order      []string
	Background color.NRGBA
	Font       Font
	Rules      collision.Rules
	Style      render.OverlayStyle
}

// Default returns the stock profile.
func Default() *Config {
	bg := render.DefaultBackground
	return &Config{
		Scale:      4,
		Order:      append([]string(nil), render.DefaultOrder...),
		Background: color.NRGBA{bg.R, bg.G, bg.B, bg.A},
		Font:       Font{LabelSize: render.DefaultLabelSize, SmallSize: render.DefaultSmallSize},
		Rules:      collision.DefaultRules(),
		Style:      render.DefaultOverlayStyle(),
	}
}

// Load reads a YAML profile on top of the defaults. Keys absent from the
// file keep their default values; map sections such as the furniture table
// and the color table are merged entry by entry.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML profile on top of the defaults. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	base := toFile(Default())
	f := toFile(Default())
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	f.Style.inheritColors(base.Style.Colors)
	return f.resolve()
}

// Marshal renders cfg as a YAML profile.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(toFile(cfg))
}

// Validate checks a resolved profile.
func (c *Config) Validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("scale: must be at least 1, got %d", c.Scale)
	}
	if len(c.Order) == 0 {
		return fmt.Errorf("draw_order: no layers")
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("collision: %w", err)
	}
	if err := c.Style.Validate(); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	return nil
}

// file mirrors the on-disk profile layout.
type file struct {
	Scale      int        `yaml:"scale"`
	DrawOrder  []string   `yaml:"draw_order"`
	Background hexColor   `yaml:"background"`
	Font       Font       `yaml:"font"`
	Collision  collisionF `yaml:"collision"`
	Style      styleF     `yaml:"style"`
}

type collisionF struct {
	Layers          layersF                    `yaml:"layers"`
	StructuralRange [2]uint32                  `yaml:"structural_range,flow"`
	DoorGIDs        []uint32                   `yaml:"door_gids,flow"`
	StripRows       []int                      `yaml:"strip_rows,flow"`
	Furniture       map[uint32]collision.Shape `yaml:"furniture"`
	Overrides       []overrideF                `yaml:"overrides"`
}

type layersF struct {
	Walls      string `yaml:"walls"`
	Structural string `yaml:"structural"`
	Glass      string `yaml:"glass"`
	Furniture  string `yaml:"furniture"`
}

type overrideF struct {
	Row   int             `yaml:"row"`
	Col   int             `yaml:"col"`
	Shape collision.Shape `yaml:"shape"`
	Note  string          `yaml:"note,omitempty"`
}

type styleF struct {
	StrokeWidth  int                 `yaml:"stroke_width"`
	StripHeight  int                 `yaml:"strip_height"`
	Colors       map[string]hexColor `yaml:"colors"`
	LabelColor   hexColor            `yaml:"label_color"`
	LabelBacking hexColor            `yaml:"label_backing"`
	Legend       legendF             `yaml:"legend"`
}

type legendF struct {
	Entries []legendEntryF `yaml:"entries"`
	Height  int            `yaml:"height"`
	Backing hexColor       `yaml:"backing"`
	Spacing int            `yaml:"spacing"`
	Swatch  int            `yaml:"swatch"`
	Stroke  int            `yaml:"stroke"`
	Text    hexColor       `yaml:"text"`
}

type legendEntryF struct {
	Label string `yaml:"label"`
	Style string `yaml:"style"`
}

// inheritColors fills style colors given only as {alpha: n} from the
// default of the same name.
func (s *styleF) inheritColors(defaults map[string]hexColor) {
	for k, v := range s.Colors {
		d, ok := defaults[k]
		if v.Hex != "" || !ok {
			continue
		}
		v.Hex = d.Hex
		if v.Alpha == nil {
			v.Alpha = d.Alpha
		}
		s.Colors[k] = v
	}
}

func toFile(c *Config) *file {
	r := c.Rules
	f := &file{
		Scale:      c.Scale,
		DrawOrder:  append([]string(nil), c.Order...),
		Background: fromNRGBA(c.Background),
		Font:       c.Font,
		Collision: collisionF{
			Layers: layersF{
				Walls:      r.Layers.Walls,
				Structural: r.Layers.Structural,
				Glass:      r.Layers.Glass,
				Furniture:  r.Layers.Furniture,
			},
			StructuralRange: [2]uint32{r.StructuralRange.First, r.StructuralRange.Last},
			Furniture:       make(map[uint32]collision.Shape, len(r.FurnitureShapes)),
		},
		Style: styleF{
			StrokeWidth:  c.Style.StrokeWidth,
			StripHeight:  c.Style.StripHeight,
			Colors:       make(map[string]hexColor, len(c.Style.Colors)),
			LabelColor:   fromNRGBA(c.Style.LabelColor),
			LabelBacking: fromNRGBA(c.Style.LabelBacking),
			Legend: legendF{
				Height:  c.Style.LegendHeight,
				Backing: fromNRGBA(c.Style.LegendBacking),
				Spacing: c.Style.LegendSpacing,
				Swatch:  c.Style.LegendSwatch,
				Stroke:  c.Style.LegendStroke,
				Text:    fromNRGBA(c.Style.LegendText),
			},
		},
	}

	if r.DoorGIDs.Size() > 0 {
		r.DoorGIDs.Each(func(gid uint32) { f.Collision.DoorGIDs = append(f.Collision.DoorGIDs, gid) })
		sort.Slice(f.Collision.DoorGIDs, func(i, j int) bool { return f.Collision.DoorGIDs[i] < f.Collision.DoorGIDs[j] })
	}
	if r.StripRows.Size() > 0 {
		r.StripRows.Each(func(row int) { f.Collision.StripRows = append(f.Collision.StripRows, row) })
		sort.Ints(f.Collision.StripRows)
	}
	for gid, s := range r.FurnitureShapes {
		f.Collision.Furniture[gid] = s
	}
	for _, o := range r.Overrides {
		f.Collision.Overrides = append(f.Collision.Overrides, overrideF{Row: o.Row, Col: o.Col, Shape: o.Shape, Note: o.Note})
	}
	for k, v := range c.Style.Colors {
		f.Style.Colors[k] = fromNRGBA(v)
	}
	for _, e := range c.Style.Legend {
		f.Style.Legend.Entries = append(f.Style.Legend.Entries, legendEntryF{Label: e.Label, Style: e.Style})
	}
	return f
}

func (f *file) resolve() (*Config, error) {
	var err error
	c := &Config{
		Scale: f.Scale,
		Order: f.DrawOrder,
		Font:  f.Font,
	}
	if c.Background, err = f.Background.nrgba(); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	fc := f.Collision
	c.Rules = collision.Rules{
		Layers: collision.LayerNames{
			Walls:      fc.Layers.Walls,
			Structural: fc.Layers.Structural,
			Glass:      fc.Layers.Glass,
			Furniture:  fc.Layers.Furniture,
		},
		StructuralRange: collision.GIDRange{First: fc.StructuralRange[0], Last: fc.StructuralRange[1]},
		DoorGIDs:        collision.SetOf(fc.DoorGIDs...),
		StripRows:       collision.SetOf(fc.StripRows...),
		FurnitureShapes: fc.Furniture,
	}
	for _, o := range fc.Overrides {
		c.Rules.Overrides = append(c.Rules.Overrides, collision.Override{Row: o.Row, Col: o.Col, Shape: o.Shape, Note: o.Note})
	}

	fs := f.Style
	c.Style = render.OverlayStyle{
		Colors:        make(map[string]color.NRGBA, len(fs.Colors)),
		StrokeWidth:   fs.StrokeWidth,
		StripHeight:   fs.StripHeight,
		LegendHeight:  fs.Legend.Height,
		LegendSpacing: fs.Legend.Spacing,
		LegendSwatch:  fs.Legend.Swatch,
		LegendStroke:  fs.Legend.Stroke,
	}
	for k, v := range fs.Colors {
		if c.Style.Colors[k], err = v.nrgba(); err != nil {
			return nil, fmt.Errorf("style.colors.%s: %w", k, err)
		}
	}
	named := []struct {
		key string
		src hexColor
		dst *color.NRGBA
	}{
		{"style.label_color", fs.LabelColor, &c.Style.LabelColor},
		{"style.label_backing", fs.LabelBacking, &c.Style.LabelBacking},
		{"style.legend.backing", fs.Legend.Backing, &c.Style.LegendBacking},
		{"style.legend.text", fs.Legend.Text, &c.Style.LegendText},
	}
	for _, n := range named {
		if *n.dst, err = n.src.nrgba(); err != nil {
			return nil, fmt.Errorf("%s: %w", n.key, err)
		}
	}
	for _, e := range fs.Legend.Entries {
		c.Style.Legend = append(c.Style.Legend, render.LegendEntry{Label: e.Label, Style: e.Style})
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// hexColor is a "#rrggbb" color with a separate alpha; a missing alpha is
// opaque.
type hexColor struct {
	Hex   string `yaml:"hex"`
	Alpha *int   `yaml:"alpha,omitempty"`
}

// UnmarshalYAML accepts either a bare "#rrggbb" scalar or a {hex, alpha}
// mapping. A mapping only replaces the fields it names.
func (h *hexColor) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*h = hexColor{Hex: node.Value}
		return nil
	}
	type plain hexColor
	p := plain(*h)
	if err := node.Decode(&p); err != nil {
		return err
	}
	*h = hexColor(p)
	return nil
}

func (h hexColor) nrgba() (color.NRGBA, error) {
	if h.Hex == "" {
		return color.NRGBA{}, fmt.Errorf("missing hex")
	}
	c, err := colorful.Hex(h.Hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", h.Hex, err)
	}
	a := 255
	if h.Alpha != nil {
		a = *h.Alpha
	}
	if a < 0 || a > 255 {
		return color.NRGBA{}, fmt.Errorf("alpha %d out of range 0-255", a)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}

func fromNRGBA(c color.NRGBA) hexColor {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	h := hexColor{Hex: hex}
	if c.A != 255 {
		a := int(c.A)
		h.Alpha = &a
	}
	return h
}
