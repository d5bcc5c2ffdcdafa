package maps

import (
	"encoding/json"
	"fmt"
	"os"
)

// tiledMap is the full document Tiled writes for an orthogonal,
// finite, uncompressed map.
type tiledMap struct {
	CompressionLevel int            `json:"compressionlevel"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Infinite         bool           `json:"infinite"`
	Orientation      string         `json:"orientation"`
	RenderOrder      string         `json:"renderorder"`
	TiledVersion     string         `json:"tiledversion"`
	TileWidth        int            `json:"tilewidth"`
	TileHeight       int            `json:"tileheight"`
	Type             string         `json:"type"`
	Version          string         `json:"version"`
	NextLayerID      int            `json:"nextlayerid"`
	NextObjectID     int            `json:"nextobjectid"`
	Tilesets         []tiledTileset `json:"tilesets"`
	Layers           []tiledLayer   `json:"layers"`
}

type tiledTileset struct {
	FirstGID   int    `json:"firstgid"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	TileWidth  int    `json:"tilewidth"`
	TileHeight int    `json:"tileheight"`
	TileCount  int    `json:"tilecount,omitempty"`
	Columns    int    `json:"columns"`
	Margin     int    `json:"margin"`
	Spacing    int    `json:"spacing"`
}

type tiledLayer struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Visible bool     `json:"visible"`
	Opacity float64  `json:"opacity"`
	Data    []uint32 `json:"data"`
}

// Marshal encodes m as an indented Tiled JSON document. Tileset images are
// written as given in Tileset.Image.
func Marshal(m *Map) ([]byte, error) {
	doc := tiledMap{
		CompressionLevel: -1,
		Width:            m.Width,
		Height:           m.Height,
		Orientation:      "orthogonal",
		RenderOrder:      "right-down",
		TiledVersion:     "1.11.2",
		TileWidth:        m.TileWidth,
		TileHeight:       m.TileHeight,
		Type:             "map",
		Version:          "1.10",
		NextLayerID:      len(m.Layers) + 1,
		NextObjectID:     1,
	}
	for _, ts := range m.Tilesets {
		doc.Tilesets = append(doc.Tilesets, tiledTileset{
			FirstGID:   ts.FirstGID,
			Name:       ts.Name,
			Image:      ts.Image,
			TileWidth:  ts.TileWidth,
			TileHeight: ts.TileHeight,
			TileCount:  ts.TileCount,
			Columns:    ts.Columns,
		})
	}
	for i, l := range m.Layers {
		doc.Layers = append(doc.Layers, tiledLayer{
			ID:      i + 1,
			Name:    l.Name,
			Type:    "tilelayer",
			Width:   m.Width,
			Height:  m.Height,
			Visible: true,
			Opacity: 1,
			Data:    l.Data,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// WriteMap encodes m to path.
func WriteMap(path string, m *Map) error {
	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	return nil
}
