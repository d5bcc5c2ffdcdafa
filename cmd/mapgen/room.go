package main

import (
	"path"

	"tilemap-inspect/internal/maps"
)

// Tileset layout of the LimeZu room builder sheets, 32x32 tiles.
const (
	floorsFirstGID  = 1
	wallsFirstGID   = 601
	shadowsFirstGID = 1881

	wallRows = 2 // back wall height in tiles
)

// Floor planks: warm diagonal wood, three variants per row parity.
var (
	floorEven = [3]uint32{155, 156, 157}
	floorOdd  = [3]uint32{170, 171, 172}
)

// Cream wall pieces. Side walls alternate between the top and bottom row
// variants to avoid visible striping.
const (
	wallTopLeft     = 747
	wallTop         = 748
	wallTopRight    = 749
	wallBottomLeft  = 779
	wallBottom      = 780
	wallBottomRight = 781
)

// Interior shadow pieces.
const (
	shadowCorner = 1935
	shadowTop    = 1936
	shadowLeft   = 1951
)

// roomTilesets returns the three room builder sheets, with images under dir.
func roomTilesets(dir string) []maps.Tileset {
	sheet := func(name string) string {
		if dir == "" {
			return name
		}
		return path.Join(dir, name)
	}
	return []maps.Tileset{
		{FirstGID: floorsFirstGID, Name: "floors", Image: sheet("Room_Builder_Floors_32x32.png"),
			Columns: 15, TileWidth: 32, TileHeight: 32, TileCount: 600},
		{FirstGID: wallsFirstGID, Name: "walls", Image: sheet("Room_Builder_Walls_32x32.png"),
			Columns: 32, TileWidth: 32, TileHeight: 32, TileCount: 1280},
		{FirstGID: shadowsFirstGID, Name: "shadows", Image: sheet("Room_Builder_Floor_Shadows_32x32.png"),
			Columns: 16, TileWidth: 32, TileHeight: 32, TileCount: 80},
	}
}

// buildRoom lays out an empty w x h room: plank floor, a two-row back wall,
// side and bottom walls, and soft shadows along the back and left walls.
func buildRoom(w, h int, imageDir string) (*maps.Map, error) {
	layers := []*maps.Layer{
		maps.NewLayer("floor", buildFloor(w, h)),
		maps.NewLayer("walls", buildWalls(w, h)),
		maps.NewLayer("shadows", buildShadows(w, h)),
	}
	return maps.New(w, h, 32, 32, roomTilesets(imageDir), layers)
}

func buildFloor(w, h int) []uint32 {
	data := make([]uint32, w*h)
	for row := wallRows; row < h-1; row++ {
		tiles := floorOdd
		if row%2 == 0 {
			tiles = floorEven
		}
		for col := 1; col < w-1; col++ {
			data[row*w+col] = tiles[(col+row/2)%3]
		}
	}
	return data
}

func buildWalls(w, h int) []uint32 {
	data := make([]uint32, w*h)
	span := func(row int, left, mid, right uint32) {
		data[row*w] = left
		for col := 1; col < w-1; col++ {
			data[row*w+col] = mid
		}
		data[row*w+w-1] = right
	}

	span(0, wallTopLeft, wallTop, wallTopRight)
	span(1, wallBottomLeft, wallBottom, wallBottomRight)
	for row := wallRows; row < h-1; row++ {
		if row%2 == 0 {
			data[row*w] = wallTopLeft
			data[row*w+w-1] = wallTopRight
		} else {
			data[row*w] = wallBottomLeft
			data[row*w+w-1] = wallBottomRight
		}
	}
	span(h-1, wallBottomLeft, wallBottom, wallBottomRight)
	return data
}

func buildShadows(w, h int) []uint32 {
	data := make([]uint32, w*h)
	data[wallRows*w+1] = shadowCorner
	for col := 2; col < w-1; col++ {
		data[wallRows*w+col] = shadowTop
	}
	for row := wallRows + 1; row < h-1; row++ {
		data[row*w+1] = shadowLeft
	}
	return data
}
