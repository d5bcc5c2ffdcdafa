package render

import (
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// HalfBlocks downsamples img to cols columns and packs two pixel rows into
// each text row. The aspect ratio is preserved; rows is always at least 1.
func HalfBlocks(img image.Image, cols int) [][]Cell {
	b := img.Bounds()
	if cols < 1 || b.Empty() {
		return nil
	}
	pxH := b.Dy() * cols / b.Dx()
	if pxH < 2 {
		pxH = 2
	}
	pxH += pxH % 2

	small := image.NewRGBA(image.Rect(0, 0, cols, pxH))
	xdraw.NearestNeighbor.Scale(small, small.Bounds(), img, b, xdraw.Src, nil)

	grid := make([][]Cell, pxH/2)
	for row := range grid {
		grid[row] = make([]Cell, cols)
		for col := 0; col < cols; col++ {
			top := small.RGBAAt(col, row*2)
			bot := small.RGBAAt(col, row*2+1)
			grid[row][col] = Cell{
				Ch:  HalfBlock,
				FgR: top.R, FgG: top.G, FgB: top.B,
				BgR: bot.R, BgG: bot.G, BgB: bot.B,
			}
		}
	}
	return grid
}

// FitHalfBlocks picks a column count so the preview fits a cols x rows
// terminal, then renders it.
func FitHalfBlocks(img image.Image, cols, rows int) [][]Cell {
	b := img.Bounds()
	if cols < 1 || rows < 1 || b.Empty() {
		return nil
	}
	// Each text row holds two pixel rows.
	if byHeight := 2 * rows * b.Dx() / b.Dy(); byHeight < cols {
		cols = byHeight
	}
	if cols < 1 {
		cols = 1
	}
	return HalfBlocks(img, cols)
}

// WriteFrame renders a cell grid positioned at the top-left corner. When
// absolute is false rows are separated by newlines instead of cursor moves.
func WriteFrame(grid [][]Cell, absolute bool) string {
	var sb strings.Builder
	if len(grid) > 0 {
		sb.Grow(len(grid) * len(grid[0]) * 24)
	}
	for y, line := range grid {
		if absolute {
			sb.WriteString(MoveTo(y+1, 1))
		}
		for _, c := range line {
			WriteCellSGR(&sb, c)
		}
		sb.WriteString(Reset)
		if !absolute {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
