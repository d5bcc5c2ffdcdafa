package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table prints aligned columns. Widths are measured in terminal cells so
// block bars and wide runes line up.
type table struct {
	header []string
	rows   [][]string
	right  map[int]bool // right-aligned columns
}

func newTable(header ...string) *table {
	return &table{header: header, right: make(map[int]bool)}
}

func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) {
	widths := make([]int, len(t.header))
	for _, row := range append([][]string{t.header}, t.rows...) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(row []string) {
		var sb strings.Builder
		sb.WriteString("  ")
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			switch {
			case t.right[i]:
				sb.WriteString(runewidth.FillLeft(cell, widths[i]))
			case i == len(row)-1:
				sb.WriteString(cell)
			default:
				sb.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		fmt.Fprintln(w, sb.String())
	}

	line(t.header)
	for _, row := range t.rows {
		line(row)
	}
}

// bar draws a proportional block bar, one cell per two percent.
func bar(part, total int) string {
	if total == 0 {
		return ""
	}
	pct := float64(part) / float64(total) * 100
	return strings.Repeat("█", int(pct/2))
}

func percent(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
