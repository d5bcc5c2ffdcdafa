package main

import (
	"image"
	"strings"
	"testing"

	"tilemap-inspect/internal/collision"
)

func TestTableAlignsWideRunes(t *testing.T) {
	tb := newTable("name", "n", "bar").alignRight(1)
	tb.add("floor", "4", "██")
	tb.add("walls", "12", "█")

	var sb strings.Builder
	tb.write(&sb)
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), sb.String())
	}
	want := []string{
		"  name    n  bar",
		"  floor   4  ██",
		"  walls  12  █",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(1, 2); got != strings.Repeat("█", 25) {
		t.Errorf("bar(1, 2) = %q", got)
	}
	if bar(1, 0) != "" || percent(1, 0) != "-" {
		t.Error("zero total should render empty")
	}
	if got := percent(1, 4); got != "25.0%" {
		t.Errorf("percent(1, 4) = %q", got)
	}
}

func TestFootprint(t *testing.T) {
	a := collision.Annotation{Row: 2, Col: 3, Shape: collision.ShapeBottom}
	if got := footprint(a, 32, 32); got != image.Rect(96, 80, 128, 96) {
		t.Errorf("footprint = %v", got)
	}
}

func TestJoinGIDs(t *testing.T) {
	if got := joinGIDs([]uint32{1, 2, 3}, 2); got != "1, 2, ... (1 more)" {
		t.Errorf("joinGIDs = %q", got)
	}
}

func TestPortOf(t *testing.T) {
	if got := portOf(":2222"); got != "2222" {
		t.Errorf("portOf(:2222) = %q", got)
	}
	if got := portOf("localhost"); got != "localhost" {
		t.Errorf("portOf(localhost) = %q", got)
	}
}
