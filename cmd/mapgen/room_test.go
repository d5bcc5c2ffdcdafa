package main

import (
	"testing"

	"tilemap-inspect/internal/maps"
)

func TestBuildRoom(t *testing.T) {
	const w, h = 40, 30
	m, err := buildRoom(w, h, "sheets")
	if err != nil {
		t.Fatalf("buildRoom: %v", err)
	}

	if got := m.LayerNames(); len(got) != 3 || got[0] != "floor" || got[2] != "shadows" {
		t.Errorf("layers = %v", got)
	}
	if m.Tilesets[1].FirstGID != 601 || m.Tilesets[2].FirstGID != 1881 {
		t.Errorf("tilesets = %+v", m.Tilesets)
	}
	if m.Tilesets[0].Image != "sheets/Room_Builder_Floors_32x32.png" {
		t.Errorf("floor image = %q", m.Tilesets[0].Image)
	}

	st := maps.Analyze(m)
	counts := map[string]int{}
	for _, l := range st.Layers {
		counts[l.Name] = l.Occupied
	}
	want := map[string]int{
		"floor":   (h - wallRows - 1) * (w - 2),
		"walls":   3*w + 2*(h-wallRows-1),
		"shadows": 1 + (w - 3) + (h - wallRows - 2),
	}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("%s tiles = %d, want %d", name, counts[name], n)
		}
	}
	if st.Orphans != 0 {
		t.Errorf("%d cells belong to no tileset", st.Orphans)
	}
}

func TestRoomTiles(t *testing.T) {
	m, err := buildRoom(10, 10, "")
	if err != nil {
		t.Fatalf("buildRoom: %v", err)
	}
	walls, _ := m.Layer("walls")
	floor, _ := m.Layer("floor")
	shadows, _ := m.Layer("shadows")

	tests := []struct {
		name     string
		layer    *maps.Layer
		row, col int
		want     uint32
	}{
		{"back wall top-left", walls, 0, 0, wallTopLeft},
		{"back wall top", walls, 0, 5, wallTop},
		{"back wall bottom-right", walls, 1, 9, wallBottomRight},
		{"even side wall", walls, 2, 0, wallTopLeft},
		{"odd side wall", walls, 3, 9, wallBottomRight},
		{"bottom wall", walls, 9, 4, wallBottom},
		{"floor even row", floor, 2, 1, floorEven[2]},
		{"floor odd row", floor, 3, 1, floorOdd[2]},
		{"floor offset", floor, 4, 1, floorEven[0]},
		{"no floor under walls", floor, 1, 1, 0},
		{"shadow corner", shadows, 2, 1, shadowCorner},
		{"shadow top", shadows, 2, 2, shadowTop},
		{"shadow left", shadows, 3, 1, shadowLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layer.At(tt.row, tt.col); got != tt.want {
				t.Errorf("At(%d,%d) = %d, want %d", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	if w, h, err := parseSize("40x30"); err != nil || w != 40 || h != 30 {
		t.Errorf("parseSize(40x30) = %d, %d, %v", w, h, err)
	}
	for _, bad := range []string{"40", "3x10", "10xabc"} {
		if _, _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) should fail", bad)
		}
	}
}
