package maps

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  uint32
		want Cell
	}{
		{"empty", 0, Cell{}},
		{"plain gid", 6891, Cell{GID: 6891}},
		{"horizontal flip", 5 | FlipHorizontal, Cell{GID: 5, FlipH: true}},
		{"vertical flip", 5 | FlipVertical, Cell{GID: 5, FlipV: true}},
		{"diagonal flip", 5 | FlipDiagonal, Cell{GID: 5, FlipD: true}},
		{"all flags", 1881 | FlipHorizontal | FlipVertical | FlipDiagonal, Cell{GID: 1881, FlipH: true, FlipV: true, FlipD: true}},
		{"flags only", FlipHorizontal | FlipVertical, Cell{FlipH: true, FlipV: true}},
		{"max gid", GIDMask, Cell{GID: GIDMask}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			if got != tt.want {
				t.Errorf("Decode(%#x) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeFlagsOnlyIsEmpty(t *testing.T) {
	if !Decode(FlipHorizontal).Empty() {
		t.Error("a cell with only flag bits set should be empty")
	}
	if Decode(1).Empty() {
		t.Error("gid 1 should not be empty")
	}
}

func TestDecodeIdempotent(t *testing.T) {
	samples := []uint32{
		0, 1, 5, 4140, 6891, GIDMask,
		5 | FlipHorizontal,
		3000 | FlipVertical | FlipDiagonal,
		0xFFFFFFFF,
		0xDEADBEEF,
	}
	// Sweep a spread of values across the whole 32-bit range.
	for v := uint64(0); v <= 0xFFFFFFFF; v += 0x01234567 {
		samples = append(samples, uint32(v))
	}

	for _, raw := range samples {
		first := Decode(raw)
		if first.GID >= 1<<29 {
			t.Fatalf("Decode(%#x).GID = %d, outside [0, 2^29)", raw, first.GID)
		}
		if again := Decode(first.GID); again.GID != first.GID {
			t.Fatalf("decoding gid %d again gave %d", first.GID, again.GID)
		}
		if round := Decode(first.Raw()); round != first {
			t.Fatalf("Decode(Raw()) = %+v, want %+v", round, first)
		}
		if first.Raw() != raw {
			t.Fatalf("Raw() = %#x, want %#x", first.Raw(), raw)
		}
	}
}
