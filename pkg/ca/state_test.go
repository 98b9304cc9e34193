package ca

import "testing"

func TestDecodeRoundTrip(t *testing.T) {
	for _, s := range []CellState{Void, Structural, Compute, Energy, Sensor} {
		if got := Decode(s.Byte()); got != s {
			t.Fatalf("Decode(%d) = %v, want %v", s.Byte(), got, s)
		}
	}
	if Compute.Byte() != 2 {
		t.Fatalf("Compute encodes to %d, want 2", Compute.Byte())
	}
}

func TestDecodeUnknownIsVoid(t *testing.T) {
	for _, b := range []uint8{5, 6, 42, 255} {
		if got := Decode(b); got != Void {
			t.Fatalf("Decode(%d) = %v, want void", b, got)
		}
	}
}

func TestParseCellState(t *testing.T) {
	tests := []struct {
		in   string
		want CellState
		ok   bool
	}{
		{"void", Void, true},
		{"Structural", Structural, true},
		{" SENSOR ", Sensor, true},
		{"energy", Energy, true},
		{"plasma", Void, false},
	}
	for _, tt := range tests {
		got, ok := ParseCellState(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCellState(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if Structural.String() != "structural" || !Structural.IsLive() || Void.IsLive() {
		t.Fatal("unexpected string or liveness for canonical states")
	}
}
