package ca

import "testing"

func TestOuterTotalisticKeepsLiveCode(t *testing.T) {
	r := MustParseNotation("B4-7/S4-7")
	if got := r.Next(Sensor.Byte(), 5); got != Sensor.Byte() {
		t.Fatalf("survivor = %d, want sensor code kept", got)
	}
	if got := r.Next(0, 5); got != Structural.Byte() {
		t.Fatalf("birth = %d, want structural", got)
	}
	if got := r.Next(Energy.Byte(), 3); got != 0 {
		t.Fatalf("death = %d, want void", got)
	}
}

func TestOuterTotalisticMatchesConwayOnBinaryStates(t *testing.T) {
	r := MustParseNotation("B4-7/S4-7")
	for cur := uint8(0); cur <= 1; cur++ {
		for live := 0; live <= 26; live++ {
			if r.Next(cur, live) != Conway3D.Next(cur, live) {
				t.Fatalf("(%d,%d): notation rule %d, conway %d", cur, live, r.Next(cur, live), Conway3D.Next(cur, live))
			}
		}
	}
}

func TestCountSetMerge(t *testing.T) {
	s := NewCountSet(CountRange{5, 6}, CountRange{1, 2}, CountRange{3, 3}, CountRange{10, 8})
	if got := s.String(); got != "1-3,5-6,8-10" {
		t.Fatalf("merged set = %q, want 1-3,5-6,8-10", got)
	}
	if s.Contains(4) || s.Contains(7) || !s.Contains(3) || !s.Contains(9) || s.Contains(0) {
		t.Fatal("unexpected membership")
	}
}

func TestTableRule(t *testing.T) {
	r := TableRule{
		Table:   map[TableKey]uint8{{State: 0, Live: 3}: 2, {State: 2, Live: 1}: 3},
		Default: 0,
	}
	if r.Next(0, 3) != 2 || r.Next(2, 1) != 3 || r.Next(2, 2) != 0 || r.Next(200, 3) != 0 {
		t.Fatal("table lookup mismatch")
	}
}
