package brain

import (
	"testing"

	"uft-ca/pkg/ca"
)

func TestFiringCycle(t *testing.T) {
	b := New(Config{Width: 5, Height: 5, Depth: 1, Birth: "2"})
	w := b.Size().W
	at := func(x, y int) uint8 { return b.Cells()[y*w+x] }
	b.Cells()[2*w+1] = stateFiring.Byte()
	b.Cells()[2*w+3] = stateFiring.Byte()

	b.Step()
	for _, c := range [][2]int{{2, 1}, {2, 2}, {2, 3}} {
		if got := at(c[0], c[1]); got != stateFiring.Byte() {
			t.Fatalf("cell %v = %d, want firing", c, got)
		}
	}
	if at(1, 2) != stateRefractory.Byte() || at(3, 2) != stateRefractory.Byte() {
		t.Fatal("fired cells did not turn refractory")
	}
	if at(0, 2) != stateDead.Byte() {
		t.Fatal("cell with one live neighbor fired")
	}

	b.Step()
	if at(1, 2) != stateDead.Byte() || at(2, 2) != stateRefractory.Byte() {
		t.Fatalf("second step: (1,2)=%d (2,2)=%d", at(1, 2), at(2, 2))
	}
	if b.Tick() != 2 {
		t.Fatalf("tick = %d", b.Tick())
	}
}

func TestRuleTable(t *testing.T) {
	r := Rule(ca.NewCountSet(ca.CountRange{Min: 3, Max: 4}))
	cases := []struct {
		cur  ca.CellState
		live int
		want ca.CellState
	}{
		{stateDead, 3, stateFiring},
		{stateDead, 5, stateDead},
		{stateFiring, 0, stateRefractory},
		{stateFiring, 26, stateRefractory},
		{stateRefractory, 3, stateDead},
		{ca.Structural, 3, stateDead},
	}
	for _, tc := range cases {
		if got := r.Next(tc.cur.Byte(), tc.live); got != tc.want.Byte() {
			t.Errorf("Next(%v, %d) = %d, want %v", tc.cur, tc.live, got, tc.want)
		}
	}
}

func TestFromMapFallbacks(t *testing.T) {
	c := FromMap(map[string]string{"w": "10", "d": "0", "birth": "3-4", "density": "1.5"})
	if c.Width != 10 || c.Depth != 1 || c.Birth != "3-4" || c.Density != DefaultConfig().Density {
		t.Fatalf("config = %+v", c)
	}
	if got := New(Config{Width: 2, Height: 2, Depth: 1, Birth: "x"}).birth.String(); got != "2" {
		t.Fatalf("fallback birth = %q", got)
	}
}
