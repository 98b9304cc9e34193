package ca

import (
	"errors"
	"testing"
)

func TestParseNotation(t *testing.T) {
	tests := []struct {
		in      string
		birth   []int
		survive []int
		str     string
	}{
		{"B4-7/S4-7", []int{4, 5, 6, 7}, []int{4, 5, 6, 7}, "B4-7/S4-7"},
		{"b3/s2,3", []int{3}, []int{2, 3}, "B3/S2-3"},
		{"B 5 , 7 / S 10-12", []int{5, 7}, []int{10, 11, 12}, "B5,7/S10-12"},
		{"B/S", nil, nil, "B/S"},
		{"B6-4/S", []int{4, 5, 6}, nil, "B4-6/S"},
	}
	for _, tt := range tests {
		r, err := ParseNotation(tt.in)
		if err != nil {
			t.Fatalf("ParseNotation(%q): %v", tt.in, err)
		}
		for n := 0; n <= 26; n++ {
			if r.Birth.Contains(n) != containsInt(tt.birth, n) {
				t.Fatalf("%q: birth contains %d = %v", tt.in, n, r.Birth.Contains(n))
			}
			if r.Survive.Contains(n) != containsInt(tt.survive, n) {
				t.Fatalf("%q: survive contains %d = %v", tt.in, n, r.Survive.Contains(n))
			}
		}
		if r.String() != tt.str {
			t.Errorf("%q renders as %q, want %q", tt.in, r.String(), tt.str)
		}
	}
}

func TestParseNotationErrors(t *testing.T) {
	for _, in := range []string{"", "4-7/S4", "B4-7", "B4-/S1", "X1/S2"} {
		if _, err := ParseNotation(in); !errors.Is(err, ErrBadNotation) {
			t.Errorf("ParseNotation(%q) err = %v, want ErrBadNotation", in, err)
		}
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
