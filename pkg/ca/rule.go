package ca

import (
	"sort"
	"strconv"
	"strings"
)

// Rule computes a cell's next state code from its current code and the number
// of live neighbors. Implementations must be total over every byte and count
// and must not fail.
type Rule interface {
	Next(current uint8, live int) uint8
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(current uint8, live int) uint8

// Next calls f(current, live).
func (f RuleFunc) Next(current uint8, live int) uint8 { return f(current, live) }

// Conway3D is the reference 3D life rule: a Void or Structural cell with 4 to 7
// live neighbors becomes Structural, everything else becomes Void.
var Conway3D Rule = RuleFunc(conway3D)

func conway3D(current uint8, live int) uint8 {
	if (current == 0 || current == 1) && live >= 4 && live <= 7 {
		return 1
	}
	return 0
}

// CountRange is an inclusive range of neighbor counts.
type CountRange struct {
	Min, Max int
}

// CountSet is a set of neighbor counts stored as sorted, merged ranges.
type CountSet []CountRange

// NewCountSet normalizes the given ranges. Inverted ranges are swapped.
func NewCountSet(ranges ...CountRange) CountSet {
	out := make(CountSet, 0, len(ranges))
	for _, r := range ranges {
		if r.Min > r.Max {
			r.Min, r.Max = r.Max, r.Min
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Min < out[j].Min })
	merged := out[:0]
	for _, r := range out {
		if n := len(merged); n > 0 && r.Min <= merged[n-1].Max+1 {
			if r.Max > merged[n-1].Max {
				merged[n-1].Max = r.Max
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Contains reports whether n is in the set.
func (s CountSet) Contains(n int) bool {
	for _, r := range s {
		if n < r.Min {
			return false
		}
		if n <= r.Max {
			return true
		}
	}
	return false
}

// String renders the set as comma separated counts and dash ranges.
func (s CountSet) String() string {
	parts := make([]string, 0, len(s))
	for _, r := range s {
		if r.Min == r.Max {
			parts = append(parts, strconv.Itoa(r.Min))
			continue
		}
		parts = append(parts, strconv.Itoa(r.Min)+"-"+strconv.Itoa(r.Max))
	}
	return strings.Join(parts, ",")
}

// OuterTotalistic is a birth/survival rule. A Void cell whose live count is in
// Birth becomes Structural; a live cell whose count is in Survive keeps its
// code; every other cell becomes Void.
type OuterTotalistic struct {
	Birth   CountSet
	Survive CountSet
}

// Next implements Rule.
func (r OuterTotalistic) Next(current uint8, live int) uint8 {
	if current == 0 {
		if r.Birth.Contains(live) {
			return Structural.Byte()
		}
		return 0
	}
	if r.Survive.Contains(live) {
		return current
	}
	return 0
}

// String returns the rule in B/S notation.
func (r OuterTotalistic) String() string {
	return "B" + r.Birth.String() + "/S" + r.Survive.String()
}

// TableKey addresses one entry of a TableRule.
type TableKey struct {
	State uint8
	Live  int
}

// TableRule looks up the next state in an explicit table. Missing entries map
// to Default.
type TableRule struct {
	Table   map[TableKey]uint8
	Default uint8
}

// Next implements Rule.
func (r TableRule) Next(current uint8, live int) uint8 {
	if next, ok := r.Table[TableKey{State: current, Live: live}]; ok {
		return next
	}
	return r.Default
}
