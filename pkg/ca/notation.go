package ca

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// Rule notation: "B<counts>/S<counts>", where counts is a comma separated list
// of neighbor counts and inclusive ranges, e.g. "B4-7/S4-7" or "B3/S2,3".
// Either list may be empty.
type notationExpr struct {
	Birth   *countList `"B" @@?`
	Survive *countList `"/" "S" @@?`
}

type countList struct {
	Items []*countItem `@@ ( "," @@ )*`
}

type countItem struct {
	Min int  `@Int`
	Max *int `( "-" @Int )?`
}

var notationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Letter", `[BS]`},
	{"Int", `[0-9]+`},
	{"Punct", `[-/,]`},
	{"Whitespace", `[ \t]+`},
})

var parseNotation = participle.MustBuild[notationExpr](
	participle.Lexer(notationLexer),
	participle.Elide("Whitespace"),
)

// ParseNotation parses a B/S rule string into an OuterTotalistic rule.
func ParseNotation(s string) (OuterTotalistic, error) {
	expr, err := parseNotation.ParseString("", strings.ToUpper(s))
	if err != nil {
		return OuterTotalistic{}, errors.Wrapf(ErrBadNotation, "%q: %v", s, err)
	}
	return OuterTotalistic{
		Birth:   expr.Birth.set(),
		Survive: expr.Survive.set(),
	}, nil
}

// MustParseNotation is ParseNotation for rule literals known to be valid.
func MustParseNotation(s string) OuterTotalistic {
	r, err := ParseNotation(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (l *countList) set() CountSet {
	if l == nil {
		return CountSet{}
	}
	ranges := make([]CountRange, 0, len(l.Items))
	for _, it := range l.Items {
		r := CountRange{Min: it.Min, Max: it.Min}
		if it.Max != nil {
			r.Max = *it.Max
		}
		ranges = append(ranges, r)
	}
	return NewCountSet(ranges...)
}
