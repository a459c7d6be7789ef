package assdraw

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseError describes a malformed ASS drawing string.
type ParseError struct {
	// Pos is the index of the offending token in the input, or the index
	// of the last token of the offending command group.
	Pos int
	// Token is the offending token, if any.
	Token string
	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("assdraw: parse: %s (token %q at %d)", e.Msg, e.Token, e.Pos)
	}
	return fmt.Sprintf("assdraw: parse: %s (at token %d)", e.Msg, e.Pos)
}

// Parse converts an ASS drawing command string into a Shape.
//
// The input is a whitespace-separated token stream. A token matching the
// command alphabet m, n, l, p, b, s, c starts a new command group that
// consumes the numeric tokens following it. Commands m, n and p take exactly
// one coordinate pair; l takes one or more pairs, each becoming its own line
// element; b takes a multiple of three pairs, each triple becoming one cubic
// Bezier element; s takes three or more pairs; c takes none.
//
// Parse returns a *ParseError for a non-numeric coordinate, an unrecognized
// command letter, an odd coordinate count, or an arity violation.
func Parse(text string) (Shape, error) {
	tokens := strings.Fields(text)

	var elements []Element
	var coords []float64
	groupKind := KindClose
	groupStart := -1
	haveGroup := false
	havePoint := false

	flush := func(end int) error {
		if !haveGroup {
			return nil
		}
		if len(coords)%2 != 0 {
			return &ParseError{Pos: end, Msg: fmt.Sprintf("command %q has an odd number of coordinates", groupKind)}
		}
		pairs := make([]Point, 0, len(coords)/2)
		for i := 0; i+1 < len(coords); i += 2 {
			pairs = append(pairs, Pt(coords[i], coords[i+1]))
		}
		n := len(pairs)

		switch groupKind {
		case KindMove, KindMoveNoClose, KindExtendSpline:
			if n != 1 {
				return &ParseError{Pos: groupStart, Msg: fmt.Sprintf("command %q takes exactly 1 coordinate pair, got %d", groupKind, n)}
			}
			elements = append(elements, Element{Kind: groupKind, Points: pairs})
		case KindLine:
			if n < 1 {
				return &ParseError{Pos: groupStart, Msg: "command \"l\" takes at least 1 coordinate pair"}
			}
			for _, p := range pairs {
				elements = append(elements, Element{Kind: KindLine, Points: []Point{p}})
			}
		case KindBezier:
			if n < 3 || n%3 != 0 {
				return &ParseError{Pos: groupStart, Msg: fmt.Sprintf("command \"b\" takes a positive multiple of 3 coordinate pairs, got %d", n)}
			}
			if !havePoint {
				return &ParseError{Pos: groupStart, Msg: "command \"b\" requires a preceding point as curve start"}
			}
			for i := 0; i+2 < n; i += 3 {
				elements = append(elements, Element{Kind: KindBezier, Points: pairs[i : i+3 : i+3]})
			}
		case KindSpline:
			if n < 3 {
				return &ParseError{Pos: groupStart, Msg: fmt.Sprintf("command \"s\" takes at least 3 coordinate pairs, got %d", n)}
			}
			elements = append(elements, Element{Kind: KindSpline, Points: pairs})
		case KindClose:
			if n != 0 {
				return &ParseError{Pos: groupStart, Msg: fmt.Sprintf("command \"c\" takes no coordinates, got %d pairs", n)}
			}
			elements = append(elements, Element{Kind: KindClose})
		}
		if n > 0 {
			havePoint = true
		}
		coords = coords[:0]
		return nil
	}

	for i, tok := range tokens {
		if kind, ok := kindForCommand(tok); ok {
			if err := flush(i); err != nil {
				return Shape{}, err
			}
			groupKind = kind
			groupStart = i
			haveGroup = true
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			if len(tok) == 1 && tok[0] >= 'a' && tok[0] <= 'z' {
				return Shape{}, &ParseError{Pos: i, Token: tok, Msg: "unrecognized command"}
			}
			return Shape{}, &ParseError{Pos: i, Token: tok, Msg: "invalid coordinate"}
		}
		if !haveGroup {
			return Shape{}, &ParseError{Pos: i, Token: tok, Msg: "coordinate before any command"}
		}
		coords = append(coords, v)
	}
	if err := flush(len(tokens)); err != nil {
		return Shape{}, err
	}

	return Shape{elements: elements}, nil
}

// MustParse is like Parse but panics on error. Intended for shape literals
// in tests and examples.
func MustParse(text string) Shape {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

// formatCoord formats a coordinate for serialization: truncated to 3 decimal
// places, trailing zeros and a trailing dot stripped, negative zero
// normalized to "0".
func formatCoord(v float64) string {
	// Nudge before truncating so values like 2.675 that sit just under
	// their decimal representation do not lose a digit.
	t := math.Trunc(v*1000+math.Copysign(1e-6, v)) / 1000
	if t == 0 {
		return "0"
	}
	s := strconv.FormatFloat(t, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// serializeElements renders elements in the compact ASS authoring
// convention: consecutive line and Bezier elements omit the repeated
// command letter.
func serializeElements(elements []Element) string {
	var sb strings.Builder
	prevKind := KindClose
	first := true

	for _, e := range elements {
		if !first {
			sb.WriteByte(' ')
		}
		implicit := !first && e.Kind == prevKind &&
			(e.Kind == KindLine || e.Kind == KindBezier)
		if !implicit {
			sb.WriteString(e.Kind.Command())
			if len(e.Points) > 0 {
				sb.WriteByte(' ')
			}
		}
		for i, p := range e.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatCoord(p.X))
			sb.WriteByte(' ')
			sb.WriteString(formatCoord(p.Y))
		}
		prevKind = e.Kind
		first = false
	}
	return sb.String()
}
