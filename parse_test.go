package assdraw

import (
	"errors"
	"math"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		elements int
	}{
		{"single move", "m 0 0", 1},
		{"move and line", "m 0 0 l 10 0", 2},
		{"line decomposition", "m 0 0 l 10 0 10 10 0 10", 4},
		{"bezier triple", "m 0 0 b 1 1 2 2 3 3", 2},
		{"two bezier segments", "m 0 0 b 1 1 2 2 3 3 4 4 5 5 6 6", 3},
		{"spline", "m 0 0 s 1 1 2 2 3 3", 2},
		{"extend spline", "m 0 0 s 1 1 2 2 3 3 p 4 4", 3},
		{"close", "m 0 0 l 10 0 10 10 c", 4},
		{"move no close", "n 5 5 l 10 5", 2},
		{"negative and fractional", "m -1.5 2.25 l 3.125 -4", 2},
		{"extra whitespace", "  m   0	0   l  10  0  ", 2},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if shape.Len() != tt.elements {
				t.Errorf("Parse(%q) = %d elements, want %d", tt.input, shape.Len(), tt.elements)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unrecognized command", "m 0 0 q 1 1"},
		{"invalid coordinate", "m 0 x"},
		{"coordinate before command", "1 2 m 0 0"},
		{"odd coordinate count", "m 0 0 l 1 2 3"},
		{"move arity", "m 0 0 1 1"},
		{"bezier not multiple of three", "m 0 0 b 1 1 2 2"},
		{"bezier without start point", "b 1 1 2 2 3 3"},
		{"spline too short", "m 0 0 s 1 1 2 2"},
		{"close with coordinates", "m 0 0 c 1 1"},
		{"empty line command", "m 0 0 l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("Parse(%q) error type %T, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestParse_LineDecomposition(t *testing.T) {
	shape := MustParse("m 0 0 l 10 0 10 10 0 10")
	want := []ElementKind{KindMove, KindLine, KindLine, KindLine}
	elements := shape.Elements()
	if len(elements) != len(want) {
		t.Fatalf("got %d elements, want %d", len(elements), len(want))
	}
	for i, e := range elements {
		if e.Kind != want[i] {
			t.Errorf("element %d kind = %v, want %v", i, e.Kind, want[i])
		}
		if len(e.Points) != 1 {
			t.Errorf("element %d has %d points, want 1", i, len(e.Points))
		}
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"rectangle", "m 0 0 l 10 0 10 10 0 10"},
		{"bezier", "m 0 0 b 1 1 2 2 3 3"},
		{"mixed", "m 0 0 l 5 0 b 6 0 7 1 7 2 l 7 10 c"},
		{"spline with extend", "m 0 0 s 1 1 2 2 3 3 p 4 4 c"},
		{"fractional", "m 0.5 -1.25 l 3.875 2"},
		{"no close start", "n 1 2 l 3 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := MustParse(tt.input)
			second, err := Parse(first.String())
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", first.String(), err)
			}
			if !first.Equal(second) {
				t.Errorf("round trip changed shape: %q -> %q", tt.input, second.String())
			}
		})
	}
}

func TestSerialize_ImplicitContinuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lines share one l", "m 0 0 l 10 0 l 10 10 l 0 10", "m 0 0 l 10 0 10 10 0 10"},
		{"beziers share one b", "m 0 0 b 1 1 2 2 3 3 b 4 4 5 5 6 6", "m 0 0 b 1 1 2 2 3 3 4 4 5 5 6 6"},
		{"close breaks the run", "m 0 0 l 1 0 c", "m 0 0 l 1 0 c"},
		{"kind change restates command", "m 0 0 l 1 0 b 2 0 3 1 3 2 l 0 2", "m 0 0 l 1 0 b 2 0 3 1 3 2 l 0 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.input).String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"integer", 10, "10"},
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"truncates to three decimals", 1.23456, "1.234"},
		{"strips trailing zeros", 2.5, "2.5"},
		{"strips trailing dot", 3.0001, "3"},
		{"negative", -4.125, "-4.125"},
		{"keeps exact representation", 2.675, "2.675"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCoord(tt.v); got != tt.want {
				t.Errorf("formatCoord(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}
