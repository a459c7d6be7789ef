package assdraw

import "fmt"

// ElementKind identifies a drawing command in the ASS drawing language.
type ElementKind uint8

// The full ASS drawing command alphabet.
const (
	// KindMove starts a new contour, closing the previous one ("m").
	KindMove ElementKind = iota
	// KindMoveNoClose starts a new contour without closing the previous
	// one ("n").
	KindMoveNoClose
	// KindLine draws a straight line to a point ("l"). A textual "l" run
	// with several coordinate pairs decomposes into one element per pair.
	KindLine
	// KindExtendSpline extends the previous b-spline by one point ("p").
	KindExtendSpline
	// KindBezier draws a cubic Bezier: two control points and an
	// endpoint ("b"). The curve start is the current point.
	KindBezier
	// KindSpline draws a cubic uniform b-spline through three or more
	// points ("s").
	KindSpline
	// KindClose closes the current contour ("c"). Takes no coordinates.
	KindClose
)

// Command returns the single-letter ASS command for the kind.
func (k ElementKind) Command() string {
	switch k {
	case KindMove:
		return "m"
	case KindMoveNoClose:
		return "n"
	case KindLine:
		return "l"
	case KindExtendSpline:
		return "p"
	case KindBezier:
		return "b"
	case KindSpline:
		return "s"
	case KindClose:
		return "c"
	}
	return "?"
}

// String implements fmt.Stringer.
func (k ElementKind) String() string { return k.Command() }

// kindForCommand maps a command token to its ElementKind.
func kindForCommand(tok string) (ElementKind, bool) {
	switch tok {
	case "m":
		return KindMove, true
	case "n":
		return KindMoveNoClose, true
	case "l":
		return KindLine, true
	case "p":
		return KindExtendSpline, true
	case "b":
		return KindBezier, true
	case "s":
		return KindSpline, true
	case "c":
		return KindClose, true
	}
	return 0, false
}

// Element is a single drawing element: a command plus its coordinates.
// Elements are value types owned by a Shape; the point slice of an Element
// taken from a Shape must not be mutated.
type Element struct {
	Kind   ElementKind
	Points []Point
}

// checkArity validates the coordinate-pair count for the element's kind.
func (e Element) checkArity() error {
	n := len(e.Points)
	switch e.Kind {
	case KindMove, KindMoveNoClose, KindExtendSpline, KindLine:
		if n != 1 {
			return fmt.Errorf("command %q takes exactly 1 point, got %d", e.Kind, n)
		}
	case KindBezier:
		if n != 3 {
			return fmt.Errorf("command %q takes exactly 3 points, got %d", e.Kind, n)
		}
	case KindSpline:
		if n < 3 {
			return fmt.Errorf("command %q takes at least 3 points, got %d", e.Kind, n)
		}
	case KindClose:
		if n != 0 {
			return fmt.Errorf("command %q takes no points, got %d", e.Kind, n)
		}
	default:
		return fmt.Errorf("unknown element kind %d", e.Kind)
	}
	return nil
}

// Equal reports whether two elements have the same kind and identical
// coordinates.
func (e Element) Equal(other Element) bool {
	if e.Kind != other.Kind || len(e.Points) != len(other.Points) {
		return false
	}
	for i, p := range e.Points {
		if p != other.Points[i] {
			return false
		}
	}
	return true
}

// clone returns a deep copy of the element.
func (e Element) clone() Element {
	pts := make([]Point, len(e.Points))
	copy(pts, e.Points)
	return Element{Kind: e.Kind, Points: pts}
}
