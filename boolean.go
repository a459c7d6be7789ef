package assdraw

import (
	polyclip "github.com/ctessum/polyclip-go"
)

// Op selects a planar boolean set operation.
type Op int

// Boolean set operations.
const (
	OpUnion Op = iota
	OpIntersection
	OpDifference
	OpXor
)

// String implements fmt.Stringer.
func (op Op) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpDifference:
		return "difference"
	case OpXor:
		return "xor"
	}
	return "unknown"
}

// clipOp maps an Op onto the clipping library's operation.
func (op Op) clipOp() (polyclip.Op, bool) {
	switch op {
	case OpUnion:
		return polyclip.UNION, true
	case OpIntersection:
		return polyclip.INTERSECTION, true
	case OpDifference:
		return polyclip.DIFFERENCE, true
	case OpXor:
		return polyclip.XOR, true
	}
	return 0, false
}

// Boolean returns the planar set combination of s and other. Both operands
// are converted to polygon sets (curves flattened with angleToleranceDeg),
// combined, and converted back with minPointSpacing vertex thinning.
//
// Degenerate results (zero area, point or line intersections) yield an
// empty Shape with a nil error. An unrecognized op returns an error
// wrapping ErrInvalidArgument.
func (s Shape) Boolean(other Shape, op Op, angleToleranceDeg, minPointSpacing float64) (Shape, error) {
	cop, ok := op.clipOp()
	if !ok {
		return Shape{}, invalidf("assdraw: boolean: unrecognized op %d", int(op))
	}

	subject := s.Polygons(angleToleranceDeg)
	clip := other.Polygons(angleToleranceDeg)

	// The clipping library expects non-empty operands; degenerate cases
	// reduce to copies or the empty shape.
	if len(subject) == 0 && len(clip) == 0 {
		return Shape{}, nil
	}
	if len(subject) == 0 {
		switch op {
		case OpUnion, OpXor:
			return ShapeFromPolygons(clip, minPointSpacing), nil
		default:
			return Shape{}, nil
		}
	}
	if len(clip) == 0 {
		switch op {
		case OpIntersection:
			return Shape{}, nil
		default:
			return ShapeFromPolygons(subject, minPointSpacing), nil
		}
	}

	result := compoundsToClip(subject).Construct(cop, compoundsToClip(clip))
	compounds := nestRings(clipRings(result))
	return ShapeFromPolygons(compounds, minPointSpacing), nil
}

// compoundsToClip converts a polygon set to the clipping library's
// representation: one contour per shell and per hole.
func compoundsToClip(cs []Compound) polyclip.Polygon {
	var poly polyclip.Polygon
	for _, c := range cs {
		poly = append(poly, ringToContour(c.Shell))
		for _, h := range c.Holes {
			poly = append(poly, ringToContour(h))
		}
	}
	return poly
}

func ringToContour(r Ring) polyclip.Contour {
	contour := make(polyclip.Contour, len(r))
	for i, p := range r {
		contour[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return contour
}

// clipRings converts a clipping result back to rings, dropping degenerate
// contours with fewer than three vertices.
func clipRings(poly polyclip.Polygon) []Ring {
	var rings []Ring
	for _, contour := range poly {
		if len(contour) < 3 {
			continue
		}
		r := make(Ring, len(contour))
		for i, p := range contour {
			r[i] = Pt(p.X, p.Y)
		}
		if r.Area() > 0 {
			rings = append(rings, r)
		}
	}
	return rings
}

// overlapArea returns the intersection area of two rings, used by the
// morph pairing cost.
func overlapArea(a, b Ring) float64 {
	if len(a) < 3 || len(b) < 3 {
		return 0
	}
	result := polyclip.Polygon{ringToContour(a)}.Construct(
		polyclip.INTERSECTION, polyclip.Polygon{ringToContour(b)})
	var area float64
	for _, r := range clipRings(result) {
		area += r.Area()
	}
	return area
}
