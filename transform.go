package assdraw

import "math"

// Transforms. Every method returns a new Shape; identity parameters return
// the receiver unchanged so callers comparing shapes see the same value.

// Move returns the shape translated by (dx, dy).
func (s Shape) Move(dx, dy float64) Shape {
	if dx == 0 && dy == 0 {
		return s
	}
	return s.Map(func(p Point, _ ElementKind) Point {
		return Pt(p.X+dx, p.Y+dy)
	})
}

// MoveToOrigin returns the shape translated so that the minimum corner of
// its bounding box sits at the origin. An empty shape is returned unchanged.
func (s Shape) MoveToOrigin() Shape {
	bbox, ok := s.Bounding(false)
	if !ok {
		return s
	}
	return s.Move(-bbox.Min.X, -bbox.Min.Y)
}

// Scale returns the shape scaled by sxPct and syPct percent around origin.
// 100 means unchanged on that axis; Scale(100, 100, ...) returns the
// receiver.
func (s Shape) Scale(sxPct, syPct float64, origin Point) Shape {
	if sxPct == 100 && syPct == 100 {
		return s
	}
	fx, fy := sxPct/100, syPct/100
	return s.Map(func(p Point, _ ElementKind) Point {
		return Pt(
			origin.X+(p.X-origin.X)*fx,
			origin.Y+(p.Y-origin.Y)*fy,
		)
	})
}

// Rotate returns the shape rotated by rx, ry and rz degrees around origin,
// which is treated as lying in the z=0 plane. Angles are clockwise-positive
// (the ASS authoring convention, opposite the mathematical one) and are
// composed in X, Y, Z axis order; the result is projected orthographically
// back onto z=0.
func (s Shape) Rotate(rx, ry, rz float64, origin Point) Shape {
	if rx == 0 && ry == 0 && rz == 0 {
		return s
	}
	// Clockwise-positive: negate before applying the standard
	// counter-clockwise rotation matrices.
	ax := -rx * math.Pi / 180
	ay := -ry * math.Pi / 180
	az := -rz * math.Pi / 180
	sinX, cosX := math.Sincos(ax)
	sinY, cosY := math.Sincos(ay)
	sinZ, cosZ := math.Sincos(az)

	return s.Map(func(p Point, _ ElementKind) Point {
		x := p.X - origin.X
		y := p.Y - origin.Y
		z := 0.0

		// X axis.
		y, z = y*cosX-z*sinX, y*sinX+z*cosX
		// Y axis.
		x, z = x*cosY+z*sinY, -x*sinY+z*cosY
		// Z axis, then drop z.
		x, y = x*cosZ-y*sinZ, x*sinZ+y*cosZ

		return Pt(x+origin.X, y+origin.Y)
	})
}

// Shear returns the shape sheared by factors fax (horizontal) and fay
// (vertical) around origin. Shear(0, 0, ...) returns the receiver.
func (s Shape) Shear(fax, fay float64, origin Point) Shape {
	if fax == 0 && fay == 0 {
		return s
	}
	return s.Map(func(p Point, _ ElementKind) Point {
		x := p.X - origin.X
		y := p.Y - origin.Y
		return Pt(x+fax*y+origin.X, fay*x+y+origin.Y)
	})
}

// maxFlattenDepth bounds Bezier subdivision so pathological high-curvature
// segments cannot recurse without limit.
const maxFlattenDepth = 16

// Flatten replaces every cubic Bezier element with a polyline whose internal
// turning angles are all within angleToleranceDeg of straight (De Casteljau
// midpoint subdivision). Non-Bezier elements pass through unchanged and the
// curve endpoint is preserved exactly. A non-positive tolerance defaults
// to 1 degree.
func (s Shape) Flatten(angleToleranceDeg float64) Shape {
	if angleToleranceDeg <= 0 {
		angleToleranceDeg = 1.0
	}

	out := make([]Element, 0, len(s.elements))
	var current Point
	haveCurrent := false

	for _, e := range s.elements {
		if e.Kind != KindBezier || !haveCurrent {
			out = append(out, e)
			if len(e.Points) > 0 {
				current = e.Points[len(e.Points)-1]
				haveCurrent = true
			}
			continue
		}
		c := NewCubicBez(current, e.Points[0], e.Points[1], e.Points[2])
		flattenBezier(c, angleToleranceDeg, 0, &out)
		current = e.Points[2]
	}
	return Shape{elements: out}
}

// flattenBezier recursively subdivides c, appending line elements for each
// flat-enough piece. The leaf emits the exact curve endpoint.
func flattenBezier(c CubicBez, tolDeg float64, depth int, out *[]Element) {
	if depth >= maxFlattenDepth || bezierIsFlat(c, tolDeg) {
		*out = append(*out, Element{Kind: KindLine, Points: []Point{c.P3}})
		return
	}
	c1, c2 := c.Subdivide()
	flattenBezier(c1, tolDeg, depth+1, out)
	flattenBezier(c2, tolDeg, depth+1, out)
}

// bezierIsFlat reports whether the angles between consecutive non-zero
// control polygon edges are all within tolDeg of straight.
func bezierIsFlat(c CubicBez, tolDeg float64) bool {
	vecs := make([]Point, 0, 3)
	for _, v := range []Point{c.P1.Sub(c.P0), c.P2.Sub(c.P1), c.P3.Sub(c.P2)} {
		if v.X != 0 || v.Y != 0 {
			vecs = append(vecs, v)
		}
	}
	for i := 1; i < len(vecs); i++ {
		if math.Abs(angleBetween(vecs[i-1], vecs[i])) > tolDeg {
			return false
		}
	}
	return true
}

// angleBetween returns the signed angle between two vectors in degrees.
func angleBetween(v1, v2 Point) float64 {
	denom := v1.Length() * v2.Length()
	if denom == 0 {
		return 0
	}
	cos := math.Max(-1, math.Min(1, v1.Dot(v2)/denom))
	angle := math.Acos(cos) * 180 / math.Pi
	if v1.Cross(v2) < 0 {
		return -angle
	}
	return angle
}

// Split flattens the shape, subdivides every line segment longer than
// maxSegLen into equal-length pieces, and geometrically closes every
// contour: a closing polyline back to the contour start is inserted at each
// "c" command, before each new "m", and at the end of the shape. The result
// is ready for polygon construction.
//
// Returns an error wrapping ErrInvalidArgument when maxSegLen <= 0.
func (s Shape) Split(maxSegLen, angleToleranceDeg float64) (Shape, error) {
	if maxSegLen <= 0 {
		return Shape{}, invalidf("assdraw: split: max segment length %v must be positive", maxSegLen)
	}
	flat := s.Flatten(angleToleranceDeg)

	out := make([]Element, 0, len(flat.elements))
	var current, contourStart Point
	haveCurrent := false
	contourOpen := false

	closeContour := func() {
		if contourOpen && haveCurrent && current != contourStart {
			appendSplitLine(&out, current, contourStart, maxSegLen)
			current = contourStart
		}
	}

	for _, e := range flat.elements {
		switch e.Kind {
		case KindMove:
			closeContour()
			contourStart = e.Points[0]
			current = e.Points[0]
			haveCurrent = true
			contourOpen = true
			out = append(out, e)
		case KindMoveNoClose:
			contourStart = e.Points[0]
			current = e.Points[0]
			haveCurrent = true
			contourOpen = true
			out = append(out, e)
		case KindLine:
			if haveCurrent {
				appendSplitLine(&out, current, e.Points[0], maxSegLen)
			} else {
				out = append(out, e)
			}
			current = e.Points[0]
			haveCurrent = true
		case KindClose:
			closeContour()
			contourOpen = false
		default:
			out = append(out, e)
			if len(e.Points) > 0 {
				current = e.Points[len(e.Points)-1]
				haveCurrent = true
			}
		}
	}
	closeContour()

	return Shape{elements: out}, nil
}

// appendSplitLine appends line elements from `from` to `to`, subdividing
// into equal pieces when the segment exceeds maxLen.
func appendSplitLine(out *[]Element, from, to Point, maxLen float64) {
	dist := from.Distance(to)
	if dist <= maxLen {
		*out = append(*out, Element{Kind: KindLine, Points: []Point{to}})
		return
	}
	n := int(math.Ceil(dist / maxLen))
	for i := 1; i < n; i++ {
		p := from.Lerp(to, float64(i)/float64(n))
		*out = append(*out, Element{Kind: KindLine, Points: []Point{p}})
	}
	// Final piece lands exactly on the endpoint.
	*out = append(*out, Element{Kind: KindLine, Points: []Point{to}})
}
