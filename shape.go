package assdraw

import "math"

// Shape is an immutable ordered sequence of drawing elements.
//
// The zero value is the empty shape. Every transform returns a new Shape;
// no operation mutates a Shape in place, so Shapes may be shared freely
// between goroutines.
type Shape struct {
	elements []Element
}

// NewShape creates a Shape from a list of elements. The elements are deep
// copied. Returns an error if any element violates its arity rule.
func NewShape(elements []Element) (Shape, error) {
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		if err := e.checkArity(); err != nil {
			return Shape{}, err
		}
		out = append(out, e.clone())
	}
	return Shape{elements: out}, nil
}

// Elements returns the shape's elements. The returned slice is owned by the
// Shape and must not be modified.
func (s Shape) Elements() []Element {
	return s.elements
}

// Len returns the number of elements.
func (s Shape) Len() int {
	return len(s.elements)
}

// IsEmpty reports whether the shape has no elements.
func (s Shape) IsEmpty() bool {
	return len(s.elements) == 0
}

// String serializes the shape to its compact ASS drawing command form.
// Coordinates are truncated to 3 decimal places with trailing zeros
// stripped; re-parsing the result yields an element-equal shape.
func (s Shape) String() string {
	return serializeElements(s.elements)
}

// Equal reports element-wise equality of two shapes.
func (s Shape) Equal(other Shape) bool {
	if len(s.elements) != len(other.elements) {
		return false
	}
	for i, e := range s.elements {
		if !e.Equal(other.elements[i]) {
			return false
		}
	}
	return true
}

// Map applies fn to every coordinate of every element and returns the
// resulting shape. The element kind is passed alongside each point so
// deformations can treat, say, control points differently.
//
// Working on the outline points of a flattened and split shape, Map is the
// primitive for wobble and deform effects.
func (s Shape) Map(fn func(p Point, kind ElementKind) Point) Shape {
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		pts := make([]Point, len(e.Points))
		for j, p := range e.Points {
			pts[j] = fn(p, e.Kind)
		}
		out[i] = Element{Kind: e.Kind, Points: pts}
	}
	return Shape{elements: out}
}

// Bounding returns the axis-aligned bounding box of the shape and whether
// the shape contains any point at all.
//
// When exact is true, Bezier segments contribute their tight curve bounds
// (via derivative extrema); otherwise control points are included directly,
// which yields a superset of the true bounds. For shapes without curves the
// two agree.
func (s Shape) Bounding(exact bool) (Rect, bool) {
	var bbox Rect
	var current Point
	haveCurrent := false
	havePoint := false

	add := func(p Point) {
		if !havePoint {
			bbox = NewRect(p, p)
			havePoint = true
			return
		}
		bbox = bbox.expand(p)
	}

	for _, e := range s.elements {
		if e.Kind == KindBezier && exact && haveCurrent {
			c := NewCubicBez(current, e.Points[0], e.Points[1], e.Points[2])
			cb := c.BoundingBox()
			add(cb.Min)
			add(cb.Max)
			current = e.Points[2]
			continue
		}
		for _, p := range e.Points {
			add(p)
		}
		if len(e.Points) > 0 {
			current = e.Points[len(e.Points)-1]
			haveCurrent = true
		}
	}
	return bbox, havePoint
}

// -------------------------------------------------------------------
// ShapeBuilder
// -------------------------------------------------------------------

// ShapeBuilder accumulates drawing elements and produces an immutable Shape
// on finalization. The zero value is ready to use.
type ShapeBuilder struct {
	elements []Element
}

// MoveTo starts a new contour at (x, y), closing the previous one.
func (b *ShapeBuilder) MoveTo(x, y float64) *ShapeBuilder {
	b.elements = append(b.elements, Element{Kind: KindMove, Points: []Point{Pt(x, y)}})
	return b
}

// MoveToNoClose starts a new contour at (x, y) without closing the
// previous one.
func (b *ShapeBuilder) MoveToNoClose(x, y float64) *ShapeBuilder {
	b.elements = append(b.elements, Element{Kind: KindMoveNoClose, Points: []Point{Pt(x, y)}})
	return b
}

// LineTo draws a line to (x, y).
func (b *ShapeBuilder) LineTo(x, y float64) *ShapeBuilder {
	b.elements = append(b.elements, Element{Kind: KindLine, Points: []Point{Pt(x, y)}})
	return b
}

// CubicTo draws a cubic Bezier through control points (c1x, c1y) and
// (c2x, c2y) to endpoint (x, y).
func (b *ShapeBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *ShapeBuilder {
	b.elements = append(b.elements, Element{Kind: KindBezier, Points: []Point{
		Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y),
	}})
	return b
}

// SplineTo draws a cubic uniform b-spline through the given points.
// At least three points are required; fewer are silently dropped at
// finalization by NewShape's arity check, so callers should pass enough.
func (b *ShapeBuilder) SplineTo(points ...Point) *ShapeBuilder {
	pts := make([]Point, len(points))
	copy(pts, points)
	b.elements = append(b.elements, Element{Kind: KindSpline, Points: pts})
	return b
}

// Close closes the current contour.
func (b *ShapeBuilder) Close() *ShapeBuilder {
	b.elements = append(b.elements, Element{Kind: KindClose})
	return b
}

// Shape finalizes the builder into an immutable Shape. The builder may be
// reused afterwards; further calls do not affect the returned Shape.
func (b *ShapeBuilder) Shape() Shape {
	out := make([]Element, len(b.elements))
	for i, e := range b.elements {
		out[i] = e.clone()
	}
	return Shape{elements: out}
}

// -------------------------------------------------------------------
// Primitive shapes
// -------------------------------------------------------------------

// Rectangle returns a w by h rectangle anchored at the origin.
// A 1 by 1 rectangle is a single pixel.
func Rectangle(w, h float64) Shape {
	var b ShapeBuilder
	return b.MoveTo(0, 0).LineTo(w, 0).LineTo(w, h).LineTo(0, h).LineTo(0, 0).Shape()
}

// Triangle returns an equilateral triangle with the given side length,
// centered horizontally on size/2.
func Triangle(size float64) Shape {
	h := math.Sqrt(3) * size / 2
	base := -h / 6
	var b ShapeBuilder
	return b.MoveTo(size/2, base).
		LineTo(size, base+h).
		LineTo(0, base+h).
		LineTo(size/2, base).
		Shape()
}

// Ellipse returns an ellipse with the given width and height, anchored at
// the origin, approximated by four cubic Bezier quadrants.
func Ellipse(w, h float64) Shape {
	w2, h2 := w/2, h/2
	var b ShapeBuilder
	return b.MoveTo(0, h2).
		CubicTo(0, h2, 0, 0, w2, 0).
		CubicTo(w2, 0, w, 0, w, h2).
		CubicTo(w, h2, w, h, w2, h).
		CubicTo(w2, h, 0, h, 0, h2).
		Shape()
}

// Annulus returns a ring: an outer circle of radius outR with a concentric
// inner hole of radius inR. inR must be smaller than outR or an empty
// shape is returned.
func Annulus(outR, inR float64) Shape {
	if inR >= outR {
		return Shape{}
	}
	outR2, inR2 := outR*2, inR*2
	off := outR - inR
	offInR := off + inR
	offInR2 := off + inR2

	var b ShapeBuilder
	// Outer circle, clockwise.
	b.MoveTo(0, outR).
		CubicTo(0, outR, 0, 0, outR, 0).
		CubicTo(outR, 0, outR2, 0, outR2, outR).
		CubicTo(outR2, outR, outR2, outR2, outR, outR2).
		CubicTo(outR, outR2, 0, outR2, 0, outR)
	// Inner circle, opposite winding so it reads as a hole.
	b.MoveTo(off, offInR).
		CubicTo(off, offInR, off, offInR2, offInR, offInR2).
		CubicTo(offInR, offInR2, offInR2, offInR2, offInR2, offInR).
		CubicTo(offInR2, offInR, offInR2, off, offInR, off).
		CubicTo(offInR, off, off, off, off, offInR)
	return b.Shape()
}

// heartTemplate is a 30x30 heart outline scaled by Heart.
const heartTemplate = "m 15 30 b 27 22 30 18 30 14 30 8 22 0 15 10 8 0 0 8 0 14 0 18 3 22 15 30"

// Heart returns a heart shape of the given size (width and height).
// voffset shifts the midpoint between the two lobes vertically, deepening
// or flattening the cleft.
func Heart(size, voffset float64) Shape {
	mult := size / 30
	shape := MustParse(heartTemplate).Map(func(p Point, _ ElementKind) Point {
		return Pt(p.X*mult, p.Y*mult)
	})

	// The 7th coordinate pair is the cleft between the lobes.
	count := 0
	return shape.Map(func(p Point, _ ElementKind) Point {
		count++
		if count == 7 {
			return Pt(p.X, p.Y+voffset)
		}
		return p
	})
}
