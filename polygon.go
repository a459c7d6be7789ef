package assdraw

import (
	"math"
	"sort"
)

// Compound is a polygon with holes: one shell ring and zero or more hole
// rings fully contained in it.
type Compound struct {
	Shell Ring
	Holes []Ring
}

// Centroid returns the centroid of the compound's shell.
func (c Compound) Centroid() Point {
	return c.Shell.Centroid()
}

// Area returns the shell area minus the hole areas.
func (c Compound) Area() float64 {
	a := c.Shell.Area()
	for _, h := range c.Holes {
		a -= h.Area()
	}
	return a
}

// Polygons converts the shape into a set of polygons-with-holes: curves are
// flattened with angleToleranceDeg, closed point loops are extracted (one
// per move command), exact duplicates are removed, and the loops are nested
// into shells and holes by containment, larger loops considered as shell
// candidates first.
//
// The nesting is a one-level heuristic: a loop contained in an accepted
// shell becomes that shell's hole. Behavior for doubly-nested geometry
// (an island inside a hole) is undefined.
func (s Shape) Polygons(angleToleranceDeg float64) []Compound {
	loops := s.Flatten(angleToleranceDeg).loops()
	return nestRings(dedupRings(loops))
}

// loops extracts the closed point loops of an already-flattened shape.
// A loop starts at each move command and collects every drawn point;
// loops with fewer than three distinct points are dropped.
func (s Shape) loops() []Ring {
	var rings []Ring
	var current Ring

	flush := func() {
		current = trimClosingPoint(current)
		if len(current) >= 3 {
			rings = append(rings, current)
		}
		current = nil
	}

	for _, e := range s.elements {
		switch e.Kind {
		case KindMove, KindMoveNoClose:
			flush()
			current = Ring{e.Points[0]}
		case KindClose:
			flush()
		default:
			for _, p := range e.Points {
				if len(current) == 0 || current[len(current)-1] != p {
					current = append(current, p)
				}
			}
		}
	}
	flush()
	return rings
}

// trimClosingPoint drops a repeated final vertex so rings never duplicate
// their start point.
func trimClosingPoint(r Ring) Ring {
	if len(r) >= 2 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// dedupRings removes exact duplicate loops, comparing vertices rounded to
// 3 decimal places.
func dedupRings(rings []Ring) []Ring {
	seen := make(map[string]struct{}, len(rings))
	out := rings[:0]
	for _, r := range rings {
		key := ringKey(r)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ringKey builds a comparison key from vertices rounded to 3 decimals.
func ringKey(r Ring) string {
	buf := make([]byte, 0, len(r)*16)
	for _, p := range r {
		x := int64(math.Round(p.X * 1000))
		y := int64(math.Round(p.Y * 1000))
		for i := 0; i < 8; i++ {
			buf = append(buf, byte(x>>(8*i)))
		}
		for i := 0; i < 8; i++ {
			buf = append(buf, byte(y>>(8*i)))
		}
	}
	return string(buf)
}

// nestRings assigns each ring as either a new shell or a hole of the first
// previously accepted shell that contains it, in order of descending
// absolute area.
func nestRings(rings []Ring) []Compound {
	sorted := make([]Ring, len(rings))
	copy(sorted, rings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	var compounds []Compound
	for _, r := range sorted {
		placed := false
		for i := range compounds {
			if ringInside(r, compounds[i].Shell) {
				compounds[i].Holes = append(compounds[i].Holes, r)
				placed = true
				break
			}
		}
		if !placed {
			compounds = append(compounds, Compound{Shell: r})
		}
	}
	return compounds
}

// ringInside reports whether ring r lies inside shell. It samples up to
// five evenly spaced vertices and requires a strict majority inside, which
// tolerates vertices that sit exactly on a shared boundary.
func ringInside(r, shell Ring) bool {
	if len(r) == 0 {
		return false
	}
	samples := len(r)
	if samples > 5 {
		samples = 5
	}
	inside := 0
	for i := 0; i < samples; i++ {
		p := r[i*len(r)/samples]
		if shell.Contains(p) {
			inside++
		}
	}
	return inside*2 > samples
}

// ShapeFromPolygons converts a polygon set back into a Shape. Shells are
// emitted as clockwise closed loops and holes as counter-clockwise loops
// (orientation is normalized, not inherited). Vertices are thinned: a
// vertex is dropped when both its axis deltas from the last emitted vertex
// are below minPointSpacing. An empty set yields an empty Shape.
func ShapeFromPolygons(compounds []Compound, minPointSpacing float64) Shape {
	var b ShapeBuilder
	empty := true
	for _, c := range compounds {
		if len(c.Shell) < 3 {
			continue
		}
		empty = false
		emitLoop(&b, orientRing(c.Shell, true), minPointSpacing)
		for _, h := range c.Holes {
			if len(h) >= 3 {
				emitLoop(&b, orientRing(h, false), minPointSpacing)
			}
		}
	}
	if empty {
		return Shape{}
	}
	return b.Shape()
}

// orientRing returns the ring wound clockwise or counter-clockwise.
func orientRing(r Ring, clockwise bool) Ring {
	if r.IsClockwise() != clockwise {
		return r.Reversed()
	}
	return r
}

// emitLoop writes one closed loop as a move plus thinned line elements,
// ending back at the start point.
func emitLoop(b *ShapeBuilder, r Ring, minSpacing float64) {
	b.MoveTo(r[0].X, r[0].Y)
	last := r[0]
	for _, p := range r[1:] {
		if minSpacing > 0 &&
			math.Abs(p.X-last.X) < minSpacing &&
			math.Abs(p.Y-last.Y) < minSpacing {
			continue
		}
		b.LineTo(p.X, p.Y)
		last = p
	}
	if last != r[0] {
		b.LineTo(r[0].X, r[0].Y)
	}
}
