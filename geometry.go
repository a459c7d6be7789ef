package assdraw

import "math"

// Ring is one closed loop of points: a shell or a hole. The closing edge
// from the last vertex back to the first is implicit.
type Ring []Point

// SignedArea returns the shoelace area of the ring. In the y-down screen
// coordinate system used by ASS, a positive value means the ring winds
// clockwise on screen.
func (r Ring) SignedArea() float64 {
	var area float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += r[i].Cross(r[j])
	}
	return area / 2
}

// Area returns the absolute enclosed area.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// IsClockwise reports whether the ring winds clockwise on screen
// (y pointing down).
func (r Ring) IsClockwise() bool {
	return r.SignedArea() > 0
}

// Reversed returns the ring with opposite winding.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// Perimeter returns the total edge length including the closing edge.
func (r Ring) Perimeter() float64 {
	var total float64
	n := len(r)
	for i := 0; i < n; i++ {
		total += r[i].Distance(r[(i+1)%n])
	}
	return total
}

// Centroid returns the area-weighted centroid of the ring. Degenerate
// (near-zero-area) rings fall back to the vertex mean.
func (r Ring) Centroid() Point {
	if len(r) == 0 {
		return Point{}
	}
	a := r.SignedArea()
	if math.Abs(a) < 1e-12 {
		var sum Point
		for _, p := range r {
			sum = sum.Add(p)
		}
		return sum.Div(float64(len(r)))
	}

	var cx, cy float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := r[i].Cross(r[j])
		cx += (r[i].X + r[j].X) * cross
		cy += (r[i].Y + r[j].Y) * cross
	}
	return Pt(cx/(6*a), cy/(6*a))
}

// Contains reports whether p lies strictly inside the ring, using ray
// crossing with a horizontal ray to the right.
func (r Ring) Contains(p Point) bool {
	inside := false
	n := len(r)
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// clone returns a copy of the ring.
func (r Ring) clone() Ring {
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// -------------------------------------------------------------------
// Perimeter resampling
// -------------------------------------------------------------------

// resampleRing resamples the ring to exactly target vertices by inserting
// additional vertices along its edges, proportionally to edge length, with
// the remainder going to the edges with the largest fractional allocation.
// Every original vertex is preserved exactly; only new interpolation points
// are inserted between them. Requires target >= len(r).
func resampleRing(r Ring, target int) Ring {
	n := len(r)
	if n == 0 {
		return nil
	}
	if target <= n {
		return r.clone()
	}

	lengths := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		lengths[i] = r[i].Distance(r[(i+1)%n])
		total += lengths[i]
	}
	if total == 0 {
		out := make(Ring, target)
		for i := range out {
			out[i] = r[0]
		}
		return out
	}

	extra := target - n
	alloc := make([]int, n)
	frac := make([]float64, n)
	assigned := 0
	for i := 0; i < n; i++ {
		exact := float64(extra) * lengths[i] / total
		alloc[i] = int(exact)
		frac[i] = exact - float64(alloc[i])
		assigned += alloc[i]
	}
	// Largest-remainder distribution of the leftover insertions.
	for assigned < extra {
		best := -1
		for i := 0; i < n; i++ {
			if best == -1 || frac[i] > frac[best] {
				best = i
			}
		}
		alloc[best]++
		frac[best] = -1
		assigned++
	}

	out := make(Ring, 0, target)
	for i := 0; i < n; i++ {
		out = append(out, r[i])
		next := r[(i+1)%n]
		for j := 1; j <= alloc[i]; j++ {
			out = append(out, r[i].Lerp(next, float64(j)/float64(alloc[i]+1)))
		}
	}
	if len(out) != target {
		internalf("resample produced %d vertices, want %d", len(out), target)
	}
	return out
}

// -------------------------------------------------------------------
// Rotation and winding alignment
// -------------------------------------------------------------------

// alignmentChunkDivisor controls the coarse rotation search: candidate
// offsets are spaced n/alignmentChunkDivisor apart (about 5% of the
// perimeter) before the fine refinement pass.
const alignmentChunkDivisor = 20

// alignRing reorders tgt (flipping its winding and rotating its start
// vertex) to minimize the summed per-vertex distance to src. Both rings
// must have the same vertex count.
func alignRing(src, tgt Ring) Ring {
	n := len(tgt)
	if len(src) != n {
		internalf("align: ring length mismatch %d != %d", len(src), n)
	}
	if n == 0 {
		return nil
	}

	variants := []Ring{tgt, tgt.Reversed()}
	bestCost := math.Inf(1)
	var bestVariant Ring
	bestOffset := 0

	cost := func(v Ring, off int) float64 {
		var c float64
		for i := 0; i < n; i++ {
			c += src[i].Distance(v[(i+off)%n])
			if c >= bestCost {
				return math.Inf(1)
			}
		}
		return c
	}

	step := n / alignmentChunkDivisor
	if step < 1 {
		step = 1
	}
	for _, v := range variants {
		for off := 0; off < n; off += step {
			if c := cost(v, off); c < bestCost {
				bestCost = c
				bestVariant = v
				bestOffset = off
			}
		}
	}
	// Fine refinement around the coarse winner.
	if step > 1 {
		center := bestOffset
		for d := -step + 1; d < step; d++ {
			off := ((center+d)%n + n) % n
			if c := cost(bestVariant, off); c < bestCost {
				bestCost = c
				bestOffset = off
			}
		}
	}

	out := make(Ring, n)
	for i := 0; i < n; i++ {
		out[i] = bestVariant[(i+bestOffset)%n]
	}
	return out
}
