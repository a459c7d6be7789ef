package assdraw

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	polyclip "github.com/ctessum/polyclip-go"
)

// overlapCandidateLimit bounds how many low-cost candidates per ring get
// the exact overlap term of the pairing cost; all other pairs are charged
// the maximum overlap penalty instead of computing an intersection.
const overlapCandidateLimit = 8

// MorphOptions configures shape morphing.
type MorphOptions struct {
	// MaxSegmentLength is the maximum edge length used when splitting
	// shapes into dense polygons before pairing. Default: 16
	MaxSegmentLength float64

	// AngleTolerance is the curve flattening tolerance in degrees.
	// Default: 1.0
	AngleTolerance float64

	// MinPointSpacing thins the recomposed output: a vertex is dropped
	// when both coordinate deltas from the previous kept vertex fall
	// below this distance. Zero keeps every vertex.
	MinPointSpacing float64

	// CostThreshold rejects ring pairings whose matching cost exceeds
	// it; rejected rings fall back to grow/shrink transitions.
	// Default: 2.0
	CostThreshold float64

	// CentroidWeight, AreaWeight and OverlapWeight weigh the three
	// terms of the pairing cost: normalized centroid distance, relative
	// area difference and overlap deficit.
	// Defaults: 1.0, 0.5, 0.5
	CentroidWeight float64
	AreaWeight     float64
	OverlapWeight  float64

	// EnsureShellPairs force-pairs every shell left unmatched after
	// cost thresholding to its cheapest counterpart, reusing rings if
	// needed, so visible outlines always morph into something. Holes
	// are never force-paired.
	EnsureShellPairs bool

	// GrowthOrigin anchors grow/shrink transitions of unmatched rings.
	// When nil, an unmatched ring uses the nearest ring centroid from
	// the other side, or its own centroid if that side is empty.
	GrowthOrigin *Point

	// Cache memoizes decomposition and pairing across calls that sample
	// the same transition at many progress values. Nil disables caching.
	Cache *MorphCache
}

// DefaultMorphOptions returns the default morphing configuration.
func DefaultMorphOptions() MorphOptions {
	return MorphOptions{
		MaxSegmentLength: 16,
		AngleTolerance:   1.0,
		CostThreshold:    2.0,
		CentroidWeight:   1.0,
		AreaWeight:       0.5,
		OverlapWeight:    0.5,
		EnsureShellPairs: true,
	}
}

// normalized fills zero-valued tunables with their defaults and rejects
// negative ones.
func (o MorphOptions) normalized() (MorphOptions, error) {
	d := DefaultMorphOptions()
	if o.MaxSegmentLength <= 0 {
		o.MaxSegmentLength = d.MaxSegmentLength
	}
	if o.AngleTolerance <= 0 {
		o.AngleTolerance = d.AngleTolerance
	}
	if o.CostThreshold <= 0 {
		o.CostThreshold = d.CostThreshold
	}
	if o.CentroidWeight < 0 || o.AreaWeight < 0 || o.OverlapWeight < 0 {
		return o, invalidf("assdraw: morph: pairing weights must be non-negative")
	}
	if o.CentroidWeight == 0 && o.AreaWeight == 0 && o.OverlapWeight == 0 {
		o.CentroidWeight = d.CentroidWeight
		o.AreaWeight = d.AreaWeight
		o.OverlapWeight = d.OverlapWeight
	}
	if o.MinPointSpacing < 0 {
		return o, invalidf("assdraw: morph: min point spacing %g must be >= 0", o.MinPointSpacing)
	}
	return o, nil
}

// hash folds every tunable that shapes a morph plan into a cache key
// component. The cache pointer itself is excluded.
func (o MorphOptions) hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%g|%g|%g|%g|%g|%g|%g|%t",
		o.MaxSegmentLength, o.AngleTolerance, o.MinPointSpacing,
		o.CostThreshold, o.CentroidWeight, o.AreaWeight, o.OverlapWeight,
		o.EnsureShellPairs)
	if o.GrowthOrigin != nil {
		fmt.Fprintf(h, "|%g,%g", o.GrowthOrigin.X, o.GrowthOrigin.Y)
	}
	return h.Sum64()
}

// GroupPair identifies one output group of a multi-shape morph: the
// source and target shape IDs its rings belong to. An empty string means
// the group has no shape on that side (appearing or disappearing
// geometry).
type GroupPair struct {
	Source string
	Target string
}

// morphPairKind classifies one prepared ring transition.
type morphPairKind int

const (
	pairMatched morphPairKind = iota
	pairDisappearing
	pairAppearing
)

// morphPair is one ring transition of a prepared plan. Matched pairs
// carry both rings resampled to a common vertex count with the target
// winding- and rotation-aligned to the source; one-sided pairs carry a
// single ring plus the reference point of their grow/shrink transition.
type morphPair struct {
	kind     morphPairKind
	src, tgt Ring
	hole     bool
	srcID    string
	tgtID    string
	ref      Point
	centroid Point
}

// morphPlan is the sampled-many-times product of Decompose, Pair and
// Resample. It is immutable after construction and safe to share.
type morphPlan struct {
	pairs []morphPair
}

// labeledRing is one decomposed ring tagged with its role and owner.
type labeledRing struct {
	ring     Ring
	hole     bool
	owner    string
	area     float64
	centroid Point
}

// MorphShapes interpolates between two named shape collections at
// progress t in [0,1] and returns the intermediate geometry grouped by
// the (source ID, target ID) pairing the engine established. An empty ID
// on either side of a group key marks geometry that is appearing or
// disappearing during the transition.
//
// At t=0 the source shapes are returned unchanged and at t=1 the target
// shapes are, exactly, with no interpolation applied.
func MorphShapes(sources, targets map[string]Shape, t float64, opts MorphOptions) (map[GroupPair]Shape, error) {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return nil, invalidf("assdraw: morph: progress %g outside [0,1]", t)
	}
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	if t == 0 {
		out := make(map[GroupPair]Shape, len(sources))
		for id, sh := range sources {
			out[GroupPair{Source: id}] = sh
		}
		return out, nil
	}
	if t == 1 {
		out := make(map[GroupPair]Shape, len(targets))
		for id, sh := range targets {
			out[GroupPair{Target: id}] = sh
		}
		return out, nil
	}

	var plan *morphPlan
	if opts.Cache != nil {
		key := morphCacheKey{
			source: hashShapes(sources),
			target: hashShapes(targets),
			params: opts.hash(),
		}
		plan = opts.Cache.getOrCreate(key, func() *morphPlan {
			return buildMorphPlan(sources, targets, opts)
		})
	} else {
		plan = buildMorphPlan(sources, targets, opts)
	}

	return recompose(plan.sample(t), opts.MinPointSpacing), nil
}

// Morph interpolates between two single shapes at progress t in [0,1],
// unioning all resulting groups into one shape. It is the convenience
// form of MorphShapes for callers without named collections.
func Morph(source, target Shape, t float64, opts MorphOptions) (Shape, error) {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return Shape{}, invalidf("assdraw: morph: progress %g outside [0,1]", t)
	}
	if t == 0 {
		return source, nil
	}
	if t == 1 {
		return target, nil
	}

	groups, err := MorphShapes(
		map[string]Shape{"shape": source},
		map[string]Shape{"shape": target},
		t, opts,
	)
	if err != nil {
		return Shape{}, err
	}

	keys := make([]GroupPair, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].Target < keys[j].Target
	})

	normalized, err := opts.normalized()
	if err != nil {
		return Shape{}, err
	}
	var out Shape
	for _, k := range keys {
		g := groups[k]
		if g.IsEmpty() {
			continue
		}
		if out.IsEmpty() {
			out = g
			continue
		}
		out, err = out.Boolean(g, OpUnion, normalized.AngleTolerance, normalized.MinPointSpacing)
		if err != nil {
			return Shape{}, err
		}
	}
	return out, nil
}

// hashShapes produces a structural hash of a named shape collection,
// independent of map iteration order.
func hashShapes(shapes map[string]Shape) uint64 {
	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := fnv.New64a()
	for _, id := range ids {
		fmt.Fprintf(h, "%s=%s;", id, shapes[id].String())
	}
	return h.Sum64()
}

// -------------------------------------------------------------------
// Decompose and Pair
// -------------------------------------------------------------------

// buildMorphPlan runs the Decompose, Pair and Resample stages for one
// source/target collection pair. Options must already be normalized.
func buildMorphPlan(sources, targets map[string]Shape, opts MorphOptions) *morphPlan {
	src := decomposeShapes(sources, opts)
	tgt := decomposeShapes(targets, opts)

	plan := &morphPlan{}
	pairSide := func(srcIdx, tgtIdx []int, shells bool) {
		matches, openSrc, openTgt := pairRings(src, tgt, srcIdx, tgtIdx, shells && opts.EnsureShellPairs, opts)
		for _, m := range matches {
			plan.pairs = append(plan.pairs, preparePair(src[m[0]], tgt[m[1]]))
		}
		for _, i := range openSrc {
			plan.pairs = append(plan.pairs, prepareOneSided(src[i], tgt, pairDisappearing, opts))
		}
		for _, j := range openTgt {
			plan.pairs = append(plan.pairs, prepareOneSided(tgt[j], src, pairAppearing, opts))
		}
	}

	srcShells, srcHoles := splitByRole(src)
	tgtShells, tgtHoles := splitByRole(tgt)
	pairSide(srcShells, tgtShells, true)
	pairSide(srcHoles, tgtHoles, false)

	matched := 0
	for _, p := range plan.pairs {
		if p.kind == pairMatched {
			matched++
		}
	}
	Logger().Debug("morph plan",
		"source_rings", len(src), "target_rings", len(tgt),
		"matched", matched, "one_sided", len(plan.pairs)-matched)
	return plan
}

// decomposeShapes splits every shape into dense polygons and labels each
// shell and hole ring with its owning shape ID. Shape IDs are visited in
// sorted order so plans are deterministic.
func decomposeShapes(shapes map[string]Shape, opts MorphOptions) []labeledRing {
	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rings []labeledRing
	add := func(r Ring, hole bool, owner string) {
		a := r.Area()
		if len(r) < 3 || a == 0 {
			return
		}
		rings = append(rings, labeledRing{
			ring:     r,
			hole:     hole,
			owner:    owner,
			area:     a,
			centroid: r.Centroid(),
		})
	}
	for _, id := range ids {
		dense, err := shapes[id].Split(opts.MaxSegmentLength, opts.AngleTolerance)
		if err != nil {
			internalf("morph: split: %v", err)
		}
		for _, c := range dense.Polygons(opts.AngleTolerance) {
			add(c.Shell, false, id)
			for _, h := range c.Holes {
				add(h, true, id)
			}
		}
	}
	return rings
}

// splitByRole partitions ring indices into shells and holes.
func splitByRole(rings []labeledRing) (shells, holes []int) {
	for i, r := range rings {
		if r.hole {
			holes = append(holes, i)
		} else {
			shells = append(shells, i)
		}
	}
	return shells, holes
}

// pairRings matches source rings against target rings by minimum-cost
// assignment. It returns index pairs into the full src/tgt slices for
// accepted matches plus the indices left unmatched on each side.
func pairRings(src, tgt []labeledRing, srcIdx, tgtIdx []int, forcePairs bool, opts MorphOptions) (matches [][2]int, openSrc, openTgt []int) {
	if len(srcIdx) == 0 || len(tgtIdx) == 0 {
		return nil, srcIdx, tgtIdx
	}

	cost := pairingCosts(src, tgt, srcIdx, tgtIdx, opts)
	assigned := minCostAssignment(cost)

	tgtUsed := make([]bool, len(tgtIdx))
	srcOpen := make([]bool, len(srcIdx))
	for i, j := range assigned {
		if j >= 0 && cost[i][j] <= opts.CostThreshold {
			matches = append(matches, [2]int{srcIdx[i], tgtIdx[j]})
			tgtUsed[j] = true
		} else {
			srcOpen[i] = true
		}
	}

	cheapest := func(row []float64) int {
		best := 0
		for j := 1; j < len(row); j++ {
			if row[j] < row[best] {
				best = j
			}
		}
		return best
	}
	if forcePairs {
		// Every shell morphs into something; ring reuse is allowed.
		for i := range srcIdx {
			if !srcOpen[i] {
				continue
			}
			j := cheapest(cost[i])
			matches = append(matches, [2]int{srcIdx[i], tgtIdx[j]})
			tgtUsed[j] = true
			srcOpen[i] = false
		}
		for j := range tgtIdx {
			if tgtUsed[j] {
				continue
			}
			bestI := 0
			for i := 1; i < len(srcIdx); i++ {
				if cost[i][j] < cost[bestI][j] {
					bestI = i
				}
			}
			matches = append(matches, [2]int{srcIdx[bestI], tgtIdx[j]})
			tgtUsed[j] = true
		}
	}

	for i, open := range srcOpen {
		if open {
			openSrc = append(openSrc, srcIdx[i])
		}
	}
	for j, used := range tgtUsed {
		if !used {
			openTgt = append(openTgt, tgtIdx[j])
		}
	}
	return matches, openSrc, openTgt
}

// pairingCosts builds the weighted cost matrix between the selected
// source and target rings. The exact overlap term is computed only for
// each ring's lowest base-cost candidates; every other pair is charged
// the full overlap penalty.
func pairingCosts(src, tgt []labeledRing, srcIdx, tgtIdx []int, opts MorphOptions) [][]float64 {
	cost := make([][]float64, len(srcIdx))
	for i, si := range srcIdx {
		a := src[si]
		row := make([]float64, len(tgtIdx))
		for j, tj := range tgtIdx {
			b := tgt[tj]
			maxArea := math.Max(a.area, b.area)
			centroidTerm := a.centroid.Distance(b.centroid) / math.Sqrt(math.Max(maxArea, 1e-9))
			areaTerm := math.Abs(a.area-b.area) / math.Max(maxArea, 1e-9)
			row[j] = opts.CentroidWeight*centroidTerm + opts.AreaWeight*areaTerm
		}

		// Exact overlap only for the most promising candidates.
		order := make([]int, len(row))
		for j := range order {
			order[j] = j
		}
		sort.Slice(order, func(x, y int) bool { return row[order[x]] < row[order[y]] })
		limit := len(order)
		if limit > overlapCandidateLimit {
			limit = overlapCandidateLimit
		}
		exact := make([]bool, len(row))
		for _, j := range order[:limit] {
			b := tgt[tgtIdx[j]]
			minArea := math.Max(math.Min(a.area, b.area), 1e-9)
			inter := overlapArea(a.ring, b.ring)
			row[j] += opts.OverlapWeight * (1 - math.Min(inter/minArea, 1))
			exact[j] = true
		}
		for j := range row {
			if !exact[j] {
				row[j] += opts.OverlapWeight
			}
		}
		cost[i] = row
	}
	return cost
}

// -------------------------------------------------------------------
// Resample and Interpolate
// -------------------------------------------------------------------

// preparePair resamples a matched pair to a common vertex count and
// aligns the target's winding and rotation to the source.
func preparePair(a, b labeledRing) morphPair {
	n := len(a.ring)
	if len(b.ring) > n {
		n = len(b.ring)
	}
	if n < 4 {
		n = 4
	}
	src := resampleRing(a.ring, n)
	tgt := alignRing(src, resampleRing(b.ring, n))
	return morphPair{
		kind:  pairMatched,
		src:   src,
		tgt:   tgt,
		hole:  a.hole && b.hole,
		srcID: a.owner,
		tgtID: b.owner,
	}
}

// prepareOneSided builds the grow or shrink transition for a ring with no
// counterpart. The reference point is the configured growth origin, the
// nearest ring centroid from the other side, or the ring's own centroid
// when that side is empty.
func prepareOneSided(r labeledRing, other []labeledRing, kind morphPairKind, opts MorphOptions) morphPair {
	ref := r.centroid
	if opts.GrowthOrigin != nil {
		ref = *opts.GrowthOrigin
	} else if len(other) > 0 {
		best := 0
		bestDist := math.Inf(1)
		for i, o := range other {
			if d := r.centroid.Distance(o.centroid); d < bestDist {
				bestDist = d
				best = i
			}
		}
		ref = other[best].centroid
	}

	p := morphPair{
		kind:     kind,
		hole:     r.hole,
		ref:      ref,
		centroid: r.centroid,
	}
	if kind == pairDisappearing {
		p.src = r.ring
		p.srcID = r.owner
	} else {
		p.tgt = r.ring
		p.tgtID = r.owner
	}
	return p
}

// sampledRing is one interpolated ring at a specific progress value.
type sampledRing struct {
	ring  Ring
	hole  bool
	srcID string
	tgtID string
}

// sample interpolates every prepared pair at progress t.
func (p *morphPlan) sample(t float64) []sampledRing {
	out := make([]sampledRing, 0, len(p.pairs))
	for _, pair := range p.pairs {
		var ring Ring
		switch pair.kind {
		case pairMatched:
			if len(pair.src) != len(pair.tgt) {
				internalf("morph: matched ring lengths %d != %d", len(pair.src), len(pair.tgt))
			}
			ring = make(Ring, len(pair.src))
			for i := range pair.src {
				ring[i] = pair.src[i].Lerp(pair.tgt[i], t)
			}
		case pairDisappearing:
			// Collapse toward the centroid while drifting to the
			// reference; degenerate at t=1.
			dest := pair.centroid.Lerp(pair.ref, t)
			ring = make(Ring, len(pair.src))
			for i, v := range pair.src {
				ring[i] = v.Lerp(dest, t)
			}
		case pairAppearing:
			// Mirror of the disappearing case: degenerate at t=0,
			// full size at t=1.
			origin := pair.ref.Lerp(pair.centroid, t)
			ring = make(Ring, len(pair.tgt))
			for i, v := range pair.tgt {
				ring[i] = origin.Lerp(v, t)
			}
		}
		if len(ring) < 3 || ring.Area() == 0 {
			continue
		}
		out = append(out, sampledRing{
			ring:  ring,
			hole:  pair.hole,
			srcID: pair.srcID,
			tgtID: pair.tgtID,
		})
	}
	return out
}

// -------------------------------------------------------------------
// Recompose
// -------------------------------------------------------------------

// recompose merges sampled rings into per-group shapes. Rings are grouped
// by their (source ID, target ID) pair; one-sided holes cut across every
// group's geometry rather than being confined to their own group.
func recompose(rings []sampledRing, minPointSpacing float64) map[GroupPair]Shape {
	var globalHoles []Ring
	shells := make(map[GroupPair][]Ring)
	holes := make(map[GroupPair][]Ring)
	var order []GroupPair

	for _, r := range rings {
		if r.hole && (r.srcID == "" || r.tgtID == "") {
			globalHoles = append(globalHoles, r.ring)
			continue
		}
		key := GroupPair{Source: r.srcID, Target: r.tgtID}
		if r.hole {
			holes[key] = append(holes[key], r.ring)
			continue
		}
		if _, ok := shells[key]; !ok {
			order = append(order, key)
		}
		shells[key] = append(shells[key], r.ring)
	}

	out := make(map[GroupPair]Shape, len(order))
	for _, key := range order {
		merged := polyclip.Polygon{ringToContour(shells[key][0])}
		for _, s := range shells[key][1:] {
			merged = merged.Construct(polyclip.UNION, polyclip.Polygon{ringToContour(s)})
		}
		cut := append(append([]Ring(nil), holes[key]...), globalHoles...)
		if len(cut) > 0 {
			var clip polyclip.Polygon
			for _, h := range cut {
				clip = append(clip, ringToContour(h))
			}
			merged = merged.Construct(polyclip.DIFFERENCE, clip)
		}
		shape := ShapeFromPolygons(nestRings(clipRings(merged)), minPointSpacing)
		if !shape.IsEmpty() {
			out[key] = shape
		}
	}
	return out
}
