package assdraw

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"sort"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// rasterFlattenTolerance is the curve flattening angle used when building
// the rasterization polygon set.
const rasterFlattenTolerance = 1.0

// Rasterize converts a shape into a collection of alpha-weighted pixels
// using supersampled coverage anti-aliasing.
//
// The shape's polygon set is scaled by the supersampling factor, shifted
// into the non-negative quadrant and filled on the high-resolution grid by
// nonzero-winding scanlines sampled at cell centers. Each output pixel sums
// the coverage of supersampling² cells; its alpha is
// round((N²-coverage)·255/N²) in ASS's inverted convention, so full
// coverage is opaque (alpha 0). Fully transparent cells are omitted and
// coordinates are truncated back to the original frame.
//
// An empty or degenerate shape yields an empty collection. A supersampling
// factor below 1 returns an error wrapping ErrInvalidArgument.
func Rasterize(shape Shape, supersampling int) (PixelCollection, error) {
	if supersampling < 1 {
		return nil, invalidf("assdraw: rasterize: supersampling %d must be >= 1", supersampling)
	}
	compounds := shape.Polygons(rasterFlattenTolerance)
	if len(compounds) == 0 {
		return PixelCollection{}, nil
	}

	ss := float64(supersampling)

	// Collect normalized rings (shells clockwise, holes opposite) so the
	// nonzero winding fill respects holes, scaled to the supersampled grid.
	var rings []Ring
	minPt := Pt(math.Inf(1), math.Inf(1))
	maxPt := Pt(math.Inf(-1), math.Inf(-1))
	addRing := func(r Ring) {
		scaled := make(Ring, len(r))
		for i, p := range r {
			scaled[i] = p.Mul(ss)
			minPt.X = math.Min(minPt.X, scaled[i].X)
			minPt.Y = math.Min(minPt.Y, scaled[i].Y)
			maxPt.X = math.Max(maxPt.X, scaled[i].X)
			maxPt.Y = math.Max(maxPt.Y, scaled[i].Y)
		}
		rings = append(rings, scaled)
	}
	for _, c := range compounds {
		addRing(orientRing(c.Shell, true))
		for _, h := range c.Holes {
			addRing(orientRing(h, false))
		}
	}

	// Shift into the non-negative quadrant, aligned to a supersampled
	// block boundary so downsampled coordinates stay integral.
	shiftX := -(minPt.X - floorMod(minPt.X, ss))
	shiftY := -(minPt.Y - floorMod(minPt.Y, ss))
	width := int(math.Ceil((maxPt.X+shiftX)/ss)) * supersampling
	height := int(math.Ceil((maxPt.Y+shiftY)/ss)) * supersampling
	if width <= 0 || height <= 0 {
		return PixelCollection{}, nil
	}
	Logger().Debug("rasterize grid",
		"width", width, "height", height, "supersampling", supersampling)

	// Non-horizontal edges as (origin, direction) with winding direction.
	type edge struct {
		x, y, vx, vy float64
		dir          int
	}
	var edges []edge
	for _, r := range rings {
		for i := range r {
			a := r[i].Add(Pt(shiftX, shiftY))
			b := r[(i+1)%len(r)].Add(Pt(shiftX, shiftY))
			if a.Y == b.Y {
				continue
			}
			dir := 1
			if b.Y < a.Y {
				dir = -1
			}
			edges = append(edges, edge{a.X, a.Y, b.X - a.X, b.Y - a.Y, dir})
		}
	}

	grid := make([]bool, width*height)
	type stop struct {
		x   float64
		dir int
	}
	stops := make([]stop, 0, 16)
	for y := 0; y < height; y++ {
		cy := float64(y) + 0.5
		stops = stops[:0]
		for _, e := range edges {
			s := (cy - e.y) / e.vy
			if s >= 0 && s <= 1 {
				x := e.x + s*e.vx
				stops = append(stops, stop{math.Max(0, math.Min(x, float64(width))), e.dir})
			}
		}
		if len(stops) < 2 {
			continue
		}
		sort.Slice(stops, func(i, j int) bool { return stops[i].x < stops[j].x })

		winding := 0
		row := y * width
		for i := 0; i < len(stops)-1; i++ {
			winding += stops[i].dir
			if winding == 0 {
				continue
			}
			x0 := int(math.Ceil(stops[i].x - 0.5))
			x1 := int(math.Floor(stops[i+1].x + 0.5))
			if x0 < 0 {
				x0 = 0
			}
			if x1 > width {
				x1 = width
			}
			for x := x0; x < x1; x++ {
				grid[row+x] = true
			}
		}
	}

	// Downsample: sum coverage per supersampling² block.
	n2 := supersampling * supersampling
	var pixels PixelCollection
	for y := 0; y < height; y += supersampling {
		for x := 0; x < width; x += supersampling {
			coverage := 0
			for yy := 0; yy < supersampling; yy++ {
				row := (y + yy) * width
				for xx := 0; xx < supersampling; xx++ {
					if grid[row+x+xx] {
						coverage++
					}
				}
			}
			if coverage == 0 {
				continue
			}
			alpha := int(math.Round(float64(n2-coverage) * 255 / float64(n2)))
			if alpha >= 255 {
				continue
			}
			pixels = append(pixels, Pixel{
				X:     int((float64(x) - shiftX) / ss),
				Y:     int((float64(y) - shiftY) / ss),
				Color: White,
				Alpha: uint8(alpha),
			})
		}
	}
	return pixels, nil
}

// floorMod returns the non-negative remainder of a/b for positive b.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// ImageOptions configures ImageToPixels.
type ImageOptions struct {
	// Width and Height resize the image before conversion. When only one
	// is set, the other is derived preserving the aspect ratio. Zero
	// values keep the source dimensions.
	Width, Height int
	// SkipTransparent drops pixels whose source alpha is fully
	// transparent instead of emitting them.
	SkipTransparent bool
}

// ImageToPixels loads a raster image and converts it to a pixel
// collection, one pixel per source pixel in row-major order. Alpha is
// emitted in ASS's inverted convention (255 - source alpha). PNG, JPEG,
// GIF, BMP, TIFF and WebP are supported.
func ImageToPixels(path string, opts ImageOptions) (PixelCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assdraw: image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assdraw: image: decoding %s: %w", path, err)
	}

	img = resizeImage(img, opts.Width, opts.Height)
	bounds := img.Bounds()

	var pixels PixelCollection
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if opts.SkipTransparent && c.A == 0 {
				continue
			}
			pixels = append(pixels, Pixel{
				X:     x - bounds.Min.X,
				Y:     y - bounds.Min.Y,
				Color: Color{R: c.R, G: c.G, B: c.B},
				Alpha: 255 - c.A,
			})
		}
	}
	return pixels, nil
}

// resizeImage scales img to the requested size, deriving a missing
// dimension from the aspect ratio. Zero for both keeps the source size.
func resizeImage(img image.Image, w, h int) image.Image {
	if w <= 0 && h <= 0 {
		return img
	}
	src := img.Bounds()
	if w <= 0 {
		w = int(math.Round(float64(h) * float64(src.Dx()) / float64(src.Dy())))
	}
	if h <= 0 {
		h = int(math.Round(float64(w) * float64(src.Dy()) / float64(src.Dx())))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == src.Dx() && h == src.Dy() {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
