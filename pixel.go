package assdraw

// Pixel is one alpha-weighted cell of rasterizer output. Alpha uses ASS's
// inverted convention: 0 is opaque, 255 fully transparent. Pixels are
// immutable values; the With* methods return modified copies.
type Pixel struct {
	X, Y  int
	Color Color
	Alpha uint8
}

// WithColor returns the pixel with a different color.
func (p Pixel) WithColor(c Color) Pixel {
	return Pixel{X: p.X, Y: p.Y, Color: c, Alpha: p.Alpha}
}

// WithAlpha returns the pixel with a different alpha.
func (p Pixel) WithAlpha(a uint8) Pixel {
	return Pixel{X: p.X, Y: p.Y, Color: p.Color, Alpha: a}
}

// WithPosition returns the pixel at a different position.
func (p Pixel) WithPosition(x, y int) Pixel {
	return Pixel{X: x, Y: y, Color: p.Color, Alpha: p.Alpha}
}

// PixelCollection is an ordered sequence of pixels. There is no uniqueness
// constraint: overlapping shapes may contribute several pixels at the same
// coordinates.
type PixelCollection []Pixel

// IsEmpty reports whether the collection has no pixels.
func (pc PixelCollection) IsEmpty() bool {
	return len(pc) == 0
}

// Bounds returns the inclusive coordinate bounds (minX, minY, maxX, maxY).
// An empty collection reports all zeros.
func (pc PixelCollection) Bounds() (minX, minY, maxX, maxY int) {
	if len(pc) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = pc[0].X, pc[0].Y
	maxX, maxY = pc[0].X, pc[0].Y
	for _, p := range pc[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}

// Width returns the width of the bounding box in cells.
func (pc PixelCollection) Width() int {
	minX, _, maxX, _ := pc.Bounds()
	return maxX - minX + 1
}

// Height returns the height of the bounding box in cells.
func (pc PixelCollection) Height() int {
	_, minY, _, maxY := pc.Bounds()
	return maxY - minY + 1
}

// Filter returns the pixels for which predicate returns true.
func (pc PixelCollection) Filter(predicate func(Pixel) bool) PixelCollection {
	var out PixelCollection
	for _, p := range pc {
		if predicate(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterRegion returns the pixels inside the inclusive rectangle.
func (pc PixelCollection) FilterRegion(x1, y1, x2, y2 int) PixelCollection {
	return pc.Filter(func(p Pixel) bool {
		return x1 <= p.X && p.X <= x2 && y1 <= p.Y && p.Y <= y2
	})
}

// FilterColor returns the pixels with the given color.
func (pc PixelCollection) FilterColor(c Color) PixelCollection {
	return pc.Filter(func(p Pixel) bool { return p.Color == c })
}

// At returns all pixels at a position; overlapping shapes may yield more
// than one.
func (pc PixelCollection) At(x, y int) []Pixel {
	var out []Pixel
	for _, p := range pc {
		if p.X == x && p.Y == y {
			out = append(out, p)
		}
	}
	return out
}

// Map returns a new collection with transform applied to every pixel.
func (pc PixelCollection) Map(transform func(Pixel) Pixel) PixelCollection {
	out := make(PixelCollection, len(pc))
	for i, p := range pc {
		out[i] = transform(p)
	}
	return out
}

// Move returns the collection translated by (dx, dy).
func (pc PixelCollection) Move(dx, dy int) PixelCollection {
	return pc.Map(func(p Pixel) Pixel {
		return p.WithPosition(p.X+dx, p.Y+dy)
	})
}

// -------------------------------------------------------------------
// Texture application
// -------------------------------------------------------------------

// TextureMode selects how base pixel coordinates map into texture space.
type TextureMode int

const (
	// TextureStretch scales the texture to cover the base bounding box.
	TextureStretch TextureMode = iota
	// TextureRepeat tiles the texture at natural resolution on both axes.
	TextureRepeat
	// TextureRepeatH stretches vertically and tiles horizontally.
	TextureRepeatH
	// TextureRepeatV stretches horizontally and tiles vertically.
	TextureRepeatV
)

// BlendMode selects how texture colors combine with base colors.
type BlendMode int

const (
	// BlendReplace replaces the base color with the texture color.
	BlendReplace BlendMode = iota
	// BlendMultiply multiplies base and texture colors channel-wise.
	BlendMultiply
)

// MissingPixelPolicy selects the behavior when a texture lookup has no
// pixel at the mapped coordinate.
type MissingPixelPolicy int

const (
	// MissingDefault substitutes an opaque white texture pixel.
	MissingDefault MissingPixelPolicy = iota
	// MissingSkip drops the base pixel from the output.
	MissingSkip
)

// TextureOptions configures ApplyTexture. The zero value selects stretch
// mapping, replace blending and the white default for missing pixels.
type TextureOptions struct {
	Mode         TextureMode
	Blend        BlendMode
	MissingPixel MissingPixelPolicy
}

// ApplyTexture maps each pixel of the collection to a texture-space
// coordinate per the mode, looks up the nearest texture pixel and blends
// its color onto the base pixel. The base alpha is always preserved:
// texturing affects color only.
//
// Returns an error wrapping ErrInvalidArgument for an empty texture or an
// unknown mode or blend value.
func (pc PixelCollection) ApplyTexture(texture PixelCollection, opts TextureOptions) (PixelCollection, error) {
	if opts.Mode < TextureStretch || opts.Mode > TextureRepeatV {
		return nil, invalidf("assdraw: texture: unknown mode %d", int(opts.Mode))
	}
	if opts.Blend < BlendReplace || opts.Blend > BlendMultiply {
		return nil, invalidf("assdraw: texture: unknown blend mode %d", int(opts.Blend))
	}
	if opts.MissingPixel < MissingDefault || opts.MissingPixel > MissingSkip {
		return nil, invalidf("assdraw: texture: unknown missing-pixel policy %d", int(opts.MissingPixel))
	}
	if pc.IsEmpty() {
		return PixelCollection{}, nil
	}
	if texture.IsEmpty() {
		return nil, invalidf("assdraw: texture: texture has no pixels")
	}

	minX, minY, _, _ := pc.Bounds()
	bbW, bbH := pc.Width(), pc.Height()
	texMinX, texMinY, _, _ := texture.Bounds()
	texW, texH := texture.Width(), texture.Height()

	type coord struct{ x, y int }
	lookup := make(map[coord]Pixel, len(texture))
	for _, p := range texture {
		lookup[coord{p.X - texMinX, p.Y - texMinY}] = p
	}

	mapCoord := func(x, y int) (int, int) {
		switch opts.Mode {
		case TextureStretch:
			u := float64(x-minX) / float64(bbW)
			v := float64(y-minY) / float64(bbH)
			return int(u * float64(texW-1)), int(v * float64(texH-1))
		case TextureRepeat:
			return mod(x-minX, texW), mod(y-minY, texH)
		case TextureRepeatH:
			v := float64(y-minY) / float64(bbH)
			return mod(x-minX, texW), int(v * float64(texH-1))
		default: // TextureRepeatV
			u := float64(x-minX) / float64(bbW)
			return int(u * float64(texW-1)), mod(y-minY, texH)
		}
	}

	out := make(PixelCollection, 0, len(pc))
	for _, p := range pc {
		tx, ty := mapCoord(p.X, p.Y)
		tp, ok := lookup[coord{tx, ty}]
		if !ok {
			if opts.MissingPixel == MissingSkip {
				continue
			}
			tp = Pixel{X: tx, Y: ty, Color: White, Alpha: 0}
		}

		c := tp.Color
		if opts.Blend == BlendMultiply {
			c = p.Color.Multiply(tp.Color)
		}
		out = append(out, Pixel{X: p.X, Y: p.Y, Color: c, Alpha: p.Alpha})
	}
	return out, nil
}

// mod is a floor modulus: the result has the sign of the divisor.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
