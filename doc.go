// Package assdraw is a vector shape engine for the ASS (Advanced SubStation
// Alpha) drawing command language, aimed at karaoke effect generation.
//
// The package parses and re-emits ASS drawing command strings ("m 0 0 l 20 0
// 20 20 0 20"), applies affine transforms and curve flattening, performs
// boolean set operations between shapes, rasterizes shapes into
// alpha-weighted pixel collections with supersampled anti-aliasing, and
// morphs arbitrary shape collections into one another by pairing, resampling
// and interpolating their contours.
//
// Core types:
//
//   - [Shape]: an immutable ordered sequence of drawing elements. Every
//     transform returns a new Shape; the zero value is the empty shape.
//   - [Compound]: a closed shell ring with zero or more hole rings, the
//     polygon representation used by boolean operations and morphing.
//   - [PixelCollection]: rasterizer output, a list of alpha-weighted cells
//     in ASS's inverted alpha convention (0 = opaque, 255 = transparent).
//
// The package is computation-only: it performs no I/O except for decoding
// texture images, and holds no state between calls other than an optional
// injectable [MorphCache]. All exported operations are pure functions of
// their inputs, so independent shape operations may run concurrently
// without locking.
//
// Morphing is parameterized purely by a progress value t in [0,1]; stepping
// t over frames, easing, and timestamp alignment belong to the caller.
package assdraw
