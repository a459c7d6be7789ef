package assdraw

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRasterize_Square(t *testing.T) {
	shape := MustParse("m 0 0 l 8 0 8 8 0 8")
	pixels, err := Rasterize(shape, 1)
	if err != nil {
		t.Fatal(err)
	}

	// An axis-aligned 8x8 square covers exactly 64 cells, all opaque.
	if len(pixels) != 64 {
		t.Fatalf("got %d pixels, want 64", len(pixels))
	}
	for _, p := range pixels {
		if p.Alpha != 0 {
			t.Fatalf("pixel (%d, %d) alpha = %d, want 0 (opaque)", p.X, p.Y, p.Alpha)
		}
		if p.X < 0 || p.X > 7 || p.Y < 0 || p.Y > 7 {
			t.Fatalf("pixel (%d, %d) outside the 8x8 extent", p.X, p.Y)
		}
	}
}

func TestRasterize_SupersamplingAntiAliases(t *testing.T) {
	// A half-cell-offset square produces edge pixels with intermediate
	// alpha once supersampling resolves partial coverage.
	shape := MustParse("m 0.5 0.5 l 8.5 0.5 8.5 8.5 0.5 8.5")

	sharp, err := Rasterize(shape, 1)
	if err != nil {
		t.Fatal(err)
	}
	smooth, err := Rasterize(shape, 8)
	if err != nil {
		t.Fatal(err)
	}

	intermediate := func(pc PixelCollection) int {
		n := 0
		for _, p := range pc {
			if p.Alpha > 0 && p.Alpha < 255 {
				n++
			}
		}
		return n
	}
	if got := intermediate(sharp); got != 0 {
		t.Errorf("supersampling 1 produced %d intermediate pixels, want 0", got)
	}
	if got := intermediate(smooth); got == 0 {
		t.Error("supersampling 8 produced no intermediate pixels on a fractional edge")
	}
}

func TestRasterize_HoleIsTransparent(t *testing.T) {
	// 12-square with a 4-square hole in its middle.
	shape := MustParse("m 0 0 l 12 0 12 12 0 12 m 4 4 l 4 8 8 8 8 4")
	pixels, err := Rasterize(shape, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 144-16 {
		t.Errorf("got %d pixels, want %d", len(pixels), 144-16)
	}
	if got := pixels.At(6, 6); len(got) != 0 {
		t.Errorf("hole interior rasterized: %v", got)
	}
}

func TestRasterize_NegativeCoordinates(t *testing.T) {
	// The grid shifts into the positive quadrant internally; output
	// coordinates come back in the original frame.
	pixels, err := Rasterize(MustParse("m -4 -4 l 0 -4 0 0 -4 0"), 2)
	if err != nil {
		t.Fatal(err)
	}
	if pixels.IsEmpty() {
		t.Fatal("no pixels")
	}
	minX, minY, maxX, maxY := pixels.Bounds()
	if minX != -4 || minY != -4 || maxX > 0 || maxY > 0 {
		t.Errorf("bounds = (%d, %d, %d, %d), want within (-4, -4, 0, 0)", minX, minY, maxX, maxY)
	}
}

func TestRasterize_Degenerate(t *testing.T) {
	for _, input := range []string{"", "m 5 5", "m 0 0 l 10 0"} {
		pixels, err := Rasterize(MustParse(input), 4)
		if err != nil {
			t.Fatal(err)
		}
		if !pixels.IsEmpty() {
			t.Errorf("Rasterize(%q) = %d pixels, want none", input, len(pixels))
		}
	}
}

func TestRasterize_InvalidSupersampling(t *testing.T) {
	for _, ss := range []int{0, -2} {
		_, err := Rasterize(MustParse("m 0 0 l 10 0 10 10 0 10"), ss)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Rasterize(ss=%d) error = %v, want ErrInvalidArgument", ss, err)
		}
	}
}

func TestImageToPixels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 128})
	img.SetNRGBA(1, 1, color.NRGBA{A: 0})
	writePNG(t, path, img)

	pixels, err := ImageToPixels(path, ImageOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 4 {
		t.Fatalf("got %d pixels, want 4", len(pixels))
	}

	// Row-major order with inverted alpha.
	if pixels[0].Color != (Color{R: 255}) || pixels[0].Alpha != 0 {
		t.Errorf("pixel 0 = %+v, want opaque red", pixels[0])
	}
	if pixels[2].Alpha != 127 {
		t.Errorf("pixel 2 alpha = %d, want 127 (inverted)", pixels[2].Alpha)
	}
	if pixels[3].Alpha != 255 {
		t.Errorf("pixel 3 alpha = %d, want 255 (transparent)", pixels[3].Alpha)
	}
}

func TestImageToPixels_SkipTransparent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{A: 0})
	writePNG(t, path, img)

	pixels, err := ImageToPixels(path, ImageOptions{SkipTransparent: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(pixels) != 1 {
		t.Errorf("got %d pixels, want 1", len(pixels))
	}
}

func TestImageToPixels_Resize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")

	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	writePNG(t, path, img)

	// Only width given: height follows the 2:1 aspect ratio.
	pixels, err := ImageToPixels(path, ImageOptions{Width: 4})
	if err != nil {
		t.Fatal(err)
	}
	if pixels.Width() != 4 || pixels.Height() != 2 {
		t.Errorf("resized to %dx%d, want 4x2", pixels.Width(), pixels.Height())
	}
}

func TestImageToPixels_MissingFile(t *testing.T) {
	if _, err := ImageToPixels(filepath.Join(t.TempDir(), "nope.png"), ImageOptions{}); err == nil {
		t.Error("missing file should error")
	}
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}
