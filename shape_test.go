package assdraw

import (
	"math"
	"testing"
)

func TestShapeBuilder(t *testing.T) {
	var b ShapeBuilder
	shape := b.MoveTo(0, 0).LineTo(10, 0).CubicTo(12, 2, 12, 8, 10, 10).Close().Shape()

	want := "m 0 0 l 10 0 b 12 2 12 8 10 10 c"
	if got := shape.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if shape.Len() != 4 {
		t.Errorf("Len() = %d, want 4", shape.Len())
	}
}

func TestShapeBuilder_Reuse(t *testing.T) {
	var b ShapeBuilder
	first := b.MoveTo(0, 0).LineTo(1, 0).Shape()
	b.LineTo(2, 0)
	if first.Len() != 2 {
		t.Errorf("finalized shape changed after builder reuse: %d elements", first.Len())
	}
}

func TestShape_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "m 0 0 l 1 1", "m 0 0 l 1 1", true},
		{"different coords", "m 0 0 l 1 1", "m 0 0 l 1 2", false},
		{"different kind", "m 0 0 l 1 1", "n 0 0 l 1 1", false},
		{"different length", "m 0 0 l 1 1", "m 0 0 l 1 1 c", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustParse(tt.a).Equal(MustParse(tt.b)); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShape_Map(t *testing.T) {
	shape := MustParse("m 0 0 l 10 0 10 10")
	shifted := shape.Map(func(p Point, _ ElementKind) Point {
		return Pt(p.X+1, p.Y+2)
	})
	want := "m 1 2 l 11 2 11 12"
	if got := shifted.String(); got != want {
		t.Errorf("Map shift = %q, want %q", got, want)
	}
	if shape.String() != "m 0 0 l 10 0 10 10" {
		t.Errorf("Map mutated the original shape: %q", shape.String())
	}
}

func TestShape_Bounding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		exact bool
		want  Rect
	}{
		{"rectangle", "m 0 0 l 20 0 20 10 0 10", false, NewRect(Pt(0, 0), Pt(20, 10))},
		{"rectangle exact matches", "m 0 0 l 20 0 20 10 0 10", true, NewRect(Pt(0, 0), Pt(20, 10))},
		{"control points widen loose box", "m 0 0 b 0 -10 10 -10 10 0", false, NewRect(Pt(0, -10), Pt(10, 0))},
		{"exact box is tight", "m 0 0 b 0 -10 10 -10 10 0", true, NewRect(Pt(0, -7.5), Pt(10, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bbox, ok := MustParse(tt.input).Bounding(tt.exact)
			if !ok {
				t.Fatal("Bounding reported no points")
			}
			if !bbox.Min.Approx(tt.want.Min, 1e-9) || !bbox.Max.Approx(tt.want.Max, 1e-9) {
				t.Errorf("Bounding = %v, want %v", bbox, tt.want)
			}
		})
	}

	var empty Shape
	if _, ok := empty.Bounding(false); ok {
		t.Error("empty shape reported a bounding box")
	}
}

func TestRectangle(t *testing.T) {
	shape := Rectangle(10, 5)
	compounds := shape.Polygons(1)
	if len(compounds) != 1 {
		t.Fatalf("got %d compounds, want 1", len(compounds))
	}
	if area := compounds[0].Area(); math.Abs(area-50) > 1e-9 {
		t.Errorf("area = %v, want 50", area)
	}
}

func TestTriangle(t *testing.T) {
	shape := Triangle(10)
	compounds := shape.Polygons(1)
	if len(compounds) != 1 {
		t.Fatalf("got %d compounds, want 1", len(compounds))
	}
	// Equilateral side 10: area = sqrt(3)/4 * 100.
	want := math.Sqrt(3) / 4 * 100
	if area := compounds[0].Area(); math.Abs(area-want) > 1e-6 {
		t.Errorf("area = %v, want %v", area, want)
	}
}

func TestEllipse(t *testing.T) {
	shape := Ellipse(20, 10)
	bbox, ok := shape.Bounding(true)
	if !ok {
		t.Fatal("no bounding box")
	}
	if bbox.Width() <= 0 || bbox.Width() > 20+1e-9 || bbox.Height() > 10+1e-9 {
		t.Errorf("bounding = %v, want within 20x10", bbox)
	}

	// The Bezier approximation should stay close to the true ellipse area.
	compounds := shape.Polygons(0.5)
	if len(compounds) != 1 {
		t.Fatalf("got %d compounds, want 1", len(compounds))
	}
	want := math.Pi * 10 * 5
	if area := compounds[0].Area(); math.Abs(area-want)/want > 0.05 {
		t.Errorf("area = %v, want about %v", area, want)
	}
}

func TestAnnulus(t *testing.T) {
	shape := Annulus(10, 5)
	compounds := shape.Polygons(0.5)
	if len(compounds) != 1 {
		t.Fatalf("got %d compounds, want 1", len(compounds))
	}
	if len(compounds[0].Holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(compounds[0].Holes))
	}
	want := math.Pi * (10*10 - 5*5)
	if area := compounds[0].Area(); math.Abs(area-want)/want > 0.05 {
		t.Errorf("area = %v, want about %v", area, want)
	}
}

func TestAnnulus_Degenerate(t *testing.T) {
	if !Annulus(5, 5).IsEmpty() {
		t.Error("Annulus(5, 5) should be empty")
	}
	if !Annulus(5, 10).IsEmpty() {
		t.Error("Annulus(5, 10) should be empty")
	}
}

func TestHeart(t *testing.T) {
	shape := Heart(30, 0)
	bbox, ok := shape.Bounding(false)
	if !ok {
		t.Fatal("no bounding box")
	}
	if math.Abs(bbox.Width()-30) > 1e-9 || math.Abs(bbox.Height()-30) > 1e-9 {
		t.Errorf("bounding = %v, want 30x30", bbox)
	}

	// A positive voffset deepens the cleft between the lobes only.
	deep := Heart(30, 5)
	if deep.Equal(shape) {
		t.Error("voffset had no effect")
	}
}
