package assdraw

import (
	"math"
	"testing"
)

func TestPoint_Creation(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"zero", 0, 0},
		{"positive", 3, 4},
		{"negative", -1, -2},
		{"mixed", -5, 10},
		{"fractional", 1.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pt(tt.x, tt.y)
			if p.X != tt.x || p.Y != tt.y {
				t.Errorf("Pt(%v, %v) = %v, want (%v, %v)", tt.x, tt.y, p, tt.x, tt.y)
			}
		})
	}
}

func TestPoint_AddSub(t *testing.T) {
	tests := []struct {
		name    string
		p, q    Point
		sum     Point
		diff    Point
	}{
		{"zeros", Pt(0, 0), Pt(0, 0), Pt(0, 0), Pt(0, 0)},
		{"positive", Pt(1, 2), Pt(3, 4), Pt(4, 6), Pt(-2, -2)},
		{"mixed", Pt(1, -2), Pt(-3, 4), Pt(-2, 2), Pt(4, -6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Add(tt.q); !got.Approx(tt.sum, 1e-10) {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.p, tt.q, got, tt.sum)
			}
			if got := tt.p.Sub(tt.q); !got.Approx(tt.diff, 1e-10) {
				t.Errorf("%v.Sub(%v) = %v, want %v", tt.p, tt.q, got, tt.diff)
			}
		})
	}
}

func TestPoint_MulDiv(t *testing.T) {
	p := Pt(3, -6)
	if got := p.Mul(2); !got.Approx(Pt(6, -12), 1e-10) {
		t.Errorf("Mul(2) = %v, want (6, -12)", got)
	}
	if got := p.Div(3); !got.Approx(Pt(1, -2), 1e-10) {
		t.Errorf("Div(3) = %v, want (1, -2)", got)
	}
}

func TestPoint_DotCross(t *testing.T) {
	p, q := Pt(1, 2), Pt(3, 4)
	if got := p.Dot(q); got != 11 {
		t.Errorf("Dot = %v, want 11", got)
	}
	if got := p.Cross(q); got != -2 {
		t.Errorf("Cross = %v, want -2", got)
	}
	if got := q.Cross(p); got != 2 {
		t.Errorf("Cross is antisymmetric; got %v, want 2", got)
	}
}

func TestPoint_LengthDistance(t *testing.T) {
	p := Pt(3, 4)
	if got := p.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := p.LengthSquared(); got != 25 {
		t.Errorf("LengthSquared = %v, want 25", got)
	}
	if got := Pt(1, 1).Distance(Pt(4, 5)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestPoint_Lerp(t *testing.T) {
	tests := []struct {
		name   string
		t      float64
		expect Point
	}{
		{"start", 0, Pt(0, 0)},
		{"end", 1, Pt(10, 20)},
		{"middle", 0.5, Pt(5, 10)},
		{"quarter", 0.25, Pt(2.5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pt(0, 0).Lerp(Pt(10, 20), tt.t)
			if !got.Approx(tt.expect, 1e-10) {
				t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.expect)
			}
		})
	}
}

func TestPoint_Approx(t *testing.T) {
	p := Pt(1, 1)
	if !p.Approx(Pt(1+1e-12, 1-1e-12), 1e-10) {
		t.Error("nearly equal points should be approx equal")
	}
	if p.Approx(Pt(1.1, 1), 1e-10) {
		t.Error("distinct points should not be approx equal")
	}
	if p.Approx(Pt(math.NaN(), 1), 1e-10) {
		t.Error("NaN should never be approx equal")
	}
}
