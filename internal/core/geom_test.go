package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"apart vertically", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"touching edges", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"single cell overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContainsAndCenter(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(30, 25) {
		t.Error("bottom-right edge is exclusive")
	}
	if cx, cy := r.Center(); cx != 20 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (20, 17)", cx, cy)
	}
}

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"fractional overlap", Box{0, 0, 1.5, 1}, Box{1.4, 0.5, 1, 1}, true},
		{"touching", Box{0, 0, 1, 1}, Box{1, 0, 1, 1}, false},
		{"above", Box{0, 0, 2, 1}, Box{0, 1.01, 2, 1}, false},
		{"contained", Box{0, 0, 10, 10}, Box{2, 2, 1, 1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxPenetration(t *testing.T) {
	dx, dy := Box{0, 0, 4, 2}.Penetration(Box{3, 1.5, 4, 4})
	if dx != 1 || dy != 0.5 {
		t.Errorf("Penetration() = (%v, %v), expected (1, 0.5)", dx, dy)
	}
}

func TestBoxCells(t *testing.T) {
	r := Box{X: 2.4, Y: 3.9, W: 1, H: 1}.Cells()
	if r != NewRect(2, 3, 2, 2) {
		t.Errorf("Cells() = %+v", r)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, lo, hi, expected int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF = %v, expected 0", got)
	}
}

func TestFinite(t *testing.T) {
	if !Finite(1, -2.5, 0) {
		t.Error("ordinary numbers are finite")
	}
	if Finite(1, math.NaN()) {
		t.Error("NaN is not finite")
	}
	if Finite(math.Inf(-1)) {
		t.Error("-Inf is not finite")
	}

	b := Body{X: 1, Y: 2, W: 1, H: 1}
	if !b.Valid() {
		t.Error("body should be valid")
	}
	b.VY = math.NaN()
	if b.Valid() {
		t.Error("body with NaN velocity should be invalid")
	}
}

func TestBodyEdges(t *testing.T) {
	b := Body{X: 2.5, Y: -1, W: 3, H: 2}
	if b.Right() != 5.5 || b.Bottom() != 1 {
		t.Errorf("edges = (%v, %v), want (5.5, 1)", b.Right(), b.Bottom())
	}
	box := b.Box()
	if b.Right() != box.Right() || b.Bottom() != box.Bottom() {
		t.Errorf("body edges (%v, %v) differ from box edges (%v, %v)", b.Right(), b.Bottom(), box.Right(), box.Bottom())
	}
}
