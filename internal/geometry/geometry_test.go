package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestInteriorAngles_Square(t *testing.T) {
	q := Quad{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	angles := InteriorAngles(q)
	for i, a := range angles {
		if !almostEqual(a, 90, 1e-9) {
			t.Errorf("angle[%d]: got %f, want 90", i, a)
		}
	}
}

func TestInteriorAngles_ClampsCosine(t *testing.T) {
	// Nearly collinear vertices push the cosine right to the edge of its
	// domain; the result must stay a real number.
	q := Quad{{0, 0}, {100, 0.0000001}, {200, 0}, {100, 50}}
	angles := InteriorAngles(q)
	for i, a := range angles {
		if math.IsNaN(a) {
			t.Fatalf("angle[%d] is NaN", i)
		}
	}
}

func TestIsConvex(t *testing.T) {
	tests := []struct {
		name string
		quad Quad
		want bool
	}{
		{"square", Quad{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, true},
		{"counter-clockwise square", Quad{{0, 0}, {0, 10}, {10, 10}, {10, 0}}, true},
		{"dart", Quad{{0, 0}, {10, 0}, {2, 2}, {0, 10}}, false},
		{"collinear", Quad{{0, 0}, {5, 0}, {10, 0}, {0, 10}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConvex(tt.quad); got != tt.want {
				t.Errorf("IsConvex = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name    string
		contour Contour
		want    float64
	}{
		{"unit square", Contour{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1},
		{"rectangle", Contour{{0, 0}, {4, 0}, {4, 3}, {0, 3}}, 12},
		{"triangle", Contour{{0, 0}, {4, 0}, {0, 3}}, 6},
		{"degenerate", Contour{{0, 0}, {1, 1}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Area(tt.contour); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("Area = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPerimeter(t *testing.T) {
	c := Contour{{0, 0}, {3, 0}, {3, 4}}
	if got := Perimeter(c, false); !almostEqual(got, 7, 1e-9) {
		t.Errorf("open perimeter = %f, want 7", got)
	}
	if got := Perimeter(c, true); !almostEqual(got, 12, 1e-9) {
		t.Errorf("closed perimeter = %f, want 12", got)
	}
}

// rectangleContour builds a dense boundary walk of an axis-aligned
// rectangle, like a traced contour would look.
func rectangleContour(x0, y0, x1, y1 float64) Contour {
	var c Contour
	for x := x0; x < x1; x++ {
		c = append(c, Point{x, y0})
	}
	for y := y0; y < y1; y++ {
		c = append(c, Point{x1, y})
	}
	for x := x1; x > x0; x-- {
		c = append(c, Point{x, y1})
	}
	for y := y1; y > y0; y-- {
		c = append(c, Point{x0, y})
	}
	return c
}

func TestApproxPolygon_Rectangle(t *testing.T) {
	c := rectangleContour(10, 10, 110, 70)
	epsilon := 0.02 * Perimeter(c, true)

	poly := ApproxPolygon(c, epsilon)
	if len(poly) != 4 {
		t.Fatalf("vertices: got %d, want 4 (%v)", len(poly), poly)
	}

	quad := Quad{poly[0], poly[1], poly[2], poly[3]}
	if !IsConvex(quad) {
		t.Error("approximated rectangle should be convex")
	}
	for i, a := range InteriorAngles(quad) {
		if !almostEqual(a, 90, 5) {
			t.Errorf("angle[%d] = %f, want ~90", i, a)
		}
	}
}

func TestApproxPolygon_ShortContour(t *testing.T) {
	c := Contour{{0, 0}, {1, 1}}
	poly := ApproxPolygon(c, 1)
	if len(poly) != 2 {
		t.Errorf("short contours pass through, got %d points", len(poly))
	}
}

func TestMinAreaRect(t *testing.T) {
	tests := []struct {
		name  string
		quad  Quad
		wantW float64
		wantH float64
		tol   float64
	}{
		{"axis aligned", Quad{{0, 0}, {40, 0}, {40, 30}, {0, 30}}, 40, 30, 1e-9},
		{"rotated 45deg square", Quad{{10, 0}, {20, 10}, {10, 20}, {0, 10}}, math.Sqrt(200), math.Sqrt(200), 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := MinAreaRect(tt.quad)
			gotMax, gotMin := math.Max(w, h), math.Min(w, h)
			wantMax, wantMin := math.Max(tt.wantW, tt.wantH), math.Min(tt.wantW, tt.wantH)
			if !almostEqual(gotMax, wantMax, tt.tol) || !almostEqual(gotMin, wantMin, tt.tol) {
				t.Errorf("MinAreaRect = (%f, %f), want (%f, %f)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		w, h, want float64
	}{
		{40, 30, 4.0 / 3.0},
		{30, 40, 4.0 / 3.0},
		{10, 10, 1},
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := AspectRatio(tt.w, tt.h); !almostEqual(got, tt.want, 1e-9) {
			t.Errorf("AspectRatio(%f, %f) = %f, want %f", tt.w, tt.h, got, tt.want)
		}
	}
}
