// Package geometry provides the planar math used by the document detector:
// polygon angles, convexity, contour simplification, minimum-area rotated
// rectangles and the document fitness score. Everything here is a pure
// function over value types.
package geometry

import "math"

// Point is a 2D coordinate in pixel space. X increases rightward,
// Y increases downward (image convention).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad is an ordered quadrilateral. Vertex order follows the contour it was
// derived from (consistently clockwise or counter-clockwise).
type Quad [4]Point

// Contour is an ordered closed sequence of boundary points. The closing edge
// from the last point back to the first is implicit.
type Contour []Point

// InteriorAngles returns the interior angle at each vertex of the quad in
// degrees.
//
// The angle at vertex i is computed from the dot product of the two edge
// vectors leaving that vertex. The cosine is clamped into [-1, 1] before the
// inverse cosine so floating-point drift on near-degenerate quads cannot
// produce a NaN.
func InteriorAngles(q Quad) [4]float64 {
	var angles [4]float64
	for i := 0; i < 4; i++ {
		prev := q[(i+3)%4]
		next := q[(i+1)%4]
		v1x, v1y := prev.X-q[i].X, prev.Y-q[i].Y
		v2x, v2y := next.X-q[i].X, next.Y-q[i].Y
		n1 := math.Hypot(v1x, v1y)
		n2 := math.Hypot(v2x, v2y)
		if n1 == 0 || n2 == 0 {
			angles[i] = 0
			continue
		}
		cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
		if cos > 1 {
			cos = 1
		} else if cos < -1 {
			cos = -1
		}
		angles[i] = math.Acos(cos) * 180 / math.Pi
	}
	return angles
}

// IsConvex reports whether the quad is convex. A quad is convex when the
// cross products of all consecutive edge pairs share the same sign; a zero
// cross product (collinear vertices) counts as non-convex.
func IsConvex(q Quad) bool {
	sign := 0
	for i := 0; i < 4; i++ {
		a := q[i]
		b := q[(i+1)%4]
		c := q[(i+2)%4]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			return false
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}

// Area returns the absolute enclosed area of the contour via the shoelace
// formula.
func Area(c Contour) float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the total edge length of the contour. When closed is
// true the implicit edge from the last point back to the first is included.
func Perimeter(c Contour, closed bool) float64 {
	if len(c) < 2 {
		return 0
	}
	var sum float64
	for i := 0; i < len(c)-1; i++ {
		sum += math.Hypot(c[i+1].X-c[i].X, c[i+1].Y-c[i].Y)
	}
	if closed {
		sum += math.Hypot(c[0].X-c[len(c)-1].X, c[0].Y-c[len(c)-1].Y)
	}
	return sum
}

// ApproxPolygon simplifies a closed contour to a polygon whose vertices all
// lie within epsilon of the original curve (Ramer-Douglas-Peucker).
//
// For a closed curve the algorithm first finds the two mutually farthest
// points, splits the contour into two arcs between them, and simplifies each
// arc independently. Contours with fewer than 3 points are returned as-is.
func ApproxPolygon(c Contour, epsilon float64) Contour {
	if len(c) < 3 {
		return append(Contour(nil), c...)
	}

	// Anchor the split at the two farthest-apart points so the closed curve
	// decomposes into two open arcs.
	ai, bi := 0, 0
	var best float64
	for i := 0; i < len(c); i++ {
		for j := i + 1; j < len(c); j++ {
			d := sqDist(c[i], c[j])
			if d > best {
				best = d
				ai, bi = i, j
			}
		}
	}

	arc1 := c[ai : bi+1]
	arc2 := append(append(Contour(nil), c[bi:]...), c[:ai+1]...)

	s1 := rdp(arc1, epsilon)
	s2 := rdp(arc2, epsilon)

	// The arc endpoints appear in both halves; drop the duplicates when
	// stitching the ring back together.
	out := append(Contour(nil), s1...)
	if len(s2) > 2 {
		out = append(out, s2[1:len(s2)-1]...)
	}
	return out
}

// rdp simplifies an open polyline, keeping both endpoints.
func rdp(c Contour, epsilon float64) Contour {
	if len(c) < 3 {
		return append(Contour(nil), c...)
	}
	idx, maxDist := 0, 0.0
	a, b := c[0], c[len(c)-1]
	for i := 1; i < len(c)-1; i++ {
		d := perpDist(c[i], a, b)
		if d > maxDist {
			maxDist = d
			idx = i
		}
	}
	if maxDist <= epsilon {
		return Contour{a, b}
	}
	left := rdp(c[:idx+1], epsilon)
	right := rdp(c[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpDist is the perpendicular distance from p to the line through a and b.
// When a and b coincide it degrades to the point distance.
func perpDist(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / n
}

func sqDist(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// MinAreaRect returns the width and height of the minimum-area rotated
// rectangle enclosing the quad.
//
// Uses rotating calipers: for a convex polygon the minimum-area enclosing
// rectangle has a side collinear with one of the polygon's edges, so it
// suffices to project all vertices onto each edge direction and its normal
// and keep the orientation with the smallest extent product.
func MinAreaRect(q Quad) (width, height float64) {
	bestArea := math.Inf(1)
	for i := 0; i < 4; i++ {
		ex := q[(i+1)%4].X - q[i].X
		ey := q[(i+1)%4].Y - q[i].Y
		n := math.Hypot(ex, ey)
		if n == 0 {
			continue
		}
		ux, uy := ex/n, ey/n

		minU, maxU := math.Inf(1), math.Inf(-1)
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, p := range q {
			u := p.X*ux + p.Y*uy
			v := -p.X*uy + p.Y*ux
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		w := maxU - minU
		h := maxV - minV
		if w*h < bestArea {
			bestArea = w * h
			width, height = w, h
		}
	}
	return width, height
}

// AspectRatio returns the orientation-independent aspect ratio of a rotated
// rectangle: max(w,h)/min(w,h), always >= 1. Degenerate rectangles report 0.
func AspectRatio(width, height float64) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	if width >= height {
		return width / height
	}
	return height / width
}
