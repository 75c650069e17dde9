package detector

import (
	"image"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/geometry"
)

// findContours extracts the external boundary of every connected edge region
// in a binary image.
//
// Regions are discovered in row-major scan order. For each unvisited edge
// pixel the outer boundary is traced with Moore-neighbor tracing, then the
// whole 8-connected component is flood-filled as visited so that interior
// pixels and hole boundaries inside the same region are never traced again.
// Only external contours are returned, matching the detector's needs (holes
// inside a document are irrelevant).
//
// Contours shorter than 4 points are discarded as noise.
func findContours(bin *image.Gray) []geometry.Contour {
	bounds := bin.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		return bin.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y > 0
	}

	visited := make([]bool, width*height)
	var contours []geometry.Contour

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !fg(x, y) || visited[y*width+x] {
				continue
			}
			contour := traceBoundary(fg, width, height, x, y)
			markComponent(fg, visited, width, height, x, y)
			if len(contour) >= 4 {
				contours = append(contours, contour)
			}
		}
	}

	return contours
}

// traceBoundary walks the outer boundary of the component containing the
// start pixel using Moore-neighbor tracing with a clockwise radial sweep.
//
// The start pixel is the topmost-leftmost pixel of its component (guaranteed
// by the row-major scan in findContours), so the sweep can safely begin from
// the west neighbor. Tracing stops when the walk returns to the start pixel,
// with a hard step cap as a safety net against pathological inputs.
func traceBoundary(fg func(x, y int) bool, width, height, sx, sy int) geometry.Contour {
	// 8-neighborhood in clockwise order, image coordinates (y grows down):
	// N, NE, E, SE, S, SW, W, NW
	dx := [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dy := [8]int{-1, -1, 0, 1, 1, 1, 0, -1}

	contour := geometry.Contour{{X: float64(sx), Y: float64(sy)}}
	cx, cy := sx, sy
	backtrack := 6 // west; known background for the scan-order start pixel

	maxSteps := 4 * width * height
	for step := 0; step < maxSteps; step++ {
		next := -1
		for i := 1; i <= 8; i++ {
			idx := (backtrack + i) % 8
			if fg(cx+dx[idx], cy+dy[idx]) {
				next = idx
				break
			}
		}
		if next < 0 {
			break // isolated pixel
		}

		cx += dx[next]
		cy += dy[next]
		if cx == sx && cy == sy {
			break
		}
		contour = append(contour, geometry.Point{X: float64(cx), Y: float64(cy)})

		// Resume the sweep just past the direction pointing back at the
		// previous pixel.
		backtrack = (next + 4) % 8
	}

	return contour
}

// markComponent flood-fills the 8-connected component containing (sx, sy)
// into the visited set. Iterative with an explicit stack to stay safe on
// large regions.
func markComponent(fg func(x, y int) bool, visited []bool, width, height, sx, sy int) {
	stack := []image.Point{{X: sx, Y: sy}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y*width+p.X] || !fg(p.X, p.Y) {
			continue
		}
		visited[p.Y*width+p.X] = true

		for ddy := -1; ddy <= 1; ddy++ {
			for ddx := -1; ddx <= 1; ddx++ {
				if ddx == 0 && ddy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + ddx, Y: p.Y + ddy})
			}
		}
	}
}
