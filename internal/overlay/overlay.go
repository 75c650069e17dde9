// Package overlay renders debug visualizations: the detected document quad
// stroked in a score-dependent color, and outlines around mask regions.
// Nothing here runs in the production path; cmd/docscan enables it with
// -debug.
package overlay

import (
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/geometry"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/redact"
)

const strokeWidth = 3

// DrawQuad strokes the quadrilateral onto dst, colored by score: red at 0
// through yellow to green at 1 along the HSV hue axis.
func DrawQuad(dst draw.Image, q geometry.Quad, score float64) {
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	c := colorful.Hsv(score*120, 1, 1)
	for i := 0; i < 4; i++ {
		drawLine(dst, q[i], q[(i+1)%4], c)
	}
}

// DrawRegions outlines each mask region in solid red, for inspecting what
// the masking engine decided before the opaque fill is applied.
func DrawRegions(dst draw.Image, regions []redact.Region) {
	red := colorful.Hsv(0, 1, 1)
	for _, r := range regions {
		x0, y0 := float64(r.X), float64(r.Y)
		x1, y1 := float64(r.X+r.Width), float64(r.Y+r.Height)
		drawLine(dst, geometry.Point{X: x0, Y: y0}, geometry.Point{X: x1, Y: y0}, red)
		drawLine(dst, geometry.Point{X: x1, Y: y0}, geometry.Point{X: x1, Y: y1}, red)
		drawLine(dst, geometry.Point{X: x1, Y: y1}, geometry.Point{X: x0, Y: y1}, red)
		drawLine(dst, geometry.Point{X: x0, Y: y1}, geometry.Point{X: x0, Y: y0}, red)
	}
}

// drawLine rasterizes a thick line segment with simple stepping, clipped to
// the image bounds.
func drawLine(dst draw.Image, a, b geometry.Point, c colorful.Color) {
	bounds := dst.Bounds()
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(max(abs(dx), abs(dy))) + 1

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := int(a.X + dx*t)
		cy := int(a.Y + dy*t)
		for oy := -strokeWidth / 2; oy <= strokeWidth/2; oy++ {
			for ox := -strokeWidth / 2; ox <= strokeWidth/2; ox++ {
				px, py := cx+ox, cy+oy
				if px < bounds.Min.X || py < bounds.Min.Y || px >= bounds.Max.X || py >= bounds.Max.Y {
					continue
				}
				dst.Set(px, py, c)
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
