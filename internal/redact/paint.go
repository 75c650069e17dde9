package redact

import (
	"image"
	"image/color"
	"image/draw"
)

// Paint fills each region with opaque black on the target surface.
//
// Redaction is full occlusion rather than a blur: a blur can be partially
// inverted, a solid fill cannot. Regions are clipped to the image bounds.
func Paint(dst draw.Image, regions []Region) {
	fill := image.NewUniform(color.Black)
	bounds := dst.Bounds()
	for _, r := range regions {
		rect := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(bounds)
		if rect.Empty() {
			continue
		}
		draw.Draw(dst, rect, fill, image.Point{}, draw.Src)
	}
}
