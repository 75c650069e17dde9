package detector

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
)

// closeEdges applies morphological closing (dilate then erode) to a binary
// edge map, bridging small gaps in document borders so the outline traces as
// one closed contour.
//
// kernel is the side length of the square structuring element; the bild
// operators take a radius, so kernel/2 is used. The result is re-thresholded
// back to a strict 0/255 binary image.
func closeEdges(edges *image.Gray, kernel int) *image.Gray {
	radius := float64(kernel) / 2
	dilated := effect.Dilate(edges, radius)
	closed := effect.Erode(dilated, radius)
	return binarize(closed, 128)
}

// binarize converts any image to a 0/255 grayscale image by thresholding the
// red channel. The morphology operators return RGBA; on a grayscale input all
// channels carry the same value, so sampling red is sufficient.
func binarize(img image.Image, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if uint8(r>>8) >= threshold {
				out.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
