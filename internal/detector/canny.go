package detector

import (
	"image"
	"image/color"
	"math"
)

// canny performs Canny edge detection on a grayscale image, producing a
// binary edge map where edge pixels are 255 and everything else is 0.
//
// The smoothing blur runs as its own pipeline stage before this function, so
// canny covers the remaining steps:
//
//  1. Gradient computation with Sobel operators
//     magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  2. Non-maximum suppression to thin edges to 1-pixel width
//  3. Hysteresis thresholding: pixels above high are strong edges, pixels
//     between low and high are kept only when adjacent to a strong edge
//
// low and high are on a 0-255 gradient scale.
func canny(gray *image.Gray, low, high int) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	lum := make([][]float64, height)
	for y := 0; y < height; y++ {
		lum[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			lum[y][x] = float64(gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y) / 255.0
		}
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clampInt(y+ky, 0, height-1)
					px := clampInt(x+kx, 0, width-1)
					gx += lum[py][px] * sobelX[ky+1][kx+1]
					gy += lum[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep a pixel only when it is a local maximum
	// along its gradient direction.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			default:
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	lowThresh := float64(low) / 255.0
	highThresh := float64(high) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			switch {
			case val >= highThresh:
				out.SetGray(x, y, color.Gray{Y: 255})
			case val >= lowThresh:
				// Weak edge: keep only when touching a strong edge.
				keep := false
				for ky := -1; ky <= 1 && !keep; ky++ {
					for kx := -1; kx <= 1 && !keep; kx++ {
						py := clampInt(y+ky, 0, height-1)
						px := clampInt(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							keep = true
						}
					}
				}
				if keep {
					out.SetGray(x, y, color.Gray{Y: 255})
				}
			}
		}
	}

	return out
}

func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
