package detector

import (
	"image"
	"log"

	"github.com/anthonynsimon/bild/blur"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/frame"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/geometry"
)

// minContourArea is the noise floor in square pixels: contours enclosing less
// area than this never produce a candidate. Not a Config field; it filters
// sensor-noise blobs at the working resolution and is not a tuning surface.
const minContourArea = 1000

// Candidate is a quadrilateral the detector considers document-like, with
// its fitness score. Scores are designed to land in [0,1] under the default
// weights but are not hard-clamped.
type Candidate struct {
	Quad  geometry.Quad `json:"quad"`
	Score float64       `json:"score"`
}

// Result is the outcome of analyzing a single frame.
type Result struct {
	Found     bool       `json:"found"`
	Candidate *Candidate `json:"candidate,omitempty"`
}

// Detector locates the best document-shaped quadrilateral in a frame.
//
// A Detector is stateless across calls apart from its configuration and a
// reused grayscale scratch plane; it is intended to be owned by a single
// worker goroutine and is not safe for concurrent use.
type Detector struct {
	cfg  Config
	gray *image.Gray // scratch, reused across frames of the same size
}

// New creates a detector. Zero-valued Config fields take their defaults.
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg.normalized()}
}

// Config returns the normalized configuration the detector runs with.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect runs the full detection pipeline on one frame and reports the best
// candidate, if any scores above the configured minimum.
//
// Detect never fails across its boundary: any internal panic is recovered
// and mapped to a not-found result so a frame-rate detection loop keeps
// running through transient vision errors.
//
// # Pipeline
//
//  1. Grayscale conversion (ITU-R BT.601 luminance)
//  2. Gaussian smoothing (Config.BlurKernel)
//  3. Canny edge detection (Config.CannyLow/CannyHigh)
//  4. Morphological closing (Config.MorphKernel)
//  5. External contour extraction
//  6. Per contour: area floor, polygon approximation, convex-quad and
//     corner-angle checks, minimum-area rotated rectangle, fitness score
//  7. The highest-scoring candidate wins; ties keep the earlier contour
//
// The caller retains ownership of the frame; Detect only reads it.
func (d *Detector) Detect(f *frame.Frame) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			if d.cfg.Debug {
				log.Printf("detector: pipeline panic recovered: %v", r)
			}
			res = Result{}
		}
	}()

	gray := d.grayscale(f)
	blurred := grayFromRGBA(blur.Gaussian(gray, float64(d.cfg.BlurKernel-1)/2))
	edges := canny(blurred, d.cfg.CannyLow, d.cfg.CannyHigh)
	closed := closeEdges(edges, d.cfg.MorphKernel)
	contours := findContours(closed)

	var best *Candidate
	for _, c := range contours {
		cand, ok := d.evaluate(c)
		if !ok {
			continue
		}
		if best == nil || cand.Score > best.Score {
			cc := cand
			best = &cc
		}
	}

	if d.cfg.Debug {
		log.Printf("detector: %d contours, best=%v", len(contours), best)
	}

	if best == nil || best.Score <= d.cfg.MinScore {
		return Result{}
	}
	return Result{Found: true, Candidate: best}
}

// evaluate turns a contour into a scored candidate, or rejects it.
// Rejection short-circuits before scoring: the area floor, vertex count,
// convexity and corner-angle checks all run first.
func (d *Detector) evaluate(c geometry.Contour) (Candidate, bool) {
	if geometry.Area(c) < minContourArea {
		return Candidate{}, false
	}

	epsilon := d.cfg.EpsilonFactor * geometry.Perimeter(c, true)
	poly := geometry.ApproxPolygon(c, epsilon)
	if len(poly) != 4 {
		return Candidate{}, false
	}

	quad := geometry.Quad{poly[0], poly[1], poly[2], poly[3]}
	if !geometry.IsConvex(quad) {
		return Candidate{}, false
	}

	angles := geometry.InteriorAngles(quad)
	for _, a := range angles {
		if a < d.cfg.MinAngle || a > d.cfg.MaxAngle {
			return Candidate{}, false
		}
	}

	w, h := geometry.MinAreaRect(quad)
	aspect := geometry.AspectRatio(w, h)
	score := geometry.FitnessScore(aspect, d.cfg.TargetRatio, d.cfg.RatioTolerance,
		angles, d.cfg.MinAngle, d.cfg.WeightRatio, d.cfg.WeightAngle)

	return Candidate{Quad: quad, Score: score}, true
}

// grayscale converts the frame to a single-channel luminance image using
// BT.601 weights, reusing the detector's scratch plane when dimensions allow.
func (d *Detector) grayscale(f *frame.Frame) *image.Gray {
	if d.gray == nil || d.gray.Rect.Dx() != f.Width || d.gray.Rect.Dy() != f.Height {
		d.gray = image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := (y*f.Width + x) * 4
			r := float64(f.Pix[i])
			g := float64(f.Pix[i+1])
			b := float64(f.Pix[i+2])
			d.gray.Pix[y*d.gray.Stride+x] = uint8(0.299*r + 0.587*g + 0.114*b)
		}
	}
	return d.gray
}

// grayFromRGBA collapses an RGBA image back to single-channel grayscale by
// sampling the red channel (the blur of a grayscale image has equal
// channels).
func grayFromRGBA(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			out.Pix[y*out.Stride+x] = img.Pix[y*img.Stride+x*4]
		}
	}
	return out
}
