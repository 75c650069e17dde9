// Package detector locates identity documents in video frames.
//
// The detector runs a deterministic multi-stage vision pipeline on each
// frame: grayscale conversion, Gaussian smoothing, Canny edge detection,
// morphological closing, external contour extraction, polygon approximation
// and geometric scoring. The best-scoring convex quadrilateral whose corners
// fall within the configured angle range is reported as a candidate, along
// with a fitness score combining aspect-ratio and corner-angle closeness to
// an ideal document shape.
//
// # Liveness
//
// Detect never returns an error or panics across its boundary; any internal
// failure degrades to a not-found result for that frame only. The capture
// loop driving the detector must keep running, so liveness is favored over
// surfacing transient vision errors.
//
// # Concurrency
//
// A Detector reuses scratch buffers between frames and must be confined to
// one goroutine. The worker package hosts exactly one Detector per worker for
// this reason.
//
// # Tuning
//
// Config documents every tunable and its valid range. The defaults target
// ISO ID-1 cards (aspect ratio 1.586) filmed at a working width of 480
// pixels. The minimum contour area floor is intentionally not configurable.
package detector
