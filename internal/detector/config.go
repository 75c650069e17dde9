package detector

import "time"

// Config holds the tunables of the document detection pipeline.
//
// All fields have working defaults (see DefaultConfig); a zero value in any
// field is replaced by its default, so callers may override any subset:
//
//	cfg := detector.Config{TargetRatio: 1.414, MinScore: 0.7}
//	d := detector.New(cfg)
//
// Valid ranges:
//   - TargetRatio >= 1 (orientation-independent, max side over min side)
//   - RatioTolerance > 0
//   - 0 <= MinAngle < 90 < MaxAngle <= 180
//   - BlurKernel and MorphKernel are odd pixel sizes >= 3
//   - 0 < CannyLow < CannyHigh <= 255
//   - Weights >= 0; summing to <= 1 keeps scores in [0,1] but is not enforced
type Config struct {
	// TargetRatio is the aspect ratio of the document being sought.
	// The default 1.586 is the ISO/IEC 7810 ID-1 card ratio (85.60/53.98 mm).
	TargetRatio float64

	// RatioTolerance scales how quickly the ratio score decays as the
	// candidate's aspect ratio moves away from TargetRatio.
	RatioTolerance float64

	// EpsilonFactor controls polygon approximation: epsilon is
	// EpsilonFactor times the contour perimeter.
	EpsilonFactor float64

	// MinAngle and MaxAngle bound the acceptable interior corner angles in
	// degrees. Candidates with any corner outside the range are rejected
	// before scoring.
	MinAngle float64
	MaxAngle float64

	// BlurKernel is the side length of the smoothing kernel applied before
	// edge detection.
	BlurKernel int

	// CannyLow and CannyHigh are the hysteresis thresholds of the edge
	// detector, on a 0-255 gradient scale.
	CannyLow  int
	CannyHigh int

	// MorphKernel is the side length of the square structuring element used
	// for morphological closing of the edge map.
	MorphKernel int

	// MinScore is the fitness a candidate must exceed to count as found.
	MinScore float64

	// WeightRatio and WeightAngle weight the two fitness components.
	WeightRatio float64
	WeightAngle float64

	// Interval is the cadence of the auto-capture detection loop.
	Interval time.Duration

	// ConsecutiveFrames is how many successive positive detections the
	// auto-capture loop requires before firing.
	ConsecutiveFrames int

	// Debug enables per-frame pipeline logging.
	Debug bool
}

// DefaultConfig returns the tuning used for ID-card capture.
func DefaultConfig() Config {
	return Config{
		TargetRatio:       1.586,
		RatioTolerance:    0.35,
		EpsilonFactor:     0.02,
		MinAngle:          60,
		MaxAngle:          120,
		BlurKernel:        5,
		CannyLow:          50,
		CannyHigh:         150,
		MorphKernel:       5,
		MinScore:          0.6,
		WeightRatio:       0.5,
		WeightAngle:       0.5,
		Interval:          150 * time.Millisecond,
		ConsecutiveFrames: 3,
	}
}

// normalized fills zero-valued fields with their defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.TargetRatio == 0 {
		c.TargetRatio = def.TargetRatio
	}
	if c.RatioTolerance == 0 {
		c.RatioTolerance = def.RatioTolerance
	}
	if c.EpsilonFactor == 0 {
		c.EpsilonFactor = def.EpsilonFactor
	}
	if c.MinAngle == 0 {
		c.MinAngle = def.MinAngle
	}
	if c.MaxAngle == 0 {
		c.MaxAngle = def.MaxAngle
	}
	if c.BlurKernel == 0 {
		c.BlurKernel = def.BlurKernel
	}
	if c.CannyLow == 0 {
		c.CannyLow = def.CannyLow
	}
	if c.CannyHigh == 0 {
		c.CannyHigh = def.CannyHigh
	}
	if c.MorphKernel == 0 {
		c.MorphKernel = def.MorphKernel
	}
	if c.MinScore == 0 {
		c.MinScore = def.MinScore
	}
	if c.WeightRatio == 0 && c.WeightAngle == 0 {
		c.WeightRatio = def.WeightRatio
		c.WeightAngle = def.WeightAngle
	}
	if c.Interval == 0 {
		c.Interval = def.Interval
	}
	if c.ConsecutiveFrames == 0 {
		c.ConsecutiveFrames = def.ConsecutiveFrames
	}
	return c
}
