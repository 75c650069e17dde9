package geometry

import "math"

// FitnessScore rates how document-like a quadrilateral is, combining how
// close its aspect ratio is to the target with how close its corners are to
// right angles.
//
// The score is:
//
//	ratioScore*weightRatio + angleScore*weightAngle
//
// where
//
//	ratioScore = max(0, 1 - |aspect - targetRatio| / targetRatio / ratioTol)
//	angleScore = mean over the 4 angles of max(0, 1 - |angle - 90| / (90 - minAngle))
//
// A quad with the exact target aspect ratio and four 90-degree corners scores
// weightRatio+weightAngle. The result is a bounded heuristic fitness, not a
// probability; weights need not sum to 1.
func FitnessScore(aspect, targetRatio, ratioTol float64, angles [4]float64, minAngle, weightRatio, weightAngle float64) float64 {
	ratioScore := math.Max(0, 1-math.Abs(aspect-targetRatio)/targetRatio/ratioTol)

	var angleSum float64
	for _, a := range angles {
		angleSum += math.Max(0, 1-math.Abs(a-90)/(90-minAngle))
	}
	angleScore := angleSum / 4

	return ratioScore*weightRatio + angleScore*weightAngle
}
