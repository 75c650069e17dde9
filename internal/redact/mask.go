package redact

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/ocr"
)

const (
	// maxCombineTokens caps how many consecutive OCR words are merged into
	// one candidate field.
	maxCombineTokens = 3

	// maxLineDelta is the largest vertical-center difference, in pixels,
	// at which two words still count as the same text line.
	maxLineDelta = 10.0

	// gapWidthFactor scales the preceding token's average character width
	// into the maximum horizontal gap for combining. Two character widths
	// separates within-field splits from genuinely distinct fields.
	gapWidthFactor = 2.0
)

// Region is a pixel rectangle to redact, in frame coordinates.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FindMaskRegions locates sensitive fields among OCR word tokens and
// returns the pixel regions to redact.
//
// OCR frequently splits one logical field (a 13-digit resident
// registration number, say) across several word tokens. Starting at each
// unconsumed token, up to maxCombineTokens consecutive tokens are merged
// into one candidate string, as long as each adjacent pair sits on the same
// text line (vertical centers within maxLineDelta) and is visually adjacent
// (horizontal gap at most gapWidthFactor times the preceding token's
// average character width). Internal whitespace is stripped from copies of
// the token text; the input words are never mutated, so the function is
// idempotent over the same inputs.
//
// The combined string is tested against the patterns in catalog order and
// the first match wins. A match consumes its tokens: the scan resumes after
// the last combined token so overlapping sub-sequences are not re-matched.
//
// The mask rectangle is carved out of the combined tokens' union box
// proportionally by character width (box width divided by text length). A
// matcher with a capture group masks the group's character span; otherwise
// the span starts StartIndex characters into the matched field and runs
// BlurCount characters. A BlurCount of zero masks the whole box.
func FindMaskRegions(words []ocr.Word, patterns []Pattern) []Region {
	var regions []Region

	for i := 0; i < len(words); i++ {
		combined := stripSpace(words[i].Text)
		if combined == "" {
			continue
		}
		box := words[i].Box
		last := i

		for j := i + 1; j < len(words) && j-i < maxCombineTokens; j++ {
			if !combinable(words[j-1], words[j]) {
				break
			}
			combined += stripSpace(words[j].Text)
			box = unionBox(box, words[j].Box)
			last = j
		}

		region, ok := matchRegion(combined, box, patterns)
		if !ok {
			continue
		}
		regions = append(regions, region)
		i = last
	}

	return regions
}

// matchRegion tests the combined string against the patterns in order and
// computes the mask rectangle for the first match.
func matchRegion(combined string, box ocr.Box, patterns []Pattern) (Region, bool) {
	total := utf8.RuneCountInString(combined)
	if total == 0 {
		return Region{}, false
	}

	for _, p := range patterns {
		loc := p.Matcher.FindStringSubmatchIndex(combined)
		if loc == nil {
			continue
		}

		if p.BlurCount == 0 {
			return Region{X: box.X0, Y: box.Y0, Width: box.Width(), Height: box.Height()}, true
		}

		var begin, span int
		if len(loc) >= 4 && loc[2] >= 0 {
			begin = utf8.RuneCountInString(combined[:loc[2]])
			span = utf8.RuneCountInString(combined[loc[2]:loc[3]])
		} else {
			begin = utf8.RuneCountInString(combined[:loc[0]]) + p.StartIndex
			span = p.BlurCount
		}

		charWidth := float64(box.Width()) / float64(total)
		x := box.X0 + int(math.Round(float64(begin)*charWidth))
		w := int(math.Round(float64(span) * charWidth))
		if x+w > box.X1 {
			w = box.X1 - x
		}
		if w <= 0 {
			continue
		}
		return Region{X: x, Y: box.Y0, Width: w, Height: box.Height()}, true
	}
	return Region{}, false
}

// combinable reports whether two adjacent tokens belong to the same logical
// field: same text line and a small enough horizontal gap.
func combinable(prev, cur ocr.Word) bool {
	if math.Abs(prev.Box.CenterY()-cur.Box.CenterY()) > maxLineDelta {
		return false
	}
	text := stripSpace(prev.Text)
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return false
	}
	avgCharWidth := float64(prev.Box.Width()) / float64(n)
	gap := float64(cur.Box.X0 - prev.Box.X1)
	return gap <= gapWidthFactor*avgCharWidth
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func unionBox(a, b ocr.Box) ocr.Box {
	if b.X0 < a.X0 {
		a.X0 = b.X0
	}
	if b.Y0 < a.Y0 {
		a.Y0 = b.Y0
	}
	if b.X1 > a.X1 {
		a.X1 = b.X1
	}
	if b.Y1 > a.Y1 {
		a.Y1 = b.Y1
	}
	return a
}
