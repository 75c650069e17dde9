package redact

import (
	"regexp"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/classify"
)

// Pattern describes one sensitive numeric field: how to recognize it in
// recognized text and which character span of the matched field to blank
// out. Patterns are static configuration, immutable for the process
// lifetime.
type Pattern struct {
	// Matcher recognizes the field inside a whitespace-stripped token run.
	// When it carries a capture group, the group bounds the characters to
	// mask; separators the OCR may drop (the resident-number hyphen) then
	// cannot shift the masked span.
	Matcher *regexp.Regexp

	// StartIndex is where masking begins, in characters from the start of
	// the matched field. Ignored when Matcher has a capture group.
	StartIndex int

	// BlurCount is how many characters to mask from StartIndex. Zero masks
	// the field's whole bounding box regardless of any capture group.
	BlurCount int

	// Label names the field for logs and reports.
	Label string

	// DocTypes lists the document types this field appears on.
	DocTypes []classify.DocumentType
}

// appliesTo reports whether the pattern is relevant for the given document
// type. Unknown documents get every pattern: over-redacting an unclassified
// capture is safer than leaking a field.
func (p Pattern) appliesTo(t classify.DocumentType) bool {
	if t == classify.Unknown {
		return true
	}
	for _, dt := range p.DocTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// catalog is the static pattern table, in priority order. The first
// matching pattern wins for any given token run; that tie-break is an
// artifact of catalog order, kept deterministic by keeping the table fixed.
var catalog = []Pattern{
	{
		// 123456-1234567: birth date kept visible, the 7-digit suffix
		// (gender, region, serial, check digit) masked. The hyphen is
		// optional because OCR on laminated cards often drops it; the
		// capture group keeps the mask on the suffix either way. The
		// suffix leads with 0-4 or 9; 5-8 marks a foreign-resident number.
		Matcher:    regexp.MustCompile(`\d{6}-?([0-49]\d{6})`),
		StartIndex: 7,
		BlurCount:  7,
		Label:      "resident_registration_number",
		DocTypes:   []classify.DocumentType{classify.IDCard, classify.DriverLicense},
	},
	{
		// 12-34-567890-12: the 6-digit serial in the middle is masked.
		Matcher:    regexp.MustCompile(`\d{2}-\d{2}-(\d{6})-\d{2}`),
		StartIndex: 6,
		BlurCount:  6,
		Label:      "driver_license_number",
		DocTypes:   []classify.DocumentType{classify.DriverLicense},
	},
	{
		// M12345678: passport numbers are masked whole.
		Matcher:    regexp.MustCompile(`[A-Z]{1,2}\d{7,8}`),
		StartIndex: 0,
		BlurCount:  0,
		Label:      "passport_number",
		DocTypes:   []classify.DocumentType{classify.Passport},
	},
	{
		// Foreign registration numbers share the 6-7 digit shape but the
		// suffix leads with 5-8. Masked the same way as resident numbers.
		Matcher:    regexp.MustCompile(`\d{6}-?([5-8]\d{6})`),
		StartIndex: 7,
		BlurCount:  7,
		Label:      "foreign_resident_number",
		DocTypes:   []classify.DocumentType{classify.IDCard, classify.DriverLicense},
	},
}

// Catalog returns the full static pattern table in priority order.
func Catalog() []Pattern {
	out := make([]Pattern, len(catalog))
	copy(out, catalog)
	return out
}

// ForDocument filters the catalog down to the patterns applicable to the
// given document type, preserving catalog order.
func ForDocument(t classify.DocumentType) []Pattern {
	var out []Pattern
	for _, p := range catalog {
		if p.appliesTo(t) {
			out = append(out, p)
		}
	}
	return out
}
