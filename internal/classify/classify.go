// Package classify decides which kind of identity document a page of
// recognized text came from, using per-type keyword scoring.
package classify

import "strings"

// DocumentType enumerates the document kinds the pipeline understands.
// The set is fixed; pattern catalogs and keyword tables key off these
// variants rather than free-form strings.
type DocumentType int

const (
	// Unknown means no type scored above zero.
	Unknown DocumentType = iota
	// IDCard is the Korean resident registration card.
	IDCard
	// DriverLicense is the Korean driver's license.
	DriverLicense
	// Passport is a travel passport (Korean or MRZ-bearing).
	Passport
)

func (t DocumentType) String() string {
	switch t {
	case IDCard:
		return "id_card"
	case DriverLicense:
		return "driver_license"
	case Passport:
		return "passport"
	}
	return "unknown"
}

// keywordEntry associates a document type with the phrases that indicate it.
// Entries are scored in slice order; a tie keeps the earlier entry, which is
// an artifact of the ordering rather than a business rule.
type keywordEntry struct {
	docType  DocumentType
	keywords []string
}

var keywordTable = []keywordEntry{
	{IDCard, []string{"주민등록증", "주민등록", "resident registration"}},
	{DriverLicense, []string{"운전면허증", "운전면허", "자동차운전면허", "driver's license", "driver license"}},
	{Passport, []string{"여권", "대한민국", "passport", "republic of korea"}},
}

// Classify scores the recognized full-page text against each document
// type's keywords and returns the strictly highest-scoring type, or Unknown
// when nothing matches.
//
// Matching is case-insensitive. A fully contained keyword scores 1.0. A
// keyword whose individual characters all appear somewhere in the text
// scores 0.5: OCR on laminated cards frequently scrambles character order,
// so the lenient fallback recovers classifications that exact containment
// would miss, at the cost of occasional overcounting on character-rich text.
func Classify(fullText string) DocumentType {
	text := strings.ToLower(fullText)

	best := Unknown
	bestScore := 0.0
	for _, entry := range keywordTable {
		var score float64
		for _, kw := range entry.keywords {
			kw = strings.ToLower(kw)
			switch {
			case strings.Contains(text, kw):
				score += 1.0
			case containsAllChars(text, kw):
				score += 0.5
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.docType
		}
	}
	return best
}

// containsAllChars reports whether every character of kw occurs somewhere in
// text, ignoring position and order. Whitespace in the keyword is skipped.
func containsAllChars(text, kw string) bool {
	for _, r := range kw {
		if r == ' ' {
			continue
		}
		if !strings.ContainsRune(text, r) {
			return false
		}
	}
	return true
}
