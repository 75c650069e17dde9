// Package scan orchestrates the post-capture pipeline: OCR the captured
// image, classify the document type, select the applicable sensitive-field
// patterns, compute mask regions and paint the redactions.
package scan

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/classify"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/ocr"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/redact"
)

// Recognizer is the OCR boundary. The real implementation is ocr.Recognize;
// tests substitute canned results.
type Recognizer func(img image.Image, lang string) (*ocr.Result, error)

// Scanner runs the capture-to-redaction chain. The zero value is not usable;
// construct with NewScanner.
type Scanner struct {
	lang      string
	recognize Recognizer
}

// Report is the outcome of scanning one captured image.
type Report struct {
	// Type is the classified document type; Unknown when no keyword
	// scored.
	Type classify.DocumentType

	// FullText is everything OCR recognized, for callers that log or
	// display it.
	FullText string

	// Regions are the pixel rectangles that were redacted.
	Regions []redact.Region

	// Redacted is the image with all regions opaquely painted. It is a
	// copy; the input image is never modified.
	Redacted *image.RGBA
}

// NewScanner builds a scanner. lang is a Tesseract language string, empty
// for the default; a nil recognizer uses the real OCR engine.
func NewScanner(lang string, recognize Recognizer) *Scanner {
	if recognize == nil {
		recognize = ocr.Recognize
	}
	return &Scanner{lang: lang, recognize: recognize}
}

// Process scans one captured image.
//
// The chain runs sequentially (recognize, classify, mask, paint) and a
// recognition failure abandons the whole attempt: the error is returned, no
// partial redaction is applied and the input image is untouched. Callers
// reset their session state and may retry with a fresh capture.
//
// The context is consulted between stages; OCR itself is not cancelable
// mid-recognition, so cancellation takes effect at the next stage boundary.
func (s *Scanner) Process(ctx context.Context, img image.Image) (*Report, error) {
	result, err := s.recognize(img, s.lang)
	if err != nil {
		return nil, fmt.Errorf("scan: recognition failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan: canceled: %w", err)
	}

	docType := classify.Classify(result.FullText)
	patterns := redact.ForDocument(docType)
	regions := redact.FindMaskRegions(result.Words, patterns)

	redacted := cloneRGBA(img)
	redact.Paint(redacted, regions)

	return &Report{
		Type:     docType,
		FullText: result.FullText,
		Regions:  regions,
		Redacted: redacted,
	}, nil
}

func cloneRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}
