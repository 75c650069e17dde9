package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage covers the Korean identity documents this pipeline
// targets, with English as a fallback for machine-readable zones.
const DefaultLanguage = "kor+eng"

// Box is a word bounding box in image pixel coordinates, top-left origin.
// (X0, Y0) is the top-left corner, (X1, Y1) the bottom-right.
type Box struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b Box) Height() int { return b.Y1 - b.Y0 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return float64(b.Y0+b.Y1) / 2 }

// Word is a single recognized token with its location. Words are read-only
// once produced; downstream stages work on copies.
type Word struct {
	Text string `json:"text"`
	Box  Box    `json:"box"`
}

// Result is the outcome of recognizing one image.
type Result struct {
	// FullText is everything Tesseract read, with its original spacing and
	// line breaks. The classifier consumes this.
	FullText string `json:"full_text"`

	// Words are the word-level tokens with bounding boxes. May be empty
	// when box extraction fails even though FullText is populated.
	Words []Word `json:"words"`
}

// Recognize runs OCR over an in-memory image.
//
// Tesseract consumes files, so the image is written to a temporary PNG that
// is removed before returning. lang is a Tesseract language string; empty
// selects DefaultLanguage.
func Recognize(img image.Image, lang string) (*Result, error) {
	tmp, err := os.CreateTemp("", "docscan-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("ocr: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("ocr: encoding temp image: %w", err)
	}
	tmp.Close()

	return RecognizeFile(tmpPath, lang)
}

// RecognizeFile runs OCR over an image file on disk.
func RecognizeFile(path, lang string) (*Result, error) {
	if lang == "" {
		lang = DefaultLanguage
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("ocr: setting language %q: %w", lang, err)
	}
	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("ocr: setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("ocr: recognition failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Degrade to text-only; see package docs.
		return &Result{FullText: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text: box.Word,
			Box: Box{
				X0: box.Box.Min.X,
				Y0: box.Box.Min.Y,
				X1: box.Box.Max.X,
				Y1: box.Box.Max.Y,
			},
		})
	}

	return &Result{FullText: text, Words: words}, nil
}

// Available reports whether a working Tesseract installation is reachable.
// Tests use this to skip when the engine is absent.
func Available() bool {
	defer func() { recover() }()
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version() != ""
}
