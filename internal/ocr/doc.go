// Package ocr wraps the Tesseract engine (via gosseract/v2) behind the word
// token contract the rest of the pipeline consumes: recognized text plus
// word-level bounding boxes.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-kor
//   - macOS: brew install tesseract tesseract-lang
//
// Identity documents in this pipeline are Korean, so the default language is
// "kor+eng"; any Tesseract language string may be passed instead.
//
// # Performance
//
// Recognition takes hundreds of milliseconds to seconds per image. Callers
// run it once per captured frame, never per preview frame; the detection
// loop decides when a frame is worth recognizing.
//
// # Degradation
//
// When word-level bounding boxes cannot be extracted (some Tesseract
// configurations), Recognize still returns the full text with an empty word
// list. Masking then has nothing to anchor on and the caller is expected to
// treat the capture as failed rather than export an unredacted image.
package ocr
