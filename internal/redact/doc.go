// Package redact finds sensitive numeric fields among OCR word tokens and
// paints opaque masks over them.
//
// The engine reconstructs multi-token fields (OCR splits long numbers at
// whitespace and hyphens), matches them against a static pattern catalog,
// computes pixel regions proportionally from the field's bounding box, and
// fills those regions with solid black. Which catalog entries apply is
// decided by the document type the classify package assigns.
package redact
