package ocr

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func TestBoxGeometry(t *testing.T) {
	b := Box{X0: 10, Y0: 20, X1: 110, Y1: 60}
	if b.Width() != 100 {
		t.Errorf("Width = %d, want 100", b.Width())
	}
	if b.Height() != 40 {
		t.Errorf("Height = %d, want 40", b.Height())
	}
	if b.CenterY() != 40 {
		t.Errorf("CenterY = %v, want 40", b.CenterY())
	}
}

// renderText draws s onto a white canvas with the fixed 7x13 basicfont,
// scaled up so Tesseract has enough pixels per glyph.
func renderText(s string) image.Image {
	small := image.NewRGBA(image.Rect(0, 0, 7*len(s)+20, 40))
	draw.Draw(small, small.Rect, image.NewUniform(color.White), image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 25),
	}
	d.DrawString(s)

	const scale = 4
	big := image.NewRGBA(image.Rect(0, 0, small.Rect.Dx()*scale, small.Rect.Dy()*scale))
	for y := big.Rect.Min.Y; y < big.Rect.Max.Y; y++ {
		for x := big.Rect.Min.X; x < big.Rect.Max.X; x++ {
			big.Set(x, y, small.RGBAAt(x/scale, y/scale))
		}
	}
	return big
}

func TestRecognize_PrintedDigits(t *testing.T) {
	if !Available() {
		t.Skip("tesseract not installed")
	}

	result, err := Recognize(renderText("123456"), "eng")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if !strings.Contains(result.FullText, "123456") {
		t.Errorf("FullText = %q, want it to contain 123456", result.FullText)
	}
	for _, w := range result.Words {
		if w.Box.Width() <= 0 || w.Box.Height() <= 0 {
			t.Errorf("word %q has degenerate box %+v", w.Text, w.Box)
		}
	}
}

func TestRecognize_DefaultLanguage(t *testing.T) {
	if !Available() {
		t.Skip("tesseract not installed")
	}

	// Empty lang falls back to DefaultLanguage; the call must not error
	// even on a blank image.
	blank := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(blank, blank.Rect, image.NewUniform(color.White), image.Point{}, draw.Src)
	if _, err := Recognize(blank, ""); err != nil {
		if strings.Contains(err.Error(), "setting language") {
			t.Skipf("language data for %s not installed: %v", DefaultLanguage, err)
		}
		t.Fatalf("Recognize with default language: %v", err)
	}
}
