package frame

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImageRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 7, A: 255})
		}
	}

	f := FromImage(src)
	defer f.Release()

	if f.Width != 8 || f.Height != 6 {
		t.Fatalf("frame size = %dx%d, want 8x6", f.Width, f.Height)
	}
	if len(f.Pix) != 4*8*6 {
		t.Fatalf("len(Pix) = %d, want %d", len(f.Pix), 4*8*6)
	}

	back := f.ToImage()
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if got, want := back.RGBAAt(x, y), src.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.Set(10, 20, color.RGBA{R: 200, A: 255})

	f := FromImage(src)
	defer f.Release()

	if f.Width != 4 || f.Height != 3 {
		t.Fatalf("frame size = %dx%d, want 4x3", f.Width, f.Height)
	}
	if got := f.ToImage().RGBAAt(0, 0); got.R != 200 {
		t.Errorf("top-left pixel R = %d, want 200", got.R)
	}
}

func TestToImageAliasesBuffer(t *testing.T) {
	f := New(4, 4)
	defer f.Release()

	img := f.ToImage()
	img.Set(2, 1, color.RGBA{R: 99, A: 255})

	if f.Pix[4*(1*4+2)] != 99 {
		t.Error("writing through ToImage did not reach the frame buffer")
	}
}

func TestClone_Independent(t *testing.T) {
	f := New(2, 2)
	defer f.Release()
	f.Pix[0] = 42

	c := f.Clone()
	defer c.Release()

	if c.Pix[0] != 42 {
		t.Error("clone did not copy pixel data")
	}
	c.Pix[0] = 7
	if f.Pix[0] != 42 {
		t.Error("mutating clone changed the original")
	}
}

func TestDownsample(t *testing.T) {
	tests := []struct {
		name        string
		w, h        int
		targetWidth int
		wantW       int
		wantH       int
	}{
		{"halves 640x480", 640, 480, 320, 320, 240},
		{"preserves aspect 1280x720", 1280, 720, 480, 480, 270},
		{"target wider than frame clones", 100, 50, 200, 100, 50},
		{"zero target clones", 100, 50, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.w, tt.h)
			defer f.Release()

			small := f.Downsample(tt.targetWidth)
			defer small.Release()

			if small.Width != tt.wantW || small.Height != tt.wantH {
				t.Errorf("downsampled to %dx%d, want %dx%d", small.Width, small.Height, tt.wantW, tt.wantH)
			}
			if &small.Pix[0] == &f.Pix[0] {
				t.Error("downsample returned the original buffer")
			}
		})
	}
}

func TestRelease_Idempotent(t *testing.T) {
	f := New(4, 4)
	f.Release()
	if f.Pix != nil {
		t.Fatal("Pix not nil after Release")
	}
	f.Release() // second call is a no-op

	var nilFrame *Frame
	nilFrame.Release() // nil receiver is also fine
}

func TestNew_ReusedBufferIsZeroed(t *testing.T) {
	f := New(4, 4)
	for i := range f.Pix {
		f.Pix[i] = 0xFF
	}
	f.Release()

	// The pool may or may not hand the same buffer back; either way the
	// frame must come out zeroed.
	g := New(4, 4)
	defer g.Release()
	for i, b := range g.Pix {
		if b != 0 {
			t.Fatalf("Pix[%d] = %d, want 0", i, b)
		}
	}
}
