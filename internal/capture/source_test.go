package capture

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// writeTestFrames fills dir with numbered PNGs whose top-left pixel encodes
// their sequence position, so playback order is observable.
func writeTestFrames(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		img := image.NewNRGBA(image.Rect(0, 0, 64, 48))
		img.Set(0, 0, color.NRGBA{R: uint8(i + 1), A: 255})
		name := filepath.Join(dir, "frame_"+string(rune('a'+i))+".png")
		if err := imaging.Save(img, name); err != nil {
			t.Fatalf("writing test frame: %v", err)
		}
	}
}

func TestDirectorySource_PlaysFramesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestFrames(t, dir, 3)

	src, err := NewDirectorySource(dir)
	if err != nil {
		t.Fatalf("NewDirectorySource: %v", err)
	}

	if w, h := src.Size(); w != 64 || h != 48 {
		t.Errorf("Size = %dx%d, want 64x48", w, h)
	}

	for i := 0; i < 3; i++ {
		if !src.Ready() {
			t.Fatalf("source not ready before frame %d", i)
		}
		f, err := src.Grab(64)
		if err != nil {
			t.Fatalf("Grab frame %d: %v", i, err)
		}
		if got := f.ToImage().RGBAAt(0, 0).R; got != uint8(i+1) {
			t.Errorf("frame %d marker = %d, want %d", i, got, i+1)
		}
		f.Release()
	}

	if _, err := src.Grab(64); err == nil {
		t.Error("Grab after exhaustion should fail")
	}
}

func TestDirectorySource_NotReadyWhenExhausted(t *testing.T) {
	dir := t.TempDir()
	writeTestFrames(t, dir, 1)

	src, err := NewDirectorySource(dir)
	if err != nil {
		t.Fatalf("NewDirectorySource: %v", err)
	}

	f, err := src.Grab(64)
	if err != nil {
		t.Fatalf("Grab: %v", err)
	}
	f.Release()

	// The sequence is spent: the coordinator must see a not-ready source
	// and skip ticks instead of grabbing into errors.
	if src.Ready() {
		t.Error("Ready() = true after the last frame was grabbed")
	}

	// The last decoded frame stays available at full resolution.
	full, err := src.GrabFull()
	if err != nil {
		t.Fatalf("GrabFull after exhaustion: %v", err)
	}
	full.Release()
}

func TestDirectorySource_GrabDownsamples(t *testing.T) {
	dir := t.TempDir()
	writeTestFrames(t, dir, 1)

	src, err := NewDirectorySource(dir)
	if err != nil {
		t.Fatalf("NewDirectorySource: %v", err)
	}

	f, err := src.Grab(32)
	if err != nil {
		t.Fatalf("Grab: %v", err)
	}
	defer f.Release()
	if f.Width != 32 || f.Height != 24 {
		t.Errorf("downsampled frame = %dx%d, want 32x24", f.Width, f.Height)
	}
}

func TestDirectorySource_GrabFullReturnsLastFrame(t *testing.T) {
	dir := t.TempDir()
	writeTestFrames(t, dir, 2)

	src, err := NewDirectorySource(dir)
	if err != nil {
		t.Fatalf("NewDirectorySource: %v", err)
	}

	if _, err := src.GrabFull(); err == nil {
		t.Error("GrabFull before any Grab should fail")
	}

	f, err := src.Grab(32)
	if err != nil {
		t.Fatalf("Grab: %v", err)
	}
	f.Release()

	full, err := src.GrabFull()
	if err != nil {
		t.Fatalf("GrabFull: %v", err)
	}
	defer full.Release()
	if full.Width != 64 || full.Height != 48 {
		t.Errorf("full frame = %dx%d, want 64x48", full.Width, full.Height)
	}
	if got := full.ToImage().RGBAAt(0, 0).R; got != 1 {
		t.Errorf("full frame marker = %d, want 1", got)
	}
}

func TestDirectorySource_IgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	writeTestFrames(t, dir, 1)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	src, err := NewDirectorySource(dir)
	if err != nil {
		t.Fatalf("NewDirectorySource: %v", err)
	}
	f, err := src.Grab(64)
	if err != nil {
		t.Fatalf("Grab: %v", err)
	}
	f.Release()
	if _, err := src.Grab(64); err == nil {
		t.Error("only one image file should be playable")
	}
}

func TestDirectorySource_EmptyDirectory(t *testing.T) {
	if _, err := NewDirectorySource(t.TempDir()); err == nil {
		t.Error("empty directory should not construct a source")
	}
}

func TestSliceSource_Cycles(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 16, 12))
	a.Set(0, 0, color.RGBA{R: 1, A: 255})
	b := image.NewRGBA(image.Rect(0, 0, 16, 12))
	b.Set(0, 0, color.RGBA{R: 2, A: 255})

	src := NewSliceSource(a, b)
	if !src.Ready() {
		t.Fatal("slice source with images should be ready")
	}
	if w, h := src.Size(); w != 16 || h != 12 {
		t.Errorf("Size = %dx%d, want 16x12", w, h)
	}

	want := []uint8{1, 2, 1}
	for i, marker := range want {
		f, err := src.Grab(16)
		if err != nil {
			t.Fatalf("Grab %d: %v", i, err)
		}
		if got := f.ToImage().RGBAAt(0, 0).R; got != marker {
			t.Errorf("grab %d marker = %d, want %d", i, got, marker)
		}
		f.Release()
	}

	full, err := src.GrabFull()
	if err != nil {
		t.Fatalf("GrabFull: %v", err)
	}
	defer full.Release()
	if got := full.ToImage().RGBAAt(0, 0).R; got != 1 {
		t.Errorf("GrabFull marker = %d, want the last grabbed frame 1", got)
	}
}

func TestSliceSource_Empty(t *testing.T) {
	src := NewSliceSource()
	if src.Ready() {
		t.Error("empty slice source should not be ready")
	}
	if w, h := src.Size(); w != 0 || h != 0 {
		t.Errorf("Size = %dx%d, want 0x0", w, h)
	}
}
