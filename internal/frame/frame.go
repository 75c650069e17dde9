// Package frame provides pooled RGBA pixel buffers for the detection pipeline.
//
// Frames are allocated at video frame rate, so their backing buffers are drawn
// from a package-level pool and must be returned with Release() when the owner
// is done. A Frame has exactly one owner at a time: sending a frame to the
// detection worker transfers ownership, and the sender must not read or write
// the buffer afterwards.
package frame

import (
	"image"
	"image/draw"
	"sync"

	"github.com/disintegration/imaging"
)

// Frame is a rectangular RGBA pixel buffer with origin at the top-left,
// X increasing rightward and Y increasing downward.
//
// Pix holds 4 bytes per pixel (R, G, B, A) with a stride of 4*Width.
// After Release() the buffer must not be touched.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

var bufPool sync.Pool

func getBuf(n int) []byte {
	if v := bufPool.Get(); v != nil {
		b := *(v.(*[]byte))
		if cap(b) >= n {
			b = b[:n]
			for i := range b {
				b[i] = 0
			}
			return b
		}
	}
	return make([]byte, n)
}

func putBuf(b []byte) {
	bufPool.Put(&b)
}

// New allocates a frame of the given dimensions from the buffer pool.
// The pixel data is zeroed.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    getBuf(4 * width * height),
	}
}

// FromImage copies the contents of img into a new pooled frame.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())
	dst := f.ToImage()
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return f
}

// ToImage wraps the frame's buffer in an *image.RGBA without copying.
// The returned image aliases Pix and becomes invalid once the frame is
// released.
func (f *Frame) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: 4 * f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// Clone returns an independent pooled copy of the frame.
func (f *Frame) Clone() *Frame {
	c := New(f.Width, f.Height)
	copy(c.Pix, f.Pix)
	return c
}

// Downsample scales the frame to targetWidth pixels wide, preserving the
// aspect ratio. The receiver is left untouched; the result is a new pooled
// frame owned by the caller.
func (f *Frame) Downsample(targetWidth int) *Frame {
	if targetWidth <= 0 || targetWidth >= f.Width {
		return f.Clone()
	}
	targetHeight := int(float64(f.Height)*float64(targetWidth)/float64(f.Width) + 0.5)
	if targetHeight < 1 {
		targetHeight = 1
	}
	small := imaging.Resize(f.ToImage(), targetWidth, targetHeight, imaging.Lanczos)
	return FromImage(small)
}

// Release returns the frame's buffer to the pool. Safe to call more than
// once; only the first call has an effect. Pix is nil afterwards.
func (f *Frame) Release() {
	if f == nil || f.Pix == nil {
		return
	}
	putBuf(f.Pix)
	f.Pix = nil
}
