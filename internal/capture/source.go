package capture

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/frame"
)

// Source is the boundary to the live video feed. The camera acquisition
// layer itself (permissions, device selection, stream lifecycle) lives
// outside this module; anything that can report readiness and yield frames
// can drive the coordinator.
type Source interface {
	// Size returns the full source resolution in pixels.
	Size() (width, height int)

	// Ready reports whether the source can currently produce a frame.
	// A paused or ended feed, or one without usable dimensions, is not
	// ready; the coordinator drops ticks while Ready is false.
	Ready() bool

	// Grab returns the current frame downsampled to targetWidth pixels
	// wide (height scaled to preserve aspect ratio). The caller owns the
	// returned frame.
	Grab(targetWidth int) (*frame.Frame, error)

	// GrabFull returns the current frame at full source resolution.
	// The caller owns the returned frame.
	GrabFull() (*frame.Frame, error)
}

// DirectorySource plays a sorted directory of image files as a simulated
// video feed: each Grab advances to the next file. Once the files are
// exhausted the source reports not ready.
//
// Safe for use by a single coordinator; methods are serialized internally.
type DirectorySource struct {
	mu      sync.Mutex
	paths   []string
	next    int
	current image.Image // last decoded frame, kept so GrabFull avoids a second disk read
	width   int
	height  int
}

// NewDirectorySource scans dir for image files (png, jpg, jpeg, gif) and
// returns a source that replays them in name order.
func NewDirectorySource(dir string) (*DirectorySource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("capture: reading frame directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("capture: no image files in %s", dir)
	}
	sort.Strings(paths)

	first, err := imaging.Open(paths[0])
	if err != nil {
		return nil, fmt.Errorf("capture: opening first frame: %w", err)
	}

	return &DirectorySource{
		paths:  paths,
		width:  first.Bounds().Dx(),
		height: first.Bounds().Dy(),
	}, nil
}

func (s *DirectorySource) Size() (int, int) {
	return s.width, s.height
}

func (s *DirectorySource) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next < len(s.paths)
}

func (s *DirectorySource) Grab(targetWidth int) (*frame.Frame, error) {
	s.mu.Lock()
	if s.next >= len(s.paths) {
		s.mu.Unlock()
		return nil, fmt.Errorf("capture: frame sequence exhausted")
	}
	path := s.paths[s.next]
	s.next++
	s.mu.Unlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: opening frame %s: %w", path, err)
	}

	s.mu.Lock()
	s.current = img
	s.mu.Unlock()

	full := frame.FromImage(img)
	defer full.Release()
	return full.Downsample(targetWidth), nil
}

func (s *DirectorySource) GrabFull() (*frame.Frame, error) {
	s.mu.Lock()
	img := s.current
	s.mu.Unlock()
	if img == nil {
		return nil, fmt.Errorf("capture: no frame grabbed yet")
	}
	return frame.FromImage(img), nil
}

// SliceSource cycles through a fixed set of in-memory images, simulating a
// live feed that never ends. Used by tests and available for embedding
// callers that produce frames programmatically.
type SliceSource struct {
	mu     sync.Mutex
	images []image.Image
	idx    int
}

// NewSliceSource wraps the given images. At least one image is required for
// the source to report ready.
func NewSliceSource(images ...image.Image) *SliceSource {
	return &SliceSource{images: images}
}

func (s *SliceSource) Size() (int, int) {
	if len(s.images) == 0 {
		return 0, 0
	}
	b := s.images[0].Bounds()
	return b.Dx(), b.Dy()
}

func (s *SliceSource) Ready() bool {
	return len(s.images) > 0
}

func (s *SliceSource) Grab(targetWidth int) (*frame.Frame, error) {
	s.mu.Lock()
	img := s.images[s.idx%len(s.images)]
	s.idx++
	s.mu.Unlock()

	full := frame.FromImage(img)
	defer full.Release()
	return full.Downsample(targetWidth), nil
}

func (s *SliceSource) GrabFull() (*frame.Frame, error) {
	s.mu.Lock()
	i := s.idx
	if i > 0 {
		i--
	}
	img := s.images[i%len(s.images)]
	s.mu.Unlock()
	return frame.FromImage(img), nil
}
