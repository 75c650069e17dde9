// Package capture drives the auto-capture loop: it pulls downsampled frames
// from a Source at a fixed cadence, forwards them to a detection worker, and
// fires a capture callback once the document has been detected in enough
// consecutive frames to count as stable.
package capture

import (
	"fmt"
	"sync"
	"time"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/detector"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/frame"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/worker"
)

// DefaultDownsampleWidth is the working width frames are reduced to before
// detection. 480 pixels keeps the per-frame pipeline in the tens of
// milliseconds while leaving document borders crisp enough to trace.
const DefaultDownsampleWidth = 480

// State is the coordinator lifecycle state, observable at any time.
type State int

const (
	// Idle means no detection loop is running.
	Idle State = iota
	// Detecting means the loop is live and analyzing frames.
	Detecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Detecting:
		return "detecting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Detecter is the worker-side contract the coordinator depends on.
// *worker.Worker satisfies it; tests substitute instrumented fakes.
type Detecter interface {
	Detect(*frame.Frame) (detector.Result, error)
	Close()
}

// WorkerFactory creates the detection worker for one capture session. The
// factory is an explicit constructor parameter rather than a package-level
// cached instance so callers and tests control worker creation.
type WorkerFactory func(cfg detector.Config) (Detecter, error)

// DefaultWorkerFactory starts a real detection worker goroutine.
func DefaultWorkerFactory(cfg detector.Config) (Detecter, error) {
	return worker.Start(cfg)
}

// Coordinator owns one auto-capture session at a time over a Source.
//
// The callbacks are invoked from the coordinator's internal goroutine; they
// must not call Stop (it waits for that goroutine) and should return
// quickly. Nil callbacks are skipped.
type Coordinator struct {
	// OnProgress receives normalized detection progress: consecutive
	// successes divided by the required count, 0 after a miss or stop,
	// capped at 1 when capture fires.
	OnProgress func(float64)

	// OnCapture receives the full-resolution captured frame once the
	// stability threshold is met. Ownership of the frame transfers to the
	// callback. Fires at most once per Start.
	OnCapture func(*frame.Frame)

	// OnError receives acquisition failures (source grab errors). Vision
	// pipeline failures never reach it; those degrade to not-found frames
	// inside the detector.
	OnError func(error)

	cfg             detector.Config
	source          Source
	factory         WorkerFactory
	downsampleWidth int

	mu      sync.Mutex
	state   State
	session *session
	wg      sync.WaitGroup
}

type session struct {
	stop chan struct{}
	once sync.Once
}

func (s *session) cancel() {
	s.once.Do(func() { close(s.stop) })
}

// NewCoordinator builds a coordinator over the given source. Zero-valued
// config fields take detector defaults; a nil factory uses the real worker.
func NewCoordinator(source Source, cfg detector.Config, factory WorkerFactory) *Coordinator {
	if factory == nil {
		factory = DefaultWorkerFactory
	}
	c := &Coordinator{
		cfg:             cfg,
		source:          source,
		factory:         factory,
		downsampleWidth: DefaultDownsampleWidth,
	}
	c.cfg = detector.New(cfg).Config() // normalize once, up front
	return c
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins a detection session. Calling Start while a session is already
// running is a no-op. The worker is initialized synchronously; a factory
// failure is an acquisition error and the session does not start.
func (c *Coordinator) Start() error {
	c.mu.Lock()
	if c.state == Detecting {
		c.mu.Unlock()
		return nil
	}
	w, err := c.factory(c.cfg)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("capture: starting detection worker: %w", err)
	}
	s := &session{stop: make(chan struct{})}
	c.session = s
	c.state = Detecting
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run(w, s)
	return nil
}

// Stop cancels the running session, terminates its worker, resets all
// counters and reports progress 0. Idempotent and callable from any state.
// Must not be called from a coordinator callback.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return
	}
	s.cancel()
	c.wg.Wait()
}

// setIdle marks the session over, if it is still the current one.
func (c *Coordinator) setIdle(s *session) {
	c.mu.Lock()
	if c.session == s {
		c.session = nil
		c.state = Idle
	}
	c.mu.Unlock()
}

func (c *Coordinator) progress(p float64) {
	if c.OnProgress != nil {
		c.OnProgress(p)
	}
}

func (c *Coordinator) reportError(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

// run is the detection loop for one session.
//
// Ticks are dropped, never queued: a tick that lands while a detection is
// outstanding, or while the source is not ready, is skipped so latency stays
// bounded. The worker sees at most one frame at a time.
func (c *Coordinator) run(w Detecter, s *session) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	results := make(chan detector.Result)
	outstanding := false
	consecutive := 0

	for {
		select {
		case <-s.stop:
			w.Close()
			c.setIdle(s)
			c.progress(0)
			return

		case <-ticker.C:
			if outstanding || !c.source.Ready() {
				continue
			}
			f, err := c.source.Grab(c.downsampleWidth)
			if err != nil {
				c.reportError(err)
				continue
			}
			outstanding = true
			go func() {
				res, err := w.Detect(f) // frame ownership transfers here
				if err != nil {
					res = detector.Result{}
				}
				select {
				case results <- res:
				case <-s.stop:
					// Session ended while the detection was in flight;
					// the late result has no listener and is dropped.
				}
			}()

		case res := <-results:
			outstanding = false
			if !res.Found {
				consecutive = 0
				c.progress(0)
				continue
			}
			consecutive++
			p := float64(consecutive) / float64(c.cfg.ConsecutiveFrames)
			if p > 1 {
				p = 1
			}
			c.progress(p)
			if consecutive < c.cfg.ConsecutiveFrames {
				continue
			}

			// Stable: capture at full source resolution and go idle.
			full, err := c.source.GrabFull()
			w.Close()
			c.setIdle(s)
			s.cancel()
			if err != nil {
				c.reportError(fmt.Errorf("capture: grabbing full frame: %w", err))
				return
			}
			if c.OnCapture != nil {
				c.OnCapture(full)
			} else {
				full.Release()
			}
			return
		}
	}
}
