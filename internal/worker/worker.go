// Package worker hosts a document detector in an isolated goroutine so the
// expensive per-frame vision pipeline never blocks the interactive caller.
//
// Communication follows a small message protocol over channels: an init
// message carrying the detector configuration is answered with init-done,
// and each detect message carrying a frame is answered with a detection
// result. Messages are processed strictly in arrival order, and Detect
// blocks until its reply arrives, so at most one detection is ever in
// flight per worker.
//
// Frame ownership transfers to the worker on send: the caller must not read
// or write the frame after handing it to Detect. The worker releases every
// frame it receives, on every path.
package worker

import (
	"errors"
	"sync"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/detector"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/frame"
)

// ErrClosed is returned by Detect after the worker has been closed.
var ErrClosed = errors.New("worker: closed")

type kind int

const (
	kindInit kind = iota
	kindInitDone
	kindDetect
	kindResult
)

// message is the envelope exchanged with the worker goroutine.
type message struct {
	kind   kind
	cfg    detector.Config
	frame  *frame.Frame
	result detector.Result
	reply  chan message
}

// Worker runs exactly one detector in its own goroutine.
type Worker struct {
	requests chan message
	done     chan struct{}
	once     sync.Once
}

// Factory creates detection workers. The auto-capture coordinator takes a
// Factory at construction so tests can substitute instrumented workers.
type Factory func(cfg detector.Config) (*Worker, error)

// Start launches a worker goroutine, sends it the init message and waits for
// the init-done acknowledgment before returning.
func Start(cfg detector.Config) (*Worker, error) {
	w := &Worker{
		requests: make(chan message),
		done:     make(chan struct{}),
	}
	go w.loop()

	reply := make(chan message, 1)
	select {
	case w.requests <- message{kind: kindInit, cfg: cfg, reply: reply}:
	case <-w.done:
		return nil, ErrClosed
	}
	select {
	case <-reply:
	case <-w.done:
		return nil, ErrClosed
	}
	return w, nil
}

// Detect sends a frame to the worker and blocks until the detection result
// arrives. Ownership of the frame transfers on send; the worker releases it.
//
// After Close, Detect releases the frame itself and returns ErrClosed. A
// result that completes after Close is discarded.
func (w *Worker) Detect(f *frame.Frame) (detector.Result, error) {
	reply := make(chan message, 1)
	select {
	case w.requests <- message{kind: kindDetect, frame: f, reply: reply}:
	case <-w.done:
		f.Release()
		return detector.Result{}, ErrClosed
	}
	select {
	case m := <-reply:
		return m.result, nil
	case <-w.done:
		return detector.Result{}, ErrClosed
	}
}

// Close shuts the worker down. Idempotent; safe to call from any goroutine.
func (w *Worker) Close() {
	w.once.Do(func() { close(w.done) })
}

// loop is the worker goroutine: one detector instance, strict FIFO message
// processing. Replies go to per-message buffered channels so a caller that
// gave up (worker closed) never blocks the loop.
func (w *Worker) loop() {
	var d *detector.Detector
	for {
		select {
		case <-w.done:
			return
		case msg := <-w.requests:
			switch msg.kind {
			case kindInit:
				d = detector.New(msg.cfg)
				msg.reply <- message{kind: kindInitDone}
			case kindDetect:
				var res detector.Result
				if d != nil {
					res = d.Detect(msg.frame)
				}
				msg.frame.Release()
				msg.reply <- message{kind: kindResult, result: res}
			}
		}
	}
}
