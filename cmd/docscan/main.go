// Command docscan detects identity documents in images, recognizes their
// text, and exports a copy with sensitive numeric fields opaquely redacted.
//
// Two modes:
//
//	docscan -image id.png -out redacted.png
//	docscan -frames ./frames -out redacted.png
//
// -image scans a single still. -frames replays a directory of image files
// as a simulated video feed through the auto-capture loop and scans the
// frame that capture fires on.
//
// Exit codes: 0 success, 1 error, 2 no document detected.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"github.com/KumJungMin/ocr-tesseract-playground/internal/capture"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/detector"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/frame"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/overlay"
	"github.com/KumJungMin/ocr-tesseract-playground/internal/scan"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var errNoDocument = errors.New("no document detected")

func main() {
	var (
		imagePath   = flag.String("image", "", "scan a single image file")
		framesDir   = flag.String("frames", "", "run auto-capture over a directory of frame images")
		outPath     = flag.String("out", "redacted.png", "output path for the redacted image")
		debugPath   = flag.String("debug", "", "optional path for a debug overlay image")
		lang        = flag.String("lang", "", "Tesseract language string (default kor+eng)")
		timeout     = flag.Duration("timeout", 30*time.Second, "auto-capture timeout in -frames mode")
		showVersion = flag.Bool("version", false, "print version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("docscan %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := detector.DefaultConfig()
	if os.Getenv("DOCSCAN_LOG_LEVEL") == "debug" {
		cfg.Debug = true
		log.Printf("docscan v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var err error
	switch {
	case *imagePath != "":
		err = runImage(*imagePath, *outPath, *debugPath, *lang, cfg)
	case *framesDir != "":
		err = runFrames(*framesDir, *outPath, *debugPath, *lang, cfg, *timeout)
	default:
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, errNoDocument) {
			log.Print(err)
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// runImage scans one still: detect the document, recognize, classify,
// redact, save.
func runImage(path, out, debugPath, lang string, cfg detector.Config) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	full := frame.FromImage(img)
	defer full.Release()

	small := full.Downsample(capture.DefaultDownsampleWidth)
	scale := float64(full.Width) / float64(small.Width)

	res := detector.New(cfg).Detect(small)
	small.Release()
	if !res.Found {
		return fmt.Errorf("%s: %w", path, errNoDocument)
	}
	log.Printf("document found, score %.3f", res.Candidate.Score)

	report, err := scanAndSave(full, out, lang)
	if err != nil {
		return err
	}

	if debugPath != "" {
		dbg := full.ToImage()
		quad := res.Candidate.Quad
		for i := range quad {
			quad[i].X *= scale
			quad[i].Y *= scale
		}
		overlay.DrawQuad(dbg, quad, res.Candidate.Score)
		overlay.DrawRegions(dbg, report.Regions)
		if err := imaging.Save(dbg, debugPath); err != nil {
			return fmt.Errorf("saving debug overlay: %w", err)
		}
	}
	return nil
}

// runFrames drives the auto-capture coordinator over an image sequence and
// scans the captured frame.
func runFrames(dir, out, debugPath, lang string, cfg detector.Config, timeout time.Duration) error {
	src, err := capture.NewDirectorySource(dir)
	if err != nil {
		return err
	}

	captured := make(chan *frame.Frame, 1)
	coord := capture.NewCoordinator(src, cfg, nil)
	coord.OnProgress = func(p float64) {
		if cfg.Debug {
			log.Printf("detection progress %.0f%%", p*100)
		}
	}
	coord.OnError = func(err error) {
		log.Printf("acquisition: %v", err)
	}
	coord.OnCapture = func(f *frame.Frame) {
		captured <- f
	}

	if err := coord.Start(); err != nil {
		return err
	}

	select {
	case f := <-captured:
		defer f.Release()
		report, err := scanAndSave(f, out, lang)
		if err != nil {
			return err
		}
		if debugPath != "" {
			dbg := f.ToImage()
			overlay.DrawRegions(dbg, report.Regions)
			if err := imaging.Save(dbg, debugPath); err != nil {
				return fmt.Errorf("saving debug overlay: %w", err)
			}
		}
		return nil
	case <-time.After(timeout):
		coord.Stop()
		return fmt.Errorf("after %s: %w", timeout, errNoDocument)
	}
}

func scanAndSave(f *frame.Frame, out, lang string) (*scan.Report, error) {
	scanner := scan.NewScanner(lang, nil)
	report, err := scanner.Process(context.Background(), f.ToImage())
	if err != nil {
		return nil, err
	}
	log.Printf("classified as %s, %d region(s) redacted", report.Type, len(report.Regions))

	if err := imaging.Save(report.Redacted, out); err != nil {
		return nil, fmt.Errorf("saving %s: %w", out, err)
	}
	return report, nil
}
