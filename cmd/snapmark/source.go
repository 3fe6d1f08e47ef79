package main

import (
	"errors"
	"flag"
	"fmt"
	"image"

	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/persist"
)

var (
	captureRegionFn = func(opts capture.Options, rect image.Rectangle) (*image.RGBA, error) {
		return capture.Screen{Options: opts}.Capture(rect)
	}
	captureInteractiveFn = func(opts capture.Options) (*image.RGBA, error) {
		return capture.Screen{Options: opts}.Interactive()
	}
	listMonitorsFn   = capture.ListMonitors
	openImageFn      = persist.Open
	readClipboardFn  = clipboard.ReadImage
	writeClipboardFn = clipboard.WriteImage
)

var errManySources = errors.New("only one of -rect, -monitor, -interactive, -file and -from-clipboard may be given")

// sourceFlags selects where the image to work on comes from. With nothing
// set the primary monitor is captured.
type sourceFlags struct {
	rect          string
	monitor       string
	interactive   bool
	file          string
	fromClipboard bool
	includeCursor bool
}

func (s *sourceFlags) register(fs *flag.FlagSet, withFile bool) {
	fs.StringVar(&s.rect, "rect", "", "capture the region x,y,w,h in screen coordinates")
	fs.StringVar(&s.monitor, "monitor", "", "capture a monitor by index, name or \"primary\"")
	fs.BoolVar(&s.interactive, "interactive", false, "let the desktop portal choose the region")
	fs.BoolVar(&s.includeCursor, "include-cursor", false, "embed the cursor in captures when supported")
	if withFile {
		fs.StringVar(&s.file, "file", "", "open this image instead of capturing")
		fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "read the image from the clipboard")
		fs.BoolVar(&s.fromClipboard, "from-clip", false, "read the image from the clipboard (alias)")
	}
}

func (s *sourceFlags) validate() error {
	n := 0
	for _, set := range []bool{s.rect != "", s.monitor != "", s.interactive, s.file != "", s.fromClipboard} {
		if set {
			n++
		}
	}
	if n > 1 {
		return errManySources
	}
	if s.rect != "" {
		if _, err := capture.ParseRect(s.rect); err != nil {
			return err
		}
	}
	return nil
}

func (s *sourceFlags) describe() string {
	switch {
	case s.file != "":
		return "file " + s.file
	case s.fromClipboard:
		return "clipboard"
	case s.interactive:
		return "selection"
	case s.rect != "":
		return "region " + s.rect
	case s.monitor != "":
		return "monitor " + s.monitor
	}
	return "screen"
}

// load returns the source image.
func (s *sourceFlags) load() (*image.RGBA, error) {
	switch {
	case s.file != "":
		img, err := openImageFn(s.file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", s.file, err)
		}
		return img, nil
	case s.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	img, err := s.capture()
	if err != nil {
		return nil, fmt.Errorf("failed to capture %s: %w", s.describe(), err)
	}
	return img, nil
}

func (s *sourceFlags) capture() (*image.RGBA, error) {
	opts := capture.Options{IncludeCursor: s.includeCursor}
	if s.interactive {
		return captureInteractiveFn(opts)
	}
	if s.rect != "" {
		rect, err := capture.ParseRect(s.rect)
		if err != nil {
			return nil, err
		}
		return captureRegionFn(opts, rect)
	}
	monitors, err := listMonitorsFn()
	if err != nil {
		return nil, err
	}
	mon, err := capture.FindMonitor(monitors, s.monitor)
	if err != nil {
		return nil, err
	}
	return captureRegionFn(opts, mon.Rect)
}
