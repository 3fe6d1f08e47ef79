package main

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/example/snapmark/internal/capture"
)

func stubMonitors(t *testing.T, monitors []capture.MonitorInfo, err error) {
	t.Helper()
	original := listMonitorsFn
	listMonitorsFn = func() ([]capture.MonitorInfo, error) { return monitors, err }
	t.Cleanup(func() { listMonitorsFn = original })
}

func stubRegion(t *testing.T, fn func(capture.Options, image.Rectangle) (*image.RGBA, error)) {
	t.Helper()
	original := captureRegionFn
	captureRegionFn = fn
	t.Cleanup(func() { captureRegionFn = original })
}

func TestAnnotateRunCaptureError(t *testing.T) {
	sentinel := errors.New("denied")
	stubMonitors(t, []capture.MonitorInfo{{Name: "eDP-1", Rect: image.Rect(0, 0, 100, 100), Primary: true}}, nil)
	stubRegion(t, func(capture.Options, image.Rectangle) (*image.RGBA, error) { return nil, sentinel })

	cmd, err := parseAnnotateCmd(nil, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "failed to capture screen"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected message context, got %v", err)
		}
	}
}

func TestAnnotateMonitorSelection(t *testing.T) {
	stubMonitors(t, []capture.MonitorInfo{
		{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 100, 100), Primary: true},
		{Index: 1, Name: "HDMI-1", Rect: image.Rect(100, 0, 300, 120)},
	}, nil)
	var got image.Rectangle
	stubRegion(t, func(_ capture.Options, r image.Rectangle) (*image.RGBA, error) {
		got = r
		return nil, errors.New("stop")
	})

	cmd, err := parseAnnotateCmd([]string{"-monitor", "hdmi"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "monitor hdmi") {
		t.Fatalf("expected monitor error context, got %v", err)
	}
	if want := image.Rect(100, 0, 300, 120); got != want {
		t.Fatalf("captured %v, want %v", got, want)
	}
}

func TestAnnotateOpenError(t *testing.T) {
	cmd, err := parseAnnotateCmd([]string{"-file", "missing.png"}, nil)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "open missing.png") {
		t.Fatalf("expected open error context, got %v", err)
	}
}

func TestParseAnnotateRejectsManySources(t *testing.T) {
	_, err := parseAnnotateCmd([]string{"-file", "a.png", "-rect", "0,0,10,10"}, nil)
	if !errors.Is(err, errManySources) {
		t.Fatalf("expected errManySources, got %v", err)
	}
}

func TestParseAnnotateBadRect(t *testing.T) {
	_, err := parseAnnotateCmd([]string{"-rect", "0,0,0,10"}, nil)
	if !errors.Is(err, capture.ErrEmptyRegion) {
		t.Fatalf("expected ErrEmptyRegion, got %v", err)
	}
}

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "line", "0", "0", "1", "1"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown shape", []string{"-file", "a.png", "circle", "1", "2", "3"}, "unsupported shape"},
		{"short line", []string{"-file", "a.png", "line", "1", "2", "3"}, "requires 4 integer arguments"},
		{"odd freehand", []string{"-file", "a.png", "freehand", "1", "2", "3", "4", "5"}, "at least two x y pairs"},
		{"empty text", []string{"-file", "a.png", "text", "1", "2", " "}, "cannot be empty"},
		{"bad color", []string{"-file", "a.png", "-color", "nope", "rect", "0", "0", "1", "1"}, "nope"},
		{"no input", []string{"rect", "0", "0", "1", "1"}, "input file is required"},
		{"missing value", []string{"-file", "a.png", "rect", "0", "0", "1", "1", "-color"}, "requires a value"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseDrawCmd(tc.args, nil)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestUsageErrorRendersHelp(t *testing.T) {
	_, err := parseAnnotateCmd([]string{"extra"}, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	msg := uerr.Error()
	for _, want := range []string{"Usage: snapmark", "-rect", "-save-dir", "-zoom (default 100)"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("help missing %q:\n%s", want, msg)
		}
	}
}

func TestListRequiresTopic(t *testing.T) {
	_, err := parseListCmd([]string{"shapes"}, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "colors|widths") {
		t.Fatalf("unexpected help: %s", uerr.Error())
	}
}

func TestRootRequiresCommand(t *testing.T) {
	r := newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UsageError, got %v", err)
	}
	if !strings.Contains(uerr.Error(), "annotate") {
		t.Fatalf("root help should list commands: %s", uerr.Error())
	}
}
