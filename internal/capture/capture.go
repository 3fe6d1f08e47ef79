// Package capture grabs rectangular regions of the screen.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"strconv"
	"strings"
)

var (
	// ErrEmptyRegion is returned when the requested region has no area.
	ErrEmptyRegion = errors.New("capture region is empty")
	errNoMonitors  = errors.New("no monitors available")
)

// Provider supplies the pixels of a screen region in global coordinates.
type Provider interface {
	Capture(rect image.Rectangle) (*image.RGBA, error)
}

// Options tune how screenshots are taken.
type Options struct {
	IncludeCursor bool
}

// Screen captures from the running desktop. On X11 it reads the root window
// directly; otherwise, or when that fails, it asks the desktop portal for a
// full screenshot and crops it.
type Screen struct {
	Options Options
}

var (
	x11CaptureFn       = x11Capture
	portalScreenshotFn = portalScreenshot
	listMonitorsFn     = listMonitors
)

// Capture implements Provider.
func (s Screen) Capture(rect image.Rectangle) (*image.RGBA, error) {
	rect = EvenRect(rect.Canon())
	if rect.Empty() {
		return nil, ErrEmptyRegion
	}
	if !runningOnWayland() {
		img, err := x11CaptureFn(rect)
		if err == nil {
			return img, nil
		}
		log.Printf("x11 capture failed, falling back to portal: %v", err)
	}
	shot, err := portalScreenshotFn(false, s.Options)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", rect, err)
	}
	return cropToRect(shot, rect)
}

// Interactive lets the portal's own selector choose the region.
func (s Screen) Interactive() (*image.RGBA, error) {
	return portalScreenshotFn(true, s.Options)
}

// EvenRect grows odd widths and heights by one pixel.
func EvenRect(r image.Rectangle) image.Rectangle {
	if r.Dx()%2 != 0 {
		r.Max.X++
	}
	if r.Dy()%2 != 0 {
		r.Max.Y++
	}
	return r
}

// ParseRect reads "x,y,w,h".
func ParseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: %w", s, ErrEmptyRegion)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// ListMonitors returns the connected monitors.
func ListMonitors() ([]MonitorInfo, error) {
	return listMonitorsFn()
}

// FindMonitor resolves "primary", an index (optionally prefixed with #) or a
// name fragment. An empty selector picks the primary monitor.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" || lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(lower, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}
