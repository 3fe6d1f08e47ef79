package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func stubBackends(t *testing.T, x11 func(image.Rectangle) (*image.RGBA, error), portal func(bool, Options) (*image.RGBA, error)) {
	t.Helper()
	prevX11, prevPortal := x11CaptureFn, portalScreenshotFn
	x11CaptureFn, portalScreenshotFn = x11, portal
	t.Cleanup(func() {
		x11CaptureFn, portalScreenshotFn = prevX11, prevPortal
	})
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
}

func TestEvenRect(t *testing.T) {
	cases := []struct {
		in, want image.Rectangle
	}{
		{image.Rect(0, 0, 10, 10), image.Rect(0, 0, 10, 10)},
		{image.Rect(0, 0, 11, 10), image.Rect(0, 0, 12, 10)},
		{image.Rect(5, 5, 8, 10), image.Rect(5, 5, 9, 11)},
	}
	for _, tc := range cases {
		if got := EvenRect(tc.in); got != tc.want {
			t.Errorf("EvenRect(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCaptureEmptyRegion(t *testing.T) {
	called := false
	stub := func(image.Rectangle) (*image.RGBA, error) { called = true; return nil, nil }
	stubBackends(t, stub, nil)
	if _, err := (Screen{}).Capture(image.Rect(4, 4, 4, 9)); !errors.Is(err, ErrEmptyRegion) {
		t.Fatalf("err = %v", err)
	}
	if called {
		t.Fatalf("backend called for empty region")
	}
}

func TestCapturePrefersX11(t *testing.T) {
	var asked image.Rectangle
	stubBackends(t,
		func(r image.Rectangle) (*image.RGBA, error) {
			asked = r
			return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
		},
		func(bool, Options) (*image.RGBA, error) {
			t.Fatalf("portal used although x11 succeeded")
			return nil, nil
		})
	img, err := (Screen{}).Capture(image.Rect(13, 10, 10, 20))
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if asked != image.Rect(10, 10, 14, 20) {
		t.Fatalf("asked for %v", asked)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("width %d", img.Bounds().Dx())
	}
}

func TestCaptureFallsBackToPortalCrop(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 100, 100))
	full.SetRGBA(20, 30, color.RGBA{R: 200, A: 255})
	var interactive bool
	stubBackends(t,
		func(image.Rectangle) (*image.RGBA, error) { return nil, errors.New("no X") },
		func(i bool, _ Options) (*image.RGBA, error) {
			interactive = i
			return full, nil
		})
	img, err := (Screen{}).Capture(image.Rect(20, 30, 30, 40))
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if interactive {
		t.Fatalf("region capture must not be interactive")
	}
	if img.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if img.RGBAAt(0, 0).R != 200 {
		t.Fatalf("crop origin wrong: %+v", img.RGBAAt(0, 0))
	}
}

func TestCaptureWaylandSkipsX11(t *testing.T) {
	stubBackends(t,
		func(image.Rectangle) (*image.RGBA, error) {
			t.Fatalf("x11 used on wayland")
			return nil, nil
		},
		func(bool, Options) (*image.RGBA, error) {
			return image.NewRGBA(image.Rect(0, 0, 50, 50)), nil
		})
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	if _, err := (Screen{}).Capture(image.Rect(0, 0, 10, 10)); err != nil {
		t.Fatalf("Capture: %v", err)
	}
}

func TestCapturePortalErrorWrapped(t *testing.T) {
	portalErr := errors.New("portal down")
	stubBackends(t,
		func(image.Rectangle) (*image.RGBA, error) { return nil, errors.New("no X") },
		func(bool, Options) (*image.RGBA, error) { return nil, portalErr })
	if _, err := (Screen{}).Capture(image.Rect(0, 0, 10, 10)); !errors.Is(err, portalErr) {
		t.Fatalf("err = %v", err)
	}
}

func TestCropOutside(t *testing.T) {
	if _, err := cropToRect(image.NewRGBA(image.Rect(0, 0, 10, 10)), image.Rect(20, 20, 30, 30)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseRect(t *testing.T) {
	got, err := ParseRect("10, 20,30,40")
	if err != nil {
		t.Fatalf("ParseRect: %v", err)
	}
	if got != image.Rect(10, 20, 40, 60) {
		t.Fatalf("got %v", got)
	}
	for _, bad := range []string{"1,2,3", "a,b,c,d", "0,0,0,5"} {
		if _, err := ParseRect(bad); err == nil {
			t.Errorf("ParseRect(%q) expected error", bad)
		}
	}
}

func TestFindMonitor(t *testing.T) {
	monitors := []MonitorInfo{
		{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080)},
		{Index: 1, Name: "eDP-1", Rect: image.Rect(1920, 0, 3840, 1080), Primary: true},
	}
	cases := []struct {
		sel  string
		want int
		ok   bool
	}{
		{"", 1, true},
		{"primary", 1, true},
		{"#0", 0, true},
		{"1", 1, true},
		{"hdmi", 0, true},
		{"5", 0, false},
		{"dp-9", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.sel, func(t *testing.T) {
			got, err := FindMonitor(monitors, tc.sel)
			if (err == nil) != tc.ok {
				t.Fatalf("err = %v", err)
			}
			if tc.ok && got.Index != tc.want {
				t.Fatalf("got monitor %d want %d", got.Index, tc.want)
			}
		})
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Fatalf("err = %v", err)
	}
}
