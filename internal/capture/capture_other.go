//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

func runningOnWayland() bool { return false }

func x11Capture(image.Rectangle) (*image.RGBA, error) {
	return nil, fmt.Errorf("x11 capture is not supported on this platform")
}

func portalScreenshot(bool, Options) (*image.RGBA, error) {
	return nil, fmt.Errorf("portal screenshot is not supported on this platform")
}

func listMonitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}
