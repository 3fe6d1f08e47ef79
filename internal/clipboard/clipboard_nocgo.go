//go:build !cgo && !windows

package clipboard

import "errors"

var errCGODisabled = errors.New("clipboard operations require cgo support")

func readImageData() ([]byte, error) { return nil, errCGODisabled }

func writeImageData([]byte) error { return errCGODisabled }
