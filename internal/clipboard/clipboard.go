// Package clipboard copies and pastes images through the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/example/snapmark/internal/persist"
)

// ErrNoImage is returned by ReadImage when the clipboard holds no image.
var ErrNoImage = errors.New("clipboard does not contain an image")

var (
	readImageFn  = readImageData
	writeImageFn = writeImageData
)

// WriteImage publishes img to the clipboard as PNG.
func WriteImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("clipboard encode: %w", err)
	}
	return writeImageFn(buf.Bytes())
}

// ReadImage decodes the clipboard image into a zero-origin RGBA copy.
func ReadImage() (*image.RGBA, error) {
	data, err := readImageFn()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard decode: %w", err)
	}
	return persist.ToRGBA(img), nil
}
